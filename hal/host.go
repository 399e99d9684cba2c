//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Default framebuffer geometry (matches the PicoCalc panel).
const (
	DefaultWidth  = 320
	DefaultHeight = 320
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	// Scale is the integer window zoom factor (default 2).
	Scale int
	// Click enables the key-click tone.
	Click bool
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
	aud    *hostAudio
}

// New returns a host HAL implementation logging to stdout.
func New() HAL {
	return newHost(os.Stdout)
}

// NewWithLogger returns a host HAL implementation logging to w.
func NewWithLogger(w io.Writer) HAL {
	return newHost(w)
}

func newHost(w io.Writer) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(DefaultWidth, DefaultHeight),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(),
		aud:    newHostAudio(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Audio() Audio     { return h.aud }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
