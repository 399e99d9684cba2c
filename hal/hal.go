package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
)

func (c KeyCode) String() string {
	switch c {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	default:
		return "unknown"
	}
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerEvent is a primary-button click in framebuffer coordinates.
type PointerEvent struct {
	X     int
	Y     int
	Press bool
}

// Pointer provides click events (mouse on host, touch panel on devices).
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// Audio provides short feedback sounds.
type Audio interface {
	// Click plays a key-click tone. It must not block.
	Click()
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
	Audio() Audio
}
