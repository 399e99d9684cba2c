//go:build !tinygo && cgo

package hal

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const clickSampleRate = 44100

// hostAudio plays the key click through Ebiten's audio package.
//
// The audio context is created lazily on the first click because Ebiten allows
// only one context per process and it is only driven while the window runs.
type hostAudio struct {
	mu      sync.Mutex
	enabled bool

	ctx    *audio.Context
	player *audio.Player
}

func newHostAudio() *hostAudio {
	return &hostAudio{}
}

func (a *hostAudio) setEnabled(on bool) {
	a.mu.Lock()
	a.enabled = on
	a.mu.Unlock()
}

func (a *hostAudio) Click() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return
	}

	if a.player == nil {
		a.ctx = audio.CurrentContext()
		if a.ctx == nil {
			a.ctx = audio.NewContext(clickSampleRate)
		}
		a.player = a.ctx.NewPlayerFromBytes(clickPCM(a.ctx.SampleRate()))
		a.player.SetVolume(0.35)
	}

	if err := a.player.Rewind(); err != nil {
		return
	}
	a.player.Play()
}
