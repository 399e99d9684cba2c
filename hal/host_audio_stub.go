//go:build !tinygo && !cgo

package hal

// hostAudio is silent when CGO/window backends are unavailable.
type hostAudio struct{}

func newHostAudio() *hostAudio { return &hostAudio{} }

func (a *hostAudio) setEnabled(bool) {}

func (a *hostAudio) Click() {}
