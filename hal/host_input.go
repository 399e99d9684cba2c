//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// Only keypad navigation keys are forwarded. Printable characters are not
// translated into calculator input.
var hostKeyMap = [...]struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeySpace, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
}

func (k *hostKeyboard) poll() {
	emit := func(code KeyCode, press bool) {
		select {
		case k.ch <- KeyEvent{Code: code, Press: press}:
		default:
		}
	}

	for _, m := range hostKeyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			emit(m.code, true)
		}
		if inpututil.IsKeyJustReleased(m.key) {
			emit(m.code, false)
		}
	}
}

type hostPointer struct {
	ch chan PointerEvent
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 16)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

// poll reports left-button transitions. CursorPosition is already in
// framebuffer coordinates because Layout returns the framebuffer size.
func (p *hostPointer) poll() {
	emit := func(press bool) {
		x, y := ebiten.CursorPosition()
		select {
		case p.ch <- PointerEvent{X: x, Y: y, Press: press}:
		default:
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		emit(true)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		emit(false)
	}
}
