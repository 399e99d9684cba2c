//go:build !tinygo && cgo

package hal

import (
	"image"
	"os"

	"sparkcalc/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard
// and mouse input. It blocks until the window closes or step returns an error.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}

	h := newHost(os.Stdout)
	h.aud.setEnabled(cfg.Click)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("SparkCalc (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	gen     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.ptr.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.gen = ^uint64(0)
	}

	if gen, changed := fb.snapshotRGB565(g.scratch, g.gen); changed {
		g.gen = gen
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
	}

	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
