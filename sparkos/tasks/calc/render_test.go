package calc

import (
	"image/color"
	"sync"
	"testing"

	"sparkcalc/hal"
	"sparkcalc/sparkos/gfx"
)

type memFB struct {
	mu       sync.Mutex
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB {
	return &memFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8)  {}

func (f *memFB) Present() error {
	f.mu.Lock()
	f.presents++
	f.mu.Unlock()
	return nil
}

func (f *memFB) presentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

type memDisplay struct{ fb hal.Framebuffer }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

// countColor counts pixels of color c inside r.
func countColor(d *gfx.Display, r Rect, c color.RGBA) int {
	want := gfx.RGB565(c)
	n := 0
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if d.Pixel(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestRenderer_DrawsPanelAndKeys(t *testing.T) {
	fb := newMemFB(hal.DefaultWidth, hal.DefaultHeight)
	d := gfx.NewDisplay(fb)
	r := NewRenderer(d)

	if err := r.Draw(View{Display: "12 + 3", State: StateEnteringSecondOperand, Focus: DefaultFocus}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if fb.presentCount() != 1 {
		t.Fatalf("presents=%d, want 1", fb.presentCount())
	}

	l := r.Layout()
	if got := d.Pixel(0, 0); got != gfx.RGB565(colorBackground) {
		t.Fatalf("background pixel=%#04x, want %#04x", got, gfx.RGB565(colorBackground))
	}
	if n := countColor(d, l.Display, colorPanelText); n == 0 {
		t.Fatalf("display text not drawn")
	}
	if n := countColor(d, l.Display, colorStatusText); n == 0 {
		t.Fatalf("state line not drawn")
	}

	focused := l.Keys[DefaultFocus.Row][DefaultFocus.Col]
	if got := d.Pixel(focused.X, focused.Y); got != gfx.RGB565(colorFocus) {
		t.Fatalf("focused key corner=%#04x, want focus outline", got)
	}
	if got := d.Pixel(focused.X+3, focused.Y+3); got != gfx.RGB565(keyColors[KeyDigit]) {
		t.Fatalf("focused key fill=%#04x, want digit color", got)
	}

	eq := l.Keys[4][3]
	if got := d.Pixel(eq.X, eq.Y); got != gfx.RGB565(keyColors[KeyEquals]) {
		t.Fatalf("equals key corner=%#04x, want equals color", got)
	}
	if n := countColor(d, eq, colorKeyText); n == 0 {
		t.Fatalf("equals label not drawn")
	}
}

func TestRenderer_PressedAndError(t *testing.T) {
	fb := newMemFB(hal.DefaultWidth, hal.DefaultHeight)
	d := gfx.NewDisplay(fb)
	r := NewRenderer(d)

	f := Focus{Row: 0, Col: 3}
	if err := r.Draw(View{Display: ErrorMarker, State: StateError, Focus: f, Pressed: true}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	l := r.Layout()
	rc := l.Keys[f.Row][f.Col]
	if got := d.Pixel(rc.X+3, rc.Y+3); got != gfx.RGB565(colorPressed) {
		t.Fatalf("pressed key fill=%#04x, want pressed color", got)
	}
	if n := countColor(d, l.Display, colorErrorText); n == 0 {
		t.Fatalf("error marker not drawn in error color")
	}
	if n := countColor(d, l.Display, colorPanelText); n != 0 {
		t.Fatalf("error frame used normal text color on %d pixels", n)
	}
}

func TestRenderer_LongDisplayStaysInPanel(t *testing.T) {
	fb := newMemFB(hal.DefaultWidth, hal.DefaultHeight)
	d := gfx.NewDisplay(fb)
	r := NewRenderer(d)

	long := "123456789 + 123456789 × 987654321 - 111111111"
	if err := r.Draw(View{Display: long, State: StateEnteringSecondOperand}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	l := r.Layout()
	outside := Rect{X: 0, Y: 0, W: l.Display.X, H: l.Display.Y + l.Display.H}
	if n := countColor(d, outside, colorPanelText); n != 0 {
		t.Fatalf("%d text pixels left of the panel", n)
	}
}
