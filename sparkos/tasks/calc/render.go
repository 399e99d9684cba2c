package calc

import (
	"image/color"

	"sparkcalc/sparkos/fonts/asciifold"
	"sparkcalc/sparkos/gfx"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBackground = color.RGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xFF}
	colorPanel      = color.RGBA{R: 0x1E, G: 0x2A, B: 0x22, A: 0xFF}
	colorPanelText  = color.RGBA{R: 0xC8, G: 0xF0, B: 0xC8, A: 0xFF}
	colorErrorText  = color.RGBA{R: 0xFF, G: 0x60, B: 0x60, A: 0xFF}
	colorStatusText = color.RGBA{R: 0x70, G: 0x90, B: 0x78, A: 0xFF}
	colorKeyText    = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorFocus      = color.RGBA{R: 0xFF, G: 0xD1, B: 0x4A, A: 0xFF}
	colorPressed    = color.RGBA{R: 0x60, G: 0x60, B: 0x68, A: 0xFF}
)

var keyColors = [...]color.RGBA{
	KeyDigit:    {R: 0x30, G: 0x33, B: 0x3A, A: 0xFF},
	KeyFunction: {R: 0x4A, G: 0x4E, B: 0x58, A: 0xFF},
	KeyOperator: {R: 0xC0, G: 0x70, B: 0x20, A: 0xFF},
	KeyEquals:   {R: 0x28, G: 0x80, B: 0x48, A: 0xFF},
}

// Approximate cap heights, used to center text vertically.
const (
	displayAscent = 16
	labelAscent   = 11
	statusAscent  = 7
)

// View is everything the renderer needs for one frame.
type View struct {
	Display string
	State   State
	Focus   Focus
	// Pressed highlights the focused key briefly after activation.
	Pressed bool
}

// Renderer draws the calculator onto a framebuffer.
type Renderer struct {
	d      *gfx.Display
	layout Layout

	displayFont tinyfont.Fonter
	labelFont   tinyfont.Fonter
	opFont      tinyfont.Fonter
	statusFont  tinyfont.Fonter
}

func NewRenderer(d *gfx.Display) *Renderer {
	w, h := d.Size()
	return &Renderer{
		d:           d,
		layout:      NewLayout(int(w), int(h)),
		displayFont: asciifold.Wrap(&freemono.Bold12pt7b),
		labelFont:   asciifold.Wrap(&freemono.Regular9pt7b),
		opFont:      asciifold.Wrap(&freemono.Bold9pt7b),
		statusFont:  asciifold.Wrap(&proggy.TinySZ8pt7b),
	}
}

func (r *Renderer) Layout() Layout { return r.layout }

// Draw paints a full frame and presents it.
func (r *Renderer) Draw(v View) error {
	w, h := r.d.Size()
	_ = r.d.FillRectangle(0, 0, w, h, colorBackground)

	r.drawPanel(v)
	for row := 0; row < KeypadRows; row++ {
		for col := 0; col < KeypadCols; col++ {
			f := Focus{Row: row, Col: col}
			r.drawKey(f, f == v.Focus, f == v.Focus && v.Pressed)
		}
	}
	return r.d.Display()
}

func (r *Renderer) drawPanel(v View) {
	p := r.layout.Display
	_ = r.d.FillRectangle(int16(p.X), int16(p.Y), int16(p.W), int16(p.H), colorPanel)

	const pad = 6
	r.d.DrawText(r.statusFont, p.X+pad, p.Y+pad+statusAscent, v.State.String(), colorStatusText)

	c := colorPanelText
	if v.State == StateError {
		c = colorErrorText
	}
	text := gfx.FitLeft(r.displayFont, v.Display, p.W-2*pad, "…")
	baseline := p.Y + p.H - pad - (p.H-2*pad-statusAscent-displayAscent)/4
	r.d.DrawTextRight(r.displayFont, p.X+pad, p.W-2*pad, baseline, text, c)
}

func (r *Renderer) drawKey(f Focus, focused, pressed bool) {
	k := f.Key()
	rc := r.layout.Keys[f.Row][f.Col]

	bg := keyColors[k.Class]
	if pressed {
		bg = colorPressed
	}
	_ = r.d.FillRectangle(int16(rc.X), int16(rc.Y), int16(rc.W), int16(rc.H), bg)
	if focused {
		r.d.StrokeRectangle(int16(rc.X), int16(rc.Y), int16(rc.W), int16(rc.H), 2, colorFocus)
	}

	font := r.labelFont
	if k.Class != KeyDigit {
		font = r.opFont
	}
	baseline := rc.Y + (rc.H+labelAscent)/2
	r.d.DrawTextCentered(font, rc.X, rc.W, baseline, k.PlainLabel(), colorKeyText)
}
