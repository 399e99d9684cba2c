// Package gfx draws into a hal.Framebuffer through the tinygo drivers
// Displayer interface so tinyfont can render text on it.
package gfx

import (
	"image/color"

	"sparkcalc/hal"

	"tinygo.org/x/drivers"
)

// Display adapts an RGB565 framebuffer to drivers.Displayer.
type Display struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Display)(nil)

func NewDisplay(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) Framebuffer() hal.Framebuffer { return d.fb }

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	buf, ok := d.rgb565()
	if !ok {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := RGB565(c)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Pixel reads back a pixel as RGB565 (0 when out of bounds).
func (d *Display) Pixel(x, y int) uint16 {
	buf, ok := d.rgb565()
	if !ok || x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return 0
	}
	off := y*d.fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// FillRectangle paints a clipped rectangle.
func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf, ok := d.rgb565()
	if !ok {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := RGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// StrokeRectangle draws a rectangle outline of the given thickness.
func (d *Display) StrokeRectangle(x, y, width, height, thickness int16, c color.RGBA) {
	if thickness <= 0 || width <= 0 || height <= 0 {
		return
	}
	_ = d.FillRectangle(x, y, width, thickness, c)
	_ = d.FillRectangle(x, y+height-thickness, width, thickness, c)
	_ = d.FillRectangle(x, y, thickness, height, c)
	_ = d.FillRectangle(x+width-thickness, y, thickness, height, c)
}

func (d *Display) rgb565() ([]byte, bool) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil, false
	}
	buf := d.fb.Buffer()
	return buf, buf != nil
}

// RGB565 packs c into 16bpp rrrrrggggggbbbbb.
func RGB565(c color.RGBA) uint16 {
	return uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
