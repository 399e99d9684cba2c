package gfx

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// TextWidth returns the advance width of s in pixels.
func TextWidth(f tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

// FitLeft drops runes from the front of s until it fits in maxWidth pixels,
// prefixing the result with ellipsis when anything was dropped.
func FitLeft(f tinyfont.Fonter, s string, maxWidth int, ellipsis string) string {
	if TextWidth(f, s) <= maxWidth {
		return s
	}
	rs := []rune(s)
	for i := 1; i < len(rs); i++ {
		cand := ellipsis + string(rs[i:])
		if TextWidth(f, cand) <= maxWidth {
			return cand
		}
	}
	return ellipsis
}

// DrawText writes s with its baseline at (x, y).
func (d *Display) DrawText(f tinyfont.Fonter, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, f, int16(x), int16(y), s, c)
}

// DrawTextCentered centers s horizontally in [x, x+w) with baseline y.
func (d *Display) DrawTextCentered(f tinyfont.Fonter, x, w, y int, s string, c color.RGBA) {
	d.DrawText(f, x+(w-TextWidth(f, s))/2, y, s, c)
}

// DrawTextRight right-aligns s so it ends at x+w with baseline y.
func (d *Display) DrawTextRight(f tinyfont.Fonter, x, w, y int, s string, c color.RGBA) {
	d.DrawText(f, x+w-TextWidth(f, s), y, s, c)
}
