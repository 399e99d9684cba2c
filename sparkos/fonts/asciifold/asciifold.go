// Package asciifold lets 7-bit tinyfont fonts draw the calculator's
// non-ASCII glyphs by substituting look-alike ASCII characters.
package asciifold

import "tinygo.org/x/tinyfont"

// Font wraps a tinyfont.Fonter and folds runes through Rune before lookup.
//
// It implements tinyfont.Fonter so it can be used with tinyfont.WriteLine and
// tinyfont.LineWidth.
type Font struct {
	base tinyfont.Fonter
}

// Wrap returns f with rune folding applied.
func Wrap(f tinyfont.Fonter) *Font {
	return &Font{base: f}
}

func (f *Font) GetYAdvance() uint8 { return f.base.GetYAdvance() }

func (f *Font) GetGlyph(r rune) tinyfont.Glypher {
	return f.base.GetGlyph(Rune(r))
}

// Rune maps r to a printable ASCII substitute. ASCII runes map to themselves.
func Rune(r rune) rune {
	if r >= 0x20 && r <= 0x7e {
		return r
	}

	switch r {
	case '\u00d7': // ×
		return 'x'
	case '\u00f7': // ÷
		return '/'
	case '\u2212', '\u2013', '\u2014': // − – —
		return '-'
	case '\u00b1': // ±
		return '~'
	case '\u232b', '\u2190': // ⌫ ←
		return '<'
	case '\u2026': // …
		return '~'
	case '\u00a0': // NBSP
		return ' '
	}
	return '?'
}

// String folds every rune of s.
func String(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, Rune(r))
	}
	return string(out)
}
