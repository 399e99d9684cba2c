package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"sparkcalc/hal"
	"sparkcalc/sparkos/fonts/asciifold"
	"sparkcalc/sparkos/gfx"
	"sparkcalc/sparkos/kernel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}
		drawPanic(gfx.NewDisplay(fb), lines)
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"SparkCalc panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

// drawPanic paints lines top-down on a white screen, wrapping long lines at
// the screen edge and stopping at the bottom.
func drawPanic(d *gfx.Display, lines []string) {
	w, h := d.Size()
	_ = d.FillRectangle(0, 0, w, h, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	font := asciifold.Wrap(&proggy.TinySZ8pt7b)
	lineH := int(font.GetYAdvance())
	if lineH <= 0 {
		lineH = 10
	}
	fg := color.RGBA{A: 0xFF}

	y := lineH
	for _, line := range lines {
		for line != "" {
			if y > int(h) {
				_ = d.Display()
				return
			}
			chunk, rest := splitToWidth(font, line, int(w)-4)
			d.DrawText(font, 2, y, chunk, fg)
			y += lineH
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Display()
}

// splitToWidth returns the longest rune prefix of s that fits in maxWidth
// pixels (at least one rune) and the remainder.
func splitToWidth(f tinyfont.Fonter, s string, maxWidth int) (prefix, rest string) {
	if gfx.TextWidth(f, s) <= maxWidth {
		return s, ""
	}
	end := 0
	for i := range s {
		if i > 0 && gfx.TextWidth(f, s[:i]) > maxWidth {
			break
		}
		end = i
	}
	if end == 0 {
		_, end = utf8.DecodeRuneInString(s)
	}
	return s[:end], s[end:]
}
