package calc

// Keypad geometry.
const (
	KeypadRows = 5
	KeypadCols = 4
)

// KeyClass groups keys that share a color.
type KeyClass uint8

const (
	KeyDigit KeyClass = iota
	KeyFunction
	KeyOperator
	KeyEquals
)

// Key is one keypad button.
type Key struct {
	Label  string
	Action Action
	Class  KeyClass
}

// Keypad is the fixed button grid, top row first.
var Keypad = [KeypadRows][KeypadCols]Key{
	{
		{Label: "C", Action: ActionClear, Class: KeyFunction},
		{Label: "⌫", Action: ActionBackspace, Class: KeyFunction},
		{Label: "%", Action: ActionPercent, Class: KeyFunction},
		{Label: "÷", Action: ActionDivide, Class: KeyOperator},
	},
	{
		{Label: "7", Action: "7"},
		{Label: "8", Action: "8"},
		{Label: "9", Action: "9"},
		{Label: "×", Action: ActionMultiply, Class: KeyOperator},
	},
	{
		{Label: "4", Action: "4"},
		{Label: "5", Action: "5"},
		{Label: "6", Action: "6"},
		{Label: "-", Action: ActionSubtract, Class: KeyOperator},
	},
	{
		{Label: "1", Action: "1"},
		{Label: "2", Action: "2"},
		{Label: "3", Action: "3"},
		{Label: "+", Action: ActionAdd, Class: KeyOperator},
	},
	{
		{Label: "±", Action: ActionNegate, Class: KeyFunction},
		{Label: "0", Action: "0"},
		{Label: ".", Action: ActionDecimal},
		{Label: "=", Action: ActionCalculate, Class: KeyEquals},
	},
}

// PlainLabel returns a label that 7-bit fonts and narrow terminals can draw.
func (k Key) PlainLabel() string {
	switch k.Action {
	case ActionBackspace:
		return "DEL"
	case ActionNegate:
		return "+/-"
	}
	return k.Label
}

// KeyAt returns the key at row, col.
func KeyAt(row, col int) (Key, bool) {
	if row < 0 || row >= KeypadRows || col < 0 || col >= KeypadCols {
		return Key{}, false
	}
	return Keypad[row][col], true
}

// FindKey returns the grid position of the key bound to a.
func FindKey(a Action) (row, col int, ok bool) {
	for r := range Keypad {
		for c := range Keypad[r] {
			if Keypad[r][c].Action == a {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Focus is the keypad cursor used for arrow-key navigation.
type Focus struct {
	Row int
	Col int
}

// DefaultFocus starts on the "5" key, in the middle of the digits.
var DefaultFocus = Focus{Row: 2, Col: 1}

// Move shifts the focus by (dr, dc), wrapping around the grid edges.
func (f Focus) Move(dr, dc int) Focus {
	f.Row = ((f.Row+dr)%KeypadRows + KeypadRows) % KeypadRows
	f.Col = ((f.Col+dc)%KeypadCols + KeypadCols) % KeypadCols
	return f
}

// Key returns the focused key.
func (f Focus) Key() Key {
	k, _ := KeyAt(f.Row, f.Col)
	return k
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout places the display panel and keys on a framebuffer.
type Layout struct {
	Width   int
	Height  int
	Display Rect
	Keys    [KeypadRows][KeypadCols]Rect
}

const (
	layoutMargin = 8
	layoutGap    = 6
)

// NewLayout splits a width x height surface into a display panel (top fifth)
// and an evenly spaced key grid.
func NewLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}
	inner := width - 2*layoutMargin
	if inner < KeypadCols {
		inner = KeypadCols
	}

	dispH := height / 5
	l.Display = Rect{X: layoutMargin, Y: layoutMargin, W: inner, H: dispH}

	top := l.Display.Y + dispH + layoutGap
	keysH := height - top - layoutMargin
	keyW := (inner - (KeypadCols-1)*layoutGap) / KeypadCols
	keyH := (keysH - (KeypadRows-1)*layoutGap) / KeypadRows
	if keyW < 1 {
		keyW = 1
	}
	if keyH < 1 {
		keyH = 1
	}

	for r := 0; r < KeypadRows; r++ {
		for c := 0; c < KeypadCols; c++ {
			l.Keys[r][c] = Rect{
				X: layoutMargin + c*(keyW+layoutGap),
				Y: top + r*(keyH+layoutGap),
				W: keyW,
				H: keyH,
			}
		}
	}
	return l
}

// HitTest returns the key under (x, y). Clicks in the gaps hit nothing.
func (l Layout) HitTest(x, y int) (Focus, bool) {
	for r := range l.Keys {
		for c := range l.Keys[r] {
			if l.Keys[r][c].Contains(x, y) {
				return Focus{Row: r, Col: c}, true
			}
		}
	}
	return Focus{}, false
}
