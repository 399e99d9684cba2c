package calc

import "fmt"

// Op is a binary arithmetic operator.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the space-padded form used in the display string.
func (o Op) Symbol() string {
	switch o {
	case OpAdd:
		return " + "
	case OpSubtract:
		return " - "
	case OpMultiply:
		return " × "
	case OpDivide:
		return " ÷ "
	default:
		return ""
	}
}

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

func (o Op) valid() bool {
	return o >= OpAdd && o <= OpDivide
}

func (o Op) apply(a, b float64) (float64, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: operator %d", ErrMalformed, o)
	}
}

// opFromRune maps display glyphs and their ASCII spellings to operators.
func opFromRune(r rune) Op {
	switch r {
	case '+':
		return OpAdd
	case '-', '−':
		return OpSubtract
	case '×', '*', 'x', 'X':
		return OpMultiply
	case '÷', '/':
		return OpDivide
	default:
		return OpNone
	}
}
