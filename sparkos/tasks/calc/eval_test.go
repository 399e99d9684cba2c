package calc

import (
	"errors"
	"math"
	"testing"
)

func TestParse_DisplayFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
		n    int
	}{
		{in: "12", want: "12", n: 1},
		{in: "12 + -3 × 4", want: "12 + -3 × 4", n: 5},
		{in: "12+-3*4", want: "12 + -3 × 4", n: 5},
		{in: "8/2x3", want: "8 ÷ 2 × 3", n: 5},
		{in: "5 - -2", want: "5 - -2", n: 3},
		{in: "-7 − 1", want: "-7 - 1", n: 3},
		{in: "7 ÷ ", want: "7 ÷ ", n: 2},
		{in: "5 + -", want: "5 + -", n: 3},
		{in: ".5 + 3.", want: ".5 + 3.", n: 3},
	}
	for _, tt := range tests {
		toks, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if len(toks) != tt.n {
			t.Fatalf("Parse(%q) tokens=%d, want %d", tt.in, len(toks), tt.n)
		}
		if got := formatTokens(toks); got != tt.want {
			t.Fatalf("Parse(%q) formats as %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "+ 3", "3 + + 4", "3 4", "2 ^ 3", "abc", "(1 + 2)"} {
		if _, err := Parse(in); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q) err=%v, want ErrMalformed", in, err)
		}
	}
}

func TestEvaluate_LeftToRight(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2 + 3", want: "5"},
		{in: "2 + 3 × 4", want: "20"},
		{in: "10 - 4 ÷ 2", want: "3"},
		{in: "1.5 × 4", want: "6"},
		{in: "0.1 + 0.2", want: "0.3"},
		{in: "-2 × -3", want: "6"},
		{in: "1 ÷ 3", want: "0.333333"},
		{in: "5 - 5", want: "0"},
		{in: "-0", want: "0"},
		{in: "007", want: "7"},
		{in: "3.", want: "3"},
		{in: ".25 × 4", want: "1"},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.in, DefaultPrecision)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Evaluate(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEvaluate_Failures(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{in: "1 ÷ 0", want: ErrDivisionByZero},
		{in: "4 - 4 ÷ 0", want: ErrDivisionByZero},
		{in: "5 + - × 3", want: ErrMalformed},
		{in: "1.2.3 + 1", want: ErrMalformed},
		{in: ". + 1", want: ErrMalformed},
		{in: "7 - 2 × ", want: ErrIncomplete},
		{in: "1e5", want: ErrMalformed},
		{in: "9", want: nil},
	}
	for _, tt := range tests {
		_, err := Evaluate(tt.in, DefaultPrecision)
		if tt.want == nil {
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.in, err)
			}
			continue
		}
		if !errors.Is(err, ErrEvaluation) || !errors.Is(err, tt.want) {
			t.Fatalf("Evaluate(%q) err=%v, want ErrEvaluation wrapping %v", tt.in, err, tt.want)
		}
	}
}

func TestEvaluate_Overflow(t *testing.T) {
	big := "9"
	for len(big) < 200 {
		big += "9"
	}
	_, err := Evaluate(big+" × "+big+" × "+big, DefaultPrecision)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("Evaluate(huge) err=%v, want ErrOverflow", err)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   string
	}{
		{v: 5, places: 6, want: "5"},
		{v: -5, places: 6, want: "-5"},
		{v: 2.5, places: 6, want: "2.5"},
		{v: 1.0 / 3, places: 6, want: "0.333333"},
		{v: 2.0 / 3, places: 2, want: "0.67"},
		{v: 0.1 + 0.2, places: 6, want: "0.3"},
		{v: math.Copysign(0, -1), places: 6, want: "0"},
		{v: -0.0000001, places: 6, want: "0"},
		{v: 1e20, places: 6, want: "100000000000000000000"},
		{v: 123.456, places: 0, want: "123"},
		{v: 1.0 / 3, places: 99, want: "0.333333333333"},
	}
	for _, tt := range tests {
		if got := FormatResult(tt.v, tt.places); got != tt.want {
			t.Fatalf("FormatResult(%v, %d)=%q, want %q", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestOp_SymbolAndString(t *testing.T) {
	tests := []struct {
		op     Op
		symbol string
		name   string
	}{
		{op: OpAdd, symbol: " + ", name: "add"},
		{op: OpSubtract, symbol: " - ", name: "subtract"},
		{op: OpMultiply, symbol: " × ", name: "multiply"},
		{op: OpDivide, symbol: " ÷ ", name: "divide"},
	}
	for _, tt := range tests {
		if got := tt.op.Symbol(); got != tt.symbol {
			t.Fatalf("%v.Symbol()=%q, want %q", tt.op, got, tt.symbol)
		}
		if got := tt.op.String(); got != tt.name {
			t.Fatalf("Op(%d).String()=%q, want %q", tt.op, got, tt.name)
		}
	}
}
