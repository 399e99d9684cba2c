package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimal places results are rounded to.
const DefaultPrecision = 6

// maxPrecision keeps the rounding scale well inside float64 range.
const maxPrecision = 12

var (
	// ErrEvaluation wraps every evaluation failure.
	ErrEvaluation = errors.New("calc: evaluation failed")

	ErrDivisionByZero = errors.New("division by zero")
	ErrMalformed      = errors.New("malformed expression")
	ErrOverflow       = errors.New("result out of range")
	ErrIncomplete     = errors.New("incomplete expression")
)

// evalTokens folds a complete token sequence from left to right.
func evalTokens(toks []Token) (float64, error) {
	if len(toks)%2 == 0 {
		return 0, fmt.Errorf("%w: %w", ErrEvaluation, ErrMalformed)
	}
	acc, err := operandValue(toks[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	for i := 1; i < len(toks); i += 2 {
		if toks[i].Kind != TokenOperator {
			return 0, fmt.Errorf("%w: %w: expected operator at token %d", ErrEvaluation, ErrMalformed, i)
		}
		rhs, err := operandValue(toks[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrEvaluation, err)
		}
		acc, err = toks[i].Op.apply(acc, rhs)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrEvaluation, err)
		}
	}
	if math.IsInf(acc, 0) || math.IsNaN(acc) {
		return 0, fmt.Errorf("%w: %w", ErrEvaluation, ErrOverflow)
	}
	return acc, nil
}

// operandValue parses an operand of the form -?digits[.digits] (either side
// of the point may be empty, but not both).
func operandValue(t Token) (float64, error) {
	if t.Kind != TokenOperand {
		return 0, fmt.Errorf("%w: expected operand", ErrMalformed)
	}
	s := strings.TrimPrefix(t.Text, "-")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case isDigit(r):
			digits++
		case r == '.':
			dots++
		default:
			return 0, fmt.Errorf("%w: operand %q", ErrMalformed, t.Text)
		}
	}
	if digits == 0 || dots > 1 {
		return 0, fmt.Errorf("%w: operand %q", ErrMalformed, t.Text)
	}
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: operand %q", ErrOverflow, t.Text)
		}
		return 0, fmt.Errorf("%w: operand %q", ErrMalformed, t.Text)
	}
	return v, nil
}

// FormatResult rounds v to places decimals and renders it without trailing
// zeros or exponent. Negative zero renders as "0".
func FormatResult(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	if places > maxPrecision {
		places = maxPrecision
	}
	scale := math.Pow10(places)
	// Beyond 2^53 every float64 is an integer and rounding is a no-op.
	if scaled := v * scale; math.Abs(scaled) < 1<<53 {
		v = math.Round(scaled) / scale
	}
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Evaluate parses and evaluates a display-format expression and returns the
// formatted result. A bare operand is returned normalized.
func Evaluate(expr string, places int) (string, error) {
	toks, err := Parse(expr)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	if toks[len(toks)-1].Kind == TokenOperator {
		return "", fmt.Errorf("%w: %w", ErrEvaluation, ErrIncomplete)
	}
	v, err := evalTokens(toks)
	if err != nil {
		return "", err
	}
	return FormatResult(v, places), nil
}
