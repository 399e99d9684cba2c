package calc

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind distinguishes operands from operators.
type TokenKind uint8

const (
	TokenOperand TokenKind = iota + 1
	TokenOperator
)

// Token is one element of an expression.
//
// Operand text is kept verbatim as typed ("-", "3.", ".5" are all valid
// while an operand is being entered); it is only parsed as a number when the
// expression is evaluated.
type Token struct {
	Kind TokenKind
	Text string
	Op   Op
}

func operand(text string) Token { return Token{Kind: TokenOperand, Text: text} }

func operator(op Op) Token { return Token{Kind: TokenOperator, Op: op} }

func (t Token) String() string {
	if t.Kind == TokenOperator {
		return t.Op.Symbol()
	}
	return t.Text
}

// formatTokens renders tokens as a display string.
func formatTokens(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.String())
	}
	return b.String()
}

// Parse splits a display-format expression such as "12 + -3 × 4" into tokens.
//
// Operators may be written with the display glyphs (× ÷) or ASCII (* / x).
// A '-' directly after an operand is subtraction; anywhere else it starts a
// negative operand. The result alternates operand, operator, operand and may
// end with an operator (an expression still being entered).
func Parse(s string) ([]Token, error) {
	var toks []Token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		if unicode.IsSpace(r) {
			i++
			continue
		}

		prevOperand := len(toks) > 0 && toks[len(toks)-1].Kind == TokenOperand
		if op := opFromRune(r); op != OpNone && (op != OpSubtract || prevOperand) {
			if !prevOperand {
				return nil, fmt.Errorf("%w: operator %q at position %d has no left operand", ErrMalformed, r, i)
			}
			toks = append(toks, operator(op))
			i++
			continue
		}

		if r != '-' && r != '.' && !isDigit(r) {
			return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrMalformed, r, i)
		}
		if prevOperand {
			return nil, fmt.Errorf("%w: missing operator before position %d", ErrMalformed, i)
		}
		start := i
		i++
		for i < len(rs) && (isDigit(rs[i]) || rs[i] == '.') {
			i++
		}
		toks = append(toks, operand(string(rs[start:i])))
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrMalformed)
	}
	return toks, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
