package calc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrorMarker is the display text after a failed evaluation.
const ErrorMarker = "Error"

const initialExpression = "0"

// Engine is the calculator's expression state machine.
//
// The expression is kept as alternating operand/operator tokens; the display
// string is derived from them. Every method that changes the display invokes
// the render callback with the new display string. Engine is not safe for
// concurrent use.
type Engine struct {
	toks   []Token
	failed bool
	err    error

	lastOperationWasEquals bool
	startNewNumber         bool
	calculationPerformed   bool

	precision int
	render    func(string)
}

// NewEngine returns an engine showing "0". render may be nil.
func NewEngine(render func(string)) *Engine {
	e := &Engine{precision: DefaultPrecision, render: render}
	e.reset()
	return e
}

// SetPrecision sets the number of decimal places results are rounded to.
func (e *Engine) SetPrecision(places int) {
	if places < 0 {
		places = 0
	}
	if places > maxPrecision {
		places = maxPrecision
	}
	e.precision = places
}

// Display returns the current display string.
func (e *Engine) Display() string {
	if e.failed {
		return ErrorMarker
	}
	if len(e.toks) == 0 {
		return initialExpression
	}
	return formatTokens(e.toks)
}

func (e *Engine) String() string { return e.Display() }

// Tokens returns a copy of the current token sequence (nil in the error state).
func (e *Engine) Tokens() []Token {
	if e.failed {
		return nil
	}
	return append([]Token(nil), e.toks...)
}

// Err returns the failure behind the error marker, or nil.
func (e *Engine) Err() error { return e.err }

// State reports the coarse state of the engine.
func (e *Engine) State() State {
	switch {
	case e.failed:
		return StateError
	case e.calculationPerformed:
		return StateResult
	case e.Display() == initialExpression:
		return StateInitial
	case e.endsWithOperator():
		return StateOperatorPending
	case e.hasOperator():
		return StateEnteringSecondOperand
	default:
		return StateEnteringFirstOperand
	}
}

// Load replaces the expression with a parsed display string. The error
// marker is accepted and restores the error state.
func (e *Engine) Load(display string) error {
	if display == ErrorMarker {
		e.fail(nil)
		e.changed()
		return nil
	}
	toks, err := Parse(display)
	if err != nil {
		return err
	}
	e.toks = toks
	e.failed, e.err = false, nil
	e.calculationPerformed = false
	e.lastOperationWasEquals = false
	e.startNewNumber = e.endsWithOperator()
	e.changed()
	return nil
}

// AppendDigit enters "0"-"9" or "." into the expression.
func (e *Engine) AppendDigit(tok string) {
	if !isDigitToken(tok) {
		return
	}

	switch {
	case e.calculationPerformed || e.failed || e.Display() == initialExpression:
		e.toks = append(e.toks[:0], operand(tok))
		e.failed, e.err = false, nil
		e.calculationPerformed = false

	case e.startNewNumber:
		e.toks = append(e.toks, operand(tok))

	case e.lastOperationWasEquals && !e.hasOperator():
		e.toks = append(e.toks[:0], operand(tok))

	default:
		last := e.lastToken()
		if last.Kind == TokenOperator {
			e.toks = append(e.toks, operand(tok))
			break
		}
		if tok == "." && strings.Contains(last.Text, ".") {
			return
		}
		last.Text += tok
	}

	e.startNewNumber = false
	e.lastOperationWasEquals = false
	e.changed()
}

// Backspace removes the last typed character or the trailing operator.
func (e *Engine) Backspace() {
	if e.calculationPerformed {
		e.Clear()
		return
	}
	if e.failed || utf8.RuneCountInString(e.Display()) == 1 {
		e.toks = append(e.toks[:0], operand(initialExpression))
		e.failed, e.err = false, nil
		e.startNewNumber = false
		e.changed()
		return
	}

	last := e.lastToken()
	if last.Kind == TokenOperator {
		e.toks = e.toks[:len(e.toks)-1]
		e.startNewNumber = false
		e.changed()
		return
	}

	last.Text = last.Text[:len(last.Text)-1]
	if last.Text == "" {
		e.toks = e.toks[:len(e.toks)-1]
		e.startNewNumber = true
	}
	e.changed()
}

// SetOperation appends op, or replaces a trailing operator with it. The
// previous result, if any, becomes the first operand.
func (e *Engine) SetOperation(op Op) {
	if e.failed || !op.valid() {
		return
	}
	e.calculationPerformed = false
	if e.endsWithOperator() {
		e.lastToken().Op = op
	} else {
		e.toks = append(e.toks, operator(op))
	}
	e.startNewNumber = true
	e.changed()
}

// Negate flips the sign of the result or of the operand being entered.
func (e *Engine) Negate() {
	if e.failed {
		return
	}

	if e.calculationPerformed {
		v, err := strconv.ParseFloat(e.Display(), 64)
		if err != nil {
			return
		}
		e.toks = append(e.toks[:0], operand(FormatResult(-v, e.precision)))
		e.changed()
		return
	}

	last := e.lastToken()
	switch {
	case last.Kind == TokenOperator:
		// Nothing typed yet: start the operand with a bare sign.
		e.toks = append(e.toks, operand("-"))
		e.startNewNumber = false
	case strings.HasPrefix(last.Text, "-"):
		last.Text = last.Text[1:]
		if last.Text == "" {
			if len(e.toks) == 1 {
				last.Text = initialExpression
			} else {
				e.toks = e.toks[:len(e.toks)-1]
				e.startNewNumber = true
			}
		}
	default:
		last.Text = "-" + last.Text
		e.startNewNumber = false
	}
	e.changed()
}

// Evaluate computes the expression left to right. It does nothing when a
// result is already shown or the expression has no complete operation.
// Failures are absorbed into the error marker.
func (e *Engine) Evaluate() {
	if e.calculationPerformed || e.failed || !e.hasOperator() || e.endsWithOperator() {
		return
	}

	v, err := evalTokens(e.toks)
	if err != nil {
		e.fail(err)
		e.changed()
		return
	}

	e.toks = append(e.toks[:0], operand(FormatResult(v, e.precision)))
	e.calculationPerformed = true
	e.lastOperationWasEquals = true
	e.startNewNumber = true
	e.changed()
}

// Clear resets the engine to its initial state.
func (e *Engine) Clear() {
	e.reset()
	e.changed()
}

// Percent is reserved for a percentage key and currently does nothing.
func (e *Engine) Percent() {}

func (e *Engine) reset() {
	e.toks = append(e.toks[:0], operand(initialExpression))
	e.failed, e.err = false, nil
	e.lastOperationWasEquals = false
	e.startNewNumber = true
	e.calculationPerformed = false
}

func (e *Engine) fail(err error) {
	e.toks = e.toks[:0]
	e.failed, e.err = true, err
	e.calculationPerformed = false
	e.lastOperationWasEquals = false
	e.startNewNumber = false
}

func (e *Engine) changed() {
	if e.render != nil {
		e.render(e.Display())
	}
}

// lastToken returns the trailing token. toks is never empty outside the
// error state.
func (e *Engine) lastToken() *Token {
	return &e.toks[len(e.toks)-1]
}

func (e *Engine) endsWithOperator() bool {
	return !e.failed && len(e.toks) > 0 && e.toks[len(e.toks)-1].Kind == TokenOperator
}

func (e *Engine) hasOperator() bool {
	if e.failed {
		return false
	}
	for _, t := range e.toks {
		if t.Kind == TokenOperator {
			return true
		}
	}
	return false
}

func isDigitToken(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	return tok[0] == '.' || (tok[0] >= '0' && tok[0] <= '9')
}
