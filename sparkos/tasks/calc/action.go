package calc

import (
	"errors"
	"fmt"
	"strings"
)

// Action names a keypad button. Digits and "." are actions too.
type Action string

const (
	ActionClear     Action = "clear"
	ActionBackspace Action = "backspace"
	ActionNegate    Action = "negate"
	ActionPercent   Action = "percent"
	ActionCalculate Action = "calculate"
	ActionAdd       Action = "add"
	ActionSubtract  Action = "subtract"
	ActionMultiply  Action = "multiply"
	ActionDivide    Action = "divide"
	ActionDecimal   Action = "."
)

// ErrUnknownAction is returned by Dispatch for names it does not recognize.
var ErrUnknownAction = errors.New("calc: unknown action")

// Valid reports whether Dispatch accepts a.
func (a Action) Valid() bool {
	switch a {
	case ActionClear, ActionBackspace, ActionNegate, ActionPercent, ActionCalculate,
		ActionAdd, ActionSubtract, ActionMultiply, ActionDivide:
		return true
	}
	return isDigitToken(string(a))
}

// Op returns the operator for the add/subtract/multiply/divide actions.
func (a Action) Op() Op {
	switch a {
	case ActionAdd:
		return OpAdd
	case ActionSubtract:
		return OpSubtract
	case ActionMultiply:
		return OpMultiply
	case ActionDivide:
		return OpDivide
	default:
		return OpNone
	}
}

// Dispatch maps an action name or digit token to the engine method.
func (e *Engine) Dispatch(a Action) error {
	switch a {
	case ActionClear:
		e.Clear()
	case ActionBackspace:
		e.Backspace()
	case ActionNegate:
		e.Negate()
	case ActionPercent:
		e.Percent()
	case ActionCalculate:
		e.Evaluate()
	case ActionAdd, ActionSubtract, ActionMultiply, ActionDivide:
		e.SetOperation(a.Op())
	default:
		if !isDigitToken(string(a)) {
			return fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
		}
		e.AppendDigit(string(a))
	}
	return nil
}

// scriptAliases lets scripts use the button glyphs as well as action names.
var scriptAliases = map[string]Action{
	"C": ActionClear,
	"=": ActionCalculate,
	"+": ActionAdd,
	"-": ActionSubtract,
	"×": ActionMultiply,
	"*": ActionMultiply,
	"÷": ActionDivide,
	"/": ActionDivide,
	"±": ActionNegate,
	"%": ActionPercent,
	"⌫": ActionBackspace,
}

// ParseScript splits a comma or whitespace separated list of actions, e.g.
// "1,2,add,3,calculate" or "1 2 + 3 =". Multi-digit words are expanded to one
// action per character ("12" -> "1","2").
func ParseScript(s string) ([]Action, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var out []Action
	for _, f := range fields {
		if a, ok := scriptAliases[f]; ok {
			out = append(out, a)
			continue
		}
		if a := Action(strings.ToLower(f)); a.Valid() {
			out = append(out, a)
			continue
		}
		if isNumberWord(f) {
			for _, r := range f {
				out = append(out, Action(string(r)))
			}
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, f)
	}
	return out, nil
}

func isNumberWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && !isDigit(r) {
			return false
		}
	}
	return true
}
