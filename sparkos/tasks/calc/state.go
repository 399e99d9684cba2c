package calc

// State is the coarse engine state derived from the expression and flags.
type State uint8

const (
	StateInitial State = iota
	StateEnteringFirstOperand
	StateOperatorPending
	StateEnteringSecondOperand
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateEnteringFirstOperand:
		return "first-operand"
	case StateOperatorPending:
		return "operator-pending"
	case StateEnteringSecondOperand:
		return "second-operand"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
