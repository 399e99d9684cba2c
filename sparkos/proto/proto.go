package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKeyInput
	MsgPointerInput
	MsgCalcAction
	MsgCalcDisplay
	MsgAppShutdown
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKeyInput:
		return "key_input"
	case MsgPointerInput:
		return "pointer_input"
	case MsgCalcAction:
		return "calc_action"
	case MsgCalcDisplay:
		return "calc_display"
	case MsgAppShutdown:
		return "app_shutdown"
	default:
		return "unknown"
	}
}
