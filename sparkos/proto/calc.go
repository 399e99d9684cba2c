package proto

import "unicode/utf8"

// MaxCalcDisplayBytes bounds the display text carried by MsgCalcDisplay so the
// payload fits a kernel message.
const MaxCalcDisplayBytes = 120

// CalcActionPayload encodes a MsgCalcAction payload: the UTF-8 action name.
//
// The sender transfers a reply capability in Message.Cap to receive the
// resulting MsgCalcDisplay. An empty payload presses nothing and only asks for
// the current display.
func CalcActionPayload(action string) []byte {
	return []byte(action)
}

func DecodeCalcActionPayload(b []byte) (action string, ok bool) {
	if len(b) == 0 || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// CalcDisplayPayload encodes a MsgCalcDisplay payload.
//
// Payload format:
//
//	b[0]  : engine state (calc.State)
//	b[1]  : 1 when the text was truncated from the left
//	b[2:] : UTF-8 display text (right-most MaxCalcDisplayBytes bytes)
func CalcDisplayPayload(state uint8, display string) []byte {
	truncated := byte(0)
	if len(display) > MaxCalcDisplayBytes {
		cut := len(display) - MaxCalcDisplayBytes
		for cut < len(display) && !utf8.RuneStart(display[cut]) {
			cut++
		}
		display = display[cut:]
		truncated = 1
	}
	b := make([]byte, 2, 2+len(display))
	b[0] = state
	b[1] = truncated
	return append(b, display...)
}

func DecodeCalcDisplayPayload(b []byte) (state uint8, display string, truncated bool, ok bool) {
	if len(b) < 3 || b[1] > 1 || !utf8.Valid(b[2:]) {
		return 0, "", false, false
	}
	return b[0], string(b[2:]), b[1] == 1, true
}
