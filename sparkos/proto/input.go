package proto

import "encoding/binary"

// KeyInputPayload encodes a MsgKeyInput payload.
//
// Layout (little-endian):
//   - u16: key code
//   - u8:  1 = press, 0 = release
//   - i32: rune (0 when the key has no text)
func KeyInputPayload(code uint16, press bool, r rune) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	if press {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint32(buf[3:7], uint32(r))
	return buf
}

func DecodeKeyInputPayload(b []byte) (code uint16, press bool, r rune, ok bool) {
	if len(b) != 7 || b[2] > 1 {
		return 0, false, 0, false
	}
	code = binary.LittleEndian.Uint16(b[0:2])
	r = rune(int32(binary.LittleEndian.Uint32(b[3:7])))
	return code, b[2] == 1, r, true
}

// PointerInputPayload encodes a MsgPointerInput payload.
//
// Layout (little-endian):
//   - i16: x
//   - i16: y
//   - u8:  1 = press, 0 = release
func PointerInputPayload(x, y int, press bool) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(x)))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(int16(y)))
	if press {
		buf[4] = 1
	}
	return buf
}

func DecodePointerInputPayload(b []byte) (x, y int, press bool, ok bool) {
	if len(b) != 5 || b[4] > 1 {
		return 0, 0, false, false
	}
	x = int(int16(binary.LittleEndian.Uint16(b[0:2])))
	y = int(int16(binary.LittleEndian.Uint16(b[2:4])))
	return x, y, b[4] == 1, true
}
