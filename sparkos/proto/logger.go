package proto

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Lines longer than maxBytes are cut at a rune boundary.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(line string, maxBytes int) []byte {
	if maxBytes >= 0 && len(line) > maxBytes {
		cut := maxBytes
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}
