package hal

const (
	clickHz        = 2000
	clickMillis    = 18
	clickAmplitude = 9000
)

// clickPCM renders a short decaying square-wave tick as 16-bit little-endian
// stereo PCM at sampleRate.
func clickPCM(sampleRate int) []byte {
	if sampleRate <= 0 {
		return nil
	}
	n := sampleRate * clickMillis / 1000
	half := sampleRate / clickHz / 2
	if half <= 0 {
		half = 1
	}

	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		amp := clickAmplitude * (n - i) / n
		v := int16(amp)
		if (i/half)%2 == 1 {
			v = -v
		}
		j := i * 4
		out[j+0] = byte(v)
		out[j+1] = byte(uint16(v) >> 8)
		out[j+2] = byte(v)
		out[j+3] = byte(uint16(v) >> 8)
	}
	return out
}
