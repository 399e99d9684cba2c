//go:build !tinygo

package hal

import "time"

// hostTickDuration is the wall-clock length of one kernel tick.
const hostTickDuration = time.Millisecond

// hostTime converts frame/timer callbacks into a 1ms tick sequence.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits the ticks elapsed since the previous call; the first call emits n.
func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.emit(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / hostTickDuration)
	if ticks == 0 {
		return
	}
	t.acc %= hostTickDuration
	t.emit(ticks)
}

func (t *hostTime) emit(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
			// Consumers only care about the latest value.
		}
	}
}
