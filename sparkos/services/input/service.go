package input

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

type pendingMsg struct {
	kind    proto.Kind
	payload []byte
}

// Service forwards keyboard and pointer events to a consumer endpoint as
// MsgKeyInput / MsgPointerInput messages, generating key repeat for held
// navigation keys.
type Service struct {
	in     hal.Input
	outCap kernel.Capability

	keys   <-chan hal.KeyEvent
	clicks <-chan hal.PointerEvent

	pending []pendingMsg

	heldCode       hal.KeyCode
	held           bool
	nextRepeatTick uint64
}

func New(in hal.Input, outCap kernel.Capability) *Service {
	return &Service{in: in, outCap: outCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.in == nil {
		return
	}
	if kbd := s.in.Keyboard(); kbd != nil {
		s.keys = kbd.Events()
	}
	if ptr := s.in.Pointer(); ptr != nil {
		s.clicks = ptr.Events()
	}
	if s.keys == nil && s.clicks == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			var ok bool
			last, ok = ctx.WaitTickOr(last, done)
			if !ok {
				return
			}
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case ev, ok := <-s.keys:
			if !ok {
				return
			}
			s.handleKeyEvent(ctx, ev)
		case ev, ok := <-s.clicks:
			if !ok {
				return
			}
			s.queue(proto.MsgPointerInput, proto.PointerInputPayload(ev.X, ev.Y, ev.Press))
			s.flush(ctx)
		case tick := <-tickCh:
			s.handleRepeat(tick)
			s.flush(ctx)
		}
	}
}

func (s *Service) handleKeyEvent(ctx *kernel.Context, ev hal.KeyEvent) {
	if !ev.Press {
		if s.held && ev.Code == s.heldCode {
			s.held = false
			s.nextRepeatTick = 0
		}
		s.queue(proto.MsgKeyInput, proto.KeyInputPayload(uint16(ev.Code), false, ev.Rune))
		s.flush(ctx)
		return
	}

	s.queue(proto.MsgKeyInput, proto.KeyInputPayload(uint16(ev.Code), true, ev.Rune))
	s.flush(ctx)

	if !repeatableKey(ev.Code) {
		return
	}
	s.held = true
	s.heldCode = ev.Code
	s.nextRepeatTick = ctx.NowTick() + repeatDelayTicks
}

func (s *Service) handleRepeat(tick uint64) {
	if !s.held || tick < s.nextRepeatTick {
		return
	}
	s.queue(proto.MsgKeyInput, proto.KeyInputPayload(uint16(s.heldCode), true, 0))
	s.nextRepeatTick = tick + repeatRateTicks
}

func (s *Service) queue(kind proto.Kind, payload []byte) {
	if len(s.pending) >= maxPending {
		// Drop the oldest event rather than grow without bound.
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, pendingMsg{kind: kind, payload: payload})
}

func (s *Service) flush(ctx *kernel.Context) {
	if !s.outCap.Valid() {
		s.pending = nil
		return
	}
	for len(s.pending) > 0 {
		m := s.pending[0]
		res := ctx.SendToCapResult(s.outCap, uint16(m.kind), m.payload, kernel.Capability{})
		switch res {
		case kernel.SendOK:
			s.pending = s.pending[1:]
		case kernel.SendErrQueueFull:
			return
		default:
			s.pending = nil
			return
		}
	}
}

const (
	// Ticks are 1ms on host.
	repeatDelayTicks = 350
	repeatRateTicks  = 60

	maxPending = 32
)

// repeatableKey reports whether holding the key should auto-repeat.
// Enter is excluded so a held key never presses a button twice.
func repeatableKey(code hal.KeyCode) bool {
	switch code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight, hal.KeyBackspace:
		return true
	default:
		return false
	}
}
