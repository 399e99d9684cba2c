package input

import (
	"testing"
	"time"

	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

type fakeInput struct {
	kbd fakeKeyboard
	ptr fakePointer
}

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }
func (in fakeInput) Pointer() hal.Pointer   { return in.ptr }

func recvMsg(t *testing.T, ch <-chan kernel.Message) kernel.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for input message")
	}
	return kernel.Message{}
}

func TestServiceForwardsKeysAndClicks(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	in := fakeInput{
		kbd: fakeKeyboard{ch: make(chan hal.KeyEvent, 4)},
		ptr: fakePointer{ch: make(chan hal.PointerEvent, 4)},
	}
	k.AddTask(New(in, ep.Restrict(kernel.RightSend)))

	ch, ok := k.NewContext().RecvChan(ep.Restrict(kernel.RightRecv))
	if !ok {
		t.Fatal("expected recv channel")
	}

	in.kbd.ch <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	msg := recvMsg(t, ch)
	if proto.Kind(msg.Kind) != proto.MsgKeyInput {
		t.Fatalf("kind=%s, want key_input", proto.Kind(msg.Kind))
	}
	code, press, _, ok := proto.DecodeKeyInputPayload(msg.Payload())
	if !ok || hal.KeyCode(code) != hal.KeyEnter || !press {
		t.Fatalf("decoded (%d,%v,%v)", code, press, ok)
	}

	in.ptr.ch <- hal.PointerEvent{X: 40, Y: 200, Press: true}
	msg = recvMsg(t, ch)
	x, y, press, ok := proto.DecodePointerInputPayload(msg.Payload())
	if proto.Kind(msg.Kind) != proto.MsgPointerInput || !ok || x != 40 || y != 200 || !press {
		t.Fatalf("pointer message kind=%s decoded=(%d,%d,%v,%v)", proto.Kind(msg.Kind), x, y, press, ok)
	}
}

func TestRepeatableKeys(t *testing.T) {
	if !repeatableKey(hal.KeyLeft) || !repeatableKey(hal.KeyBackspace) {
		t.Fatal("navigation keys should repeat")
	}
	if repeatableKey(hal.KeyEnter) || repeatableKey(hal.KeyEscape) {
		t.Fatal("enter/escape must not repeat")
	}
}

func TestHandleRepeatEmitsAfterDelay(t *testing.T) {
	s := &Service{held: true, heldCode: hal.KeyDown, nextRepeatTick: 100}
	s.handleRepeat(99)
	if len(s.pending) != 0 {
		t.Fatal("repeat fired before the delay")
	}
	s.handleRepeat(100)
	if len(s.pending) != 1 {
		t.Fatalf("pending=%d, want 1", len(s.pending))
	}
	if s.nextRepeatTick != 100+repeatRateTicks {
		t.Fatalf("nextRepeatTick=%d", s.nextRepeatTick)
	}
}
