package calc

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/gfx"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// Config wires the calculator task to the rest of the system.
type Config struct {
	// LogCap receives state transitions and evaluation failures.
	LogCap kernel.Capability
	// Clicker plays the key-click tone (optional).
	Clicker hal.Audio
	// Precision is the number of decimal places results keep, clamped to
	// 0..12. Callers wanting the usual rounding pass DefaultPrecision.
	Precision int
}

// pressedTicks is how long a pressed key stays highlighted (1ms ticks on host).
const pressedTicks = 120

// Task runs an Engine behind a keypad UI.
type Task struct {
	disp hal.Display
	ep   kernel.Capability
	cfg  Config

	eng   *Engine
	r     *Renderer
	focus Focus

	pressed      bool
	pressedUntil uint64
	dirty        bool
	state        State
}

func New(disp hal.Display, ep kernel.Capability, cfg Config) *Task {
	return &Task{disp: disp, ep: ep, cfg: cfg, focus: DefaultFocus}
}

// Engine exposes the task's engine. It must only be touched from Run.
func (t *Task) Engine() *Engine { return t.eng }

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}

	t.eng = NewEngine(func(string) { t.dirty = true })
	t.eng.SetPrecision(t.cfg.Precision)
	t.state = t.eng.State()

	if t.disp != nil {
		if fb := t.disp.Framebuffer(); fb != nil && fb.Format() == hal.PixelFormatRGB565 {
			t.r = NewRenderer(gfx.NewDisplay(fb))
		}
	}
	t.dirty = true
	t.redraw()

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
		case msg, ok := <-ch:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgAppShutdown:
				t.log(ctx, "calc: shutdown")
				return

			case proto.MsgKeyInput:
				code, press, _, ok := proto.DecodeKeyInputPayload(msg.Payload())
				if !ok || !press {
					continue
				}
				t.handleKey(ctx, hal.KeyCode(code))

			case proto.MsgPointerInput:
				x, y, press, ok := proto.DecodePointerInputPayload(msg.Payload())
				if !ok || !press || t.r == nil {
					continue
				}
				f, hit := t.r.Layout().HitTest(x, y)
				if !hit {
					continue
				}
				t.focus = f
				t.press(ctx, f.Key().Action)

			case proto.MsgCalcAction:
				if msg.Len == 0 {
					t.reply(ctx, msg.Cap)
					continue
				}
				name, ok := proto.DecodeCalcActionPayload(msg.Payload())
				if !ok {
					t.log(ctx, "calc: bad action payload")
					t.reply(ctx, msg.Cap)
					continue
				}
				a := Action(name)
				if row, col, found := FindKey(a); found {
					t.focus = Focus{Row: row, Col: col}
				}
				t.press(ctx, a)
				t.reply(ctx, msg.Cap)
			}

		case now := <-tickCh:
			if t.pressed && now >= t.pressedUntil {
				t.pressed = false
				t.dirty = true
			}
		}
		t.redraw()
	}
}

func (t *Task) handleKey(ctx *kernel.Context, code hal.KeyCode) {
	switch code {
	case hal.KeyUp:
		t.moveFocus(-1, 0)
	case hal.KeyDown:
		t.moveFocus(1, 0)
	case hal.KeyLeft:
		t.moveFocus(0, -1)
	case hal.KeyRight:
		t.moveFocus(0, 1)
	case hal.KeyEnter:
		t.press(ctx, t.focus.Key().Action)
	case hal.KeyEscape:
		t.press(ctx, ActionClear)
	case hal.KeyBackspace:
		t.press(ctx, ActionBackspace)
	}
}

func (t *Task) moveFocus(dr, dc int) {
	t.focus = t.focus.Move(dr, dc)
	t.dirty = true
}

// press dispatches a and logs the outcome.
func (t *Task) press(ctx *kernel.Context, a Action) {
	if t.cfg.Clicker != nil {
		t.cfg.Clicker.Click()
	}
	t.pressed = true
	t.pressedUntil = ctx.NowTick() + pressedTicks
	t.dirty = true

	if err := t.eng.Dispatch(a); err != nil {
		t.log(ctx, err.Error())
		return
	}

	if st := t.eng.State(); st != t.state {
		t.logf(ctx, "calc: %s -> %s (%s)", t.state, st, a)
		t.state = st
		if st == StateError && t.eng.Err() != nil {
			t.log(ctx, t.eng.Err().Error())
		}
	}
}

// reply answers a MsgCalcAction with the display it produced. Requests
// without a reply capability get no answer.
func (t *Task) reply(ctx *kernel.Context, to kernel.Capability) {
	if !to.Valid() {
		return
	}
	payload := proto.CalcDisplayPayload(uint8(t.eng.State()), t.eng.Display())
	_ = ctx.SendToCapResult(to, uint16(proto.MsgCalcDisplay), payload, kernel.Capability{})
}

func (t *Task) redraw() {
	if !t.dirty || t.r == nil {
		return
	}
	t.dirty = false
	_ = t.r.Draw(View{
		Display: t.eng.Display(),
		State:   t.eng.State(),
		Focus:   t.focus,
		Pressed: t.pressed,
	})
}

func (t *Task) log(ctx *kernel.Context, line string) {
	if !t.cfg.LogCap.Valid() {
		return
	}
	_ = logger.Log(ctx, t.cfg.LogCap, line)
}

func (t *Task) logf(ctx *kernel.Context, format string, args ...any) {
	if !t.cfg.LogCap.Valid() {
		return
	}
	_ = logger.Logf(ctx, t.cfg.LogCap, format, args...)
}
