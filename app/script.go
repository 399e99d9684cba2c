package app

import (
	"fmt"

	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
	"sparkcalc/sparkos/tasks/calc"
)

// sendRetryTicks bounds how long the script waits for queue space.
const sendRetryTicks = 500

// scriptTask presses calculator buttons in order, waiting for each display
// reply, then shuts the system down.
type scriptTask struct {
	actions  []calc.Action
	calcCap  kernel.Capability
	logCap   kernel.Capability
	calcDone <-chan struct{}
}

func (s *scriptTask) Run(ctx *kernel.Context) {
	replyEP := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	replies, ok := ctx.RecvChan(replyEP)
	if !ok {
		s.log(ctx, "script: no reply endpoint")
		s.stop(ctx)
		return
	}
	replyCap := replyEP.Restrict(kernel.RightSend)

	last := ""
	for i, a := range s.actions {
		res := ctx.SendToCapRetry(s.calcCap, uint16(proto.MsgCalcAction), proto.CalcActionPayload(string(a)), replyCap, sendRetryTicks)
		if res != kernel.SendOK {
			s.log(ctx, fmt.Sprintf("script: step %d %q: send: %s", i+1, a, res))
			break
		}

		display, ok := s.awaitDisplay(replies)
		if !ok {
			s.log(ctx, fmt.Sprintf("script: step %d %q: no reply", i+1, a))
			break
		}
		last = display
		s.log(ctx, fmt.Sprintf("script: %s -> %q", a, display))
	}
	s.log(ctx, fmt.Sprintf("script: done, display %q", last))

	s.stop(ctx)
}

// stop shuts the calculator down, then the logger so every line is written.
func (s *scriptTask) stop(ctx *kernel.Context) {
	if s.shutdown(ctx, s.calcCap) == kernel.SendOK && s.calcDone != nil {
		<-s.calcDone
	}
	s.shutdown(ctx, s.logCap)
}

func (s *scriptTask) awaitDisplay(replies <-chan kernel.Message) (string, bool) {
	for msg := range replies {
		if proto.Kind(msg.Kind) != proto.MsgCalcDisplay {
			continue
		}
		_, display, truncated, ok := proto.DecodeCalcDisplayPayload(msg.Payload())
		if !ok {
			return "", false
		}
		if truncated {
			display = "…" + display
		}
		return display, true
	}
	return "", false
}

// log waits for queue space so no script line is lost.
func (s *scriptTask) log(ctx *kernel.Context, line string) {
	_ = logclient.LogRetry(ctx, s.logCap, line, sendRetryTicks)
}

func (s *scriptTask) shutdown(ctx *kernel.Context, to kernel.Capability) kernel.SendResult {
	return ctx.SendToCapRetry(to, uint16(proto.MsgAppShutdown), nil, kernel.Capability{}, sendRetryTicks)
}
