package logger

import (
	"sync"
	"testing"
	"time"

	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) WriteLineString(s string) { l.WriteLineBytes([]byte(s)) }

func (l *memLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, string(b))
}

func (l *memLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

type senderTask struct {
	logCap kernel.Capability
	done   chan struct{}
}

func (s senderTask) Run(ctx *kernel.Context) {
	logclient.Logf(ctx, s.logCap, "calc: %s -> %q", "add", "2 + ")
	ctx.SendTo(s.logCap, uint16(proto.MsgAppShutdown), nil)
	close(s.done)
}

func TestServiceWritesLogLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	mem := &memLogger{}

	k.AddTask(New(mem, ep.Restrict(kernel.RightRecv)))
	done := make(chan struct{})
	k.AddTask(senderTask{logCap: ep.Restrict(kernel.RightSend), done: done})
	<-done

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if lines := mem.snapshot(); len(lines) == 1 {
			if lines[0] != `calc: add -> "2 + "` {
				t.Fatalf("line=%q", lines[0])
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("lines=%q, want one line", mem.snapshot())
}
