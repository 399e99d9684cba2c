package kernel

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// PanicHandler receives the first task panic of the process.
type PanicHandler func(PanicInfo)

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // PanicHandler
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func SetPanicHandler(fn PanicHandler) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = debug.Stack()
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(PanicHandler); ok && fn != nil {
				fn(info)
			}
		}
	})
}
