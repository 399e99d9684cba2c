package kernel

import "sync"

const (
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields) and may be transferred via IPC.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// Message is a fixed-size IPC envelope.
type Message struct {
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 128

// Payload returns the valid part of Data. Len is clamped to MaxMessageBytes.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a unit of execution. Each task runs on its own goroutine and
// returns from Run when it is done.
type Task interface {
	Run(*Context)
}

type endpointState struct {
	ch chan Message
}

// Kernel routes IPC between tasks and distributes the tick timebase.
type Kernel struct {
	mu            sync.Mutex
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint
	taskCount     int

	tickMu sync.Mutex
	tick   uint64
	// tickNext is closed and replaced on every tick advance.
	tickNext chan struct{}
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{tickNext: make(chan struct{})}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep].ch = make(chan Message, mailboxSlots)
	return Capability{ep: ep, rights: rights}
}

// AddTask starts t on a new goroutine and returns its ID.
//
// A panic inside the task is recovered and reported to the panic handler.
func (k *Kernel) AddTask(t Task) TaskID {
	k.mu.Lock()
	id := TaskID(k.taskCount)
	k.taskCount++
	k.mu.Unlock()

	go k.runTask(id, t)
	return id
}

func (k *Kernel) runTask(id TaskID, t Task) {
	defer func() {
		if v := recover(); v != nil {
			triggerPanic(PanicInfo{TaskID: id, Value: v})
		}
	}()
	t.Run(&Context{k: k})
}

// NewContext returns a context that is not bound to a running task. It lets
// drivers and tests talk to endpoints from outside the task set.
func (k *Kernel) NewContext() *Context {
	return &Context{k: k}
}

// TickTo advances the timebase to seq and wakes tick waiters.
// Values at or below the current tick are ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.tickMu.Lock()
	if seq > k.tick {
		k.tick = seq
		close(k.tickNext)
		k.tickNext = make(chan struct{})
	}
	k.tickMu.Unlock()
}

func (k *Kernel) nowTick() uint64 {
	k.tickMu.Lock()
	defer k.tickMu.Unlock()
	return k.tick
}

// tickSignal returns the current tick and a channel closed by the next advance.
func (k *Kernel) tickSignal() (uint64, <-chan struct{}) {
	k.tickMu.Lock()
	defer k.tickMu.Unlock()
	return k.tick, k.tickNext
}

func (k *Kernel) waitTick(after uint64) uint64 {
	for {
		now, next := k.tickSignal()
		if now > after {
			return now
		}
		<-next
	}
}

func (k *Kernel) endpointChan(ep Endpoint) chan Message {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ep >= k.endpointCount {
		return nil
	}
	return k.endpoints[ep].ch
}

func (k *Kernel) send(to Endpoint, kind uint16, payload []byte, xfer Capability) (res SendResult) {
	ch := k.endpointChan(to)
	if ch == nil {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	msg.Cap = xfer

	// A closed endpoint panics on send.
	defer func() {
		if recover() != nil {
			res = SendErrNoEndpoint
		}
	}()

	select {
	case ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}
