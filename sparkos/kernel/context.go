package kernel

// Context provides task-local access to kernel operations.
type Context struct {
	k *Kernel
}

// RecvChan returns the inbound message channel for an endpoint capability.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if c == nil || c.k == nil {
		return nil, false
	}
	if !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}
	ch := c.k.endpointChan(epCap.ep)
	if ch == nil {
		return nil, false
	}
	return ch, true
}

// Recv reads one message from the capability endpoint, blocking until a message arrives.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	msg, ok := <-ch
	return msg, ok
}

// TryRecv reads one message from the capability endpoint without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// BlockOnTick blocks the task until the tick advances.
func (c *Context) BlockOnTick() {
	if c.k == nil {
		return
	}
	_ = c.k.waitTick(c.k.nowTick())
}

// SendTo sends a message to the capability endpoint.
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToCapResult(toCap, kind, payload, Capability{}) == SendOK
}

// SendToCapResult sends a message and transfers an optional capability.
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(toCap.ep, kind, payload, xfer)
}

// SendToCapRetry is SendToCapResult that waits one tick and retries while the
// destination queue is full, at most limit times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	for i := 0; i < limit && res == SendErrQueueFull; i++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload, xfer)
	}
	return res
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (c *Context) NewEndpoint(rights Rights) Capability {
	if c.k == nil {
		return Capability{}
	}
	return c.k.NewEndpoint(rights)
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until tick advances past the provided value and returns the new tick.
func (c *Context) WaitTick(after uint64) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.waitTick(after)
}

// WaitTickOr is WaitTick that also returns, with ok false, once done is closed.
func (c *Context) WaitTickOr(after uint64, done <-chan struct{}) (tick uint64, ok bool) {
	if c.k == nil {
		return 0, false
	}
	for {
		now, next := c.k.tickSignal()
		if now > after {
			return now, true
		}
		select {
		case <-next:
		case <-done:
			return now, false
		}
	}
}
