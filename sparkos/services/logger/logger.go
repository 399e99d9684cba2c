package logger

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// Service drains MsgLogLine messages into the HAL logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgLogLine:
			if s.log != nil {
				s.log.WriteLineBytes(msg.Payload())
			}
		case proto.MsgAppShutdown:
			return
		}
	}
}
