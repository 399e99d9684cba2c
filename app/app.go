package app

import (
	"errors"

	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/services/input"
	"sparkcalc/sparkos/services/logger"
	"sparkcalc/sparkos/tasks/calc"
)

// ErrHalt is returned by the step function once a scripted run has finished
// and the log has been flushed.
var ErrHalt = errors.New("app: halted")

// ErrPanicked is returned by the step function after a task panic when
// Config.ExitOnPanic is set.
var ErrPanicked = errors.New("app: task panicked")

type Config struct {
	// Script is fed to the calculator one action at a time, each waiting
	// for the display update. The system halts when it runs out.
	Script []calc.Action
	// Precision is the number of decimal places results keep, clamped to
	// 0..12.
	Precision int
	// ExitOnPanic makes the step function fail after a task panic instead of
	// leaving the panic screen up.
	ExitOnPanic bool
}

type system struct {
	k *kernel.Kernel

	cfg       Config
	loggerOut chan struct{}
}

// New initializes and starts the calculator with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{Precision: calc.DefaultPrecision})
}

// NewWithConfig starts the kernel and its tasks and returns the per-frame
// step function for the host runner.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	installPanicHandler(h)
	s := newSystem(h, cfg)
	return s.step
}

func newSystem(h hal.HAL, cfg Config) *system {
	k := kernel.New()
	s := &system{k: k, cfg: cfg, loggerOut: make(chan struct{})}

	if l := h.Logger(); l != nil {
		l.WriteLineString("SparkCalc " + buildinfo.String())
	}

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(&tracked{t: logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)), done: s.loggerOut})

	calcCfg := calc.Config{
		LogCap:    logEP.Restrict(kernel.RightSend),
		Clicker:   h.Audio(),
		Precision: cfg.Precision,
	}

	var script *scriptTask
	if len(cfg.Script) > 0 {
		script = &scriptTask{
			actions: cfg.Script,
			calcCap: calcEP.Restrict(kernel.RightSend),
			logCap:  logEP.Restrict(kernel.RightSend),
		}
	}

	calcDone := make(chan struct{})
	k.AddTask(&tracked{t: calc.New(h.Display(), calcEP.Restrict(kernel.RightRecv), calcCfg), done: calcDone})

	if in := h.Input(); in != nil {
		k.AddTask(input.New(in, calcEP.Restrict(kernel.RightSend)))
	}

	if script != nil {
		script.calcDone = calcDone
		k.AddTask(script)
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}

func (s *system) step() error {
	if s.cfg.ExitOnPanic && kernel.InPanicMode() {
		return ErrPanicked
	}
	select {
	case <-s.loggerOut:
		return ErrHalt
	default:
		return nil
	}
}

// tracked closes done when the wrapped task returns.
type tracked struct {
	t    kernel.Task
	done chan struct{}
}

func (t *tracked) Run(ctx *kernel.Context) {
	defer close(t.done)
	t.t.Run(ctx)
}
