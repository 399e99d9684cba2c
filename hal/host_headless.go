//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Ticks stops the runner after N steps (0 = run until step fails or ctx ends).
	Ticks uint64
	// Log receives logger output (default stdout).
	Log io.Writer
}

// RunHeadless runs the system without opening a window.
//
// A non-nil error from step stops the loop and is returned as-is.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Log)
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
