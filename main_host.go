//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/internal/tui"
	"sparkcalc/sparkos/tasks/calc"
)

func main() {
	var cfg hal.HeadlessConfig
	var win hal.WindowConfig
	var script string
	var useTUI, version bool
	var precision int
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&script, "script", "", `Button presses to run, e.g. "12,add,3,calculate" or "12 + 3 =".`)
	flag.BoolVar(&useTUI, "tui", false, "Run the terminal UI instead of the framebuffer.")
	flag.BoolVar(&win.Click, "click", false, "Play a click on every button press (window mode).")
	flag.IntVar(&win.Scale, "scale", 2, "Window zoom factor.")
	flag.IntVar(&precision, "precision", calc.DefaultPrecision, "Decimal places kept in results.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println("sparkcalc", buildinfo.String())
		return
	}

	actions, err := calc.ParseScript(script)
	if err != nil {
		fmt.Fprintln(os.Stderr, "-script:", err)
		os.Exit(2)
	}
	appCfg := app.Config{Script: actions, Precision: precision, ExitOnPanic: cfg.Enabled}
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, appCfg) }

	if useTUI {
		if err := tui.Run(tui.Config{Precision: precision}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrHalt) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, win); err != nil && !errors.Is(err, app.ErrHalt) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
