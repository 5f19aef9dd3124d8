// SPDX-License-Identifier: Unlicense OR MIT

// Command trapview runs the kernel's trap handlers against a simulated
// PC and shows the framebuffer in a window.
//
// Keys typed in the terminal reach the simulated keyboard controller.
// Ctrl-D raises a double fault, Ctrl-P a write page fault at
// 0xdeadbeef and Ctrl-C quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gioui.org/app"
	"gioui.org/io/system"

	"tokyo.dev/tokyo/render"
	"tokyo.dev/tokyo/sim"
)

var configFlag = flag.String("config", "", "YAML configuration `file`")

// doubleFaultStack is the interrupt stack of the double fault handler.
const doubleFaultStack = 1

func main() {
	flag.Parse()
	go func() {
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "trapview: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run() error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	restore, raw, err := rawTerminal(os.Stdin)
	if err != nil {
		return err
	}
	defer restore()
	var out io.Writer = os.Stderr
	if raw {
		out = crlfWriter{os.Stderr}
	}
	level, _ := cfg.level()
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	info := cfg.info()
	fb, err := newFramebuffer(info.Stride * info.Height * info.BytesPerPixel)
	if err != nil {
		return err
	}
	defer fb.Close()
	view, err := render.NewView(fb.mem, info)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}

	w := newWindow(&cfg)
	disp := &display{view: view, changed: w.Invalidate}

	m := sim.NewMachine(sim.NewBus(), log)
	defer m.Close()
	k, err := sim.Boot(m, disp, sim.Config{
		TimerHz:          cfg.TimerHz,
		DoubleFaultStack: doubleFaultStack,
		Debug:            out,
	})
	if err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	log.Info("kernel booted",
		"timer_hz", k.TimerHz,
		"gates", k.IDT.Table().Bound(),
		"format", info.Format,
		"width", info.Width,
		"height", info.Height,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go func() {
		if err := m.RunTimer(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("timer stopped", "err", err)
		}
	}()
	go func() {
		if err := feedInput(os.Stdin, m, log); err != nil {
			log.Error("read input", "err", err)
		}
		cancel()
	}()
	go func() {
		select {
		case <-m.Halted():
			log.Warn("processor halted, press Ctrl-C to quit")
		case <-ctx.Done():
		}
	}()
	go func() {
		<-ctx.Done()
		w.Perform(system.ActionClose)
	}()
	return runWindow(w, disp)
}
