// SPDX-License-Identifier: Unlicense OR MIT

package sim

import (
	"fmt"
	"io"

	"tokyo.dev/tokyo/keyboard"
	"tokyo.dev/tokyo/render"
	"tokyo.dev/tokyo/trap"
)

// Config is the boot configuration of a simulated kernel.
type Config struct {
	// TimerHz is the timer interrupt rate.
	TimerHz uint32
	// DoubleFaultStack is the interrupt stack index of the double
	// fault handler.
	DoubleFaultStack uint8
	// Debug receives fault reports, like the serial port on hardware.
	Debug io.Writer
}

// codeSelector is the ring 0 code segment of the kernel GDT.
const codeSelector = 1 << 3

// Kernel is the trap core bound to a Machine.
type Kernel struct {
	Machine    *Machine
	PICs       trap.ChainedPICs
	IDT        trap.IDT
	Keyboard   keyboard.Keyboard
	Dispatcher trap.Dispatcher
	// TimerHz is the timer rate actually programmed.
	TimerHz uint32
}

// Boot brings up the trap core on m the way the kernel does on
// hardware: load the descriptor table, remap and unmask the interrupt
// controllers, program the timer, enable interrupts and clear the
// display.
func Boot(m *Machine, display trap.Display, cfg Config) (*Kernel, error) {
	k := &Kernel{
		Machine:  m,
		Keyboard: keyboard.New(),
	}
	d := &k.Dispatcher
	d.PICs = &k.PICs
	d.Keys = &k.Keyboard
	d.Display = display
	d.Ports = m.Bus
	d.Halt = m.Halt
	d.Debug = cfg.Debug

	entries := trap.Entries{
		DoubleFault: m.Entry(Entry{Exception: d.DoubleFault}),
		PageFault: m.Entry(Entry{Exception: func(frame *trap.Frame, code uint64) {
			d.PageFault(frame, trap.PageFaultErrorCode(code), m.CR2())
		}}),
		Timer:    m.Entry(Entry{Interrupt: d.Timer}),
		Keyboard: m.Entry(Entry{Interrupt: d.Keyboard}),
	}

	var err error
	ran := m.Run(func() {
		err = k.boot(entries, display, cfg)
	})
	if !ran {
		return nil, fmt.Errorf("sim: processor halted during boot")
	}
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Kernel) boot(entries trap.Entries, display trap.Display, cfg Config) error {
	m := k.Machine
	build := func(t *trap.Table) error {
		return t.Build(entries, codeSelector, cfg.DoubleFaultStack)
	}
	if err := k.IDT.Load(build, m.LoadIDT); err != nil {
		return fmt.Errorf("sim: load IDT: %w", err)
	}
	if err := k.PICs.Configure(trap.PICOffset, m.Bus); err != nil {
		return fmt.Errorf("sim: configure PICs: %w", err)
	}
	if err := k.PICs.Initialize(); err != nil {
		return fmt.Errorf("sim: initialize PICs: %w", err)
	}
	k.PICs.Unmask(trap.TimerLine)
	k.PICs.Unmask(trap.KeyboardLine)
	hz, err := trap.SetTimerFrequency(m.Bus, cfg.TimerHz)
	if err != nil {
		return fmt.Errorf("sim: program timer: %w", err)
	}
	k.TimerHz = hz
	m.EnableInterrupts()
	display.Clear(render.Blue)
	m.log.Info("sim: kernel booted", "timer_hz", hz)
	return nil
}
