// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"tokyo.dev/tokyo/keyboard"
	"tokyo.dev/tokyo/trap"
)

// portIO is the processor's I/O port space.
type portIO struct{}

var (
	ports      portIO
	pics       trap.ChainedPICs
	idt        trap.IDT
	kbd        keyboard.Keyboard
	dispatcher trap.Dispatcher
)

// initTraps loads the descriptor table and brings up the interrupt
// controllers with the timer and keyboard lines unmasked. Interrupts
// stay disabled.
//
//go:nosplit
func initTraps() error {
	kbd = keyboard.New()
	dispatcher.PICs = &pics
	dispatcher.Keys = &kbd
	dispatcher.Display = &screen
	dispatcher.Ports = &ports
	dispatcher.Halt = halt
	dispatcher.Debug = &serial
	if err := idt.Load(buildIDT, installIDT); err != nil {
		return err
	}
	logValue("idt gates", uint64(idt.Table().Bound()))
	if err := pics.Configure(trap.PICOffset, &ports); err != nil {
		return err
	}
	if err := pics.Initialize(); err != nil {
		return err
	}
	pics.Unmask(trap.TimerLine)
	pics.Unmask(trap.KeyboardLine)
	logValue("pic offset", uint64(pics.Offset()))
	return nil
}

//go:nosplit
func buildIDT(t *trap.Table) error {
	var e trap.Entries
	e.DoubleFault, e.PageFault, e.Timer, e.Keyboard = trapEntries()
	return t.Build(e, kernelCodeSelector, istDoubleFault)
}

// The handlers below are called by the assembly trampolines with
// interrupts disabled, after the interrupted state is saved.

//go:nosplit
func doubleFault(frame *trap.Frame, code uint64) {
	dispatcher.DoubleFault(frame, code)
}

//go:nosplit
func pageFault(frame *trap.Frame, code uint64) {
	dispatcher.PageFault(frame, trap.PageFaultErrorCode(code), readCR2())
}

//go:nosplit
func timerInterrupt() {
	dispatcher.Timer()
}

//go:nosplit
func keyboardInterrupt() {
	dispatcher.Keyboard()
}

//go:nosplit
func (*portIO) Outb(port uint16, v uint8) {
	outb(port, v)
}

//go:nosplit
func (*portIO) Inb(port uint16) uint8 {
	return inb(port)
}

// trapEntries returns the addresses of the trampolines.
func trapEntries() (doubleFault, pageFault, timer, keyboard uintptr)

func doubleFaultTrampoline()
func pageFaultTrampoline()
func timerTrampoline()
func keyboardTrampoline()
