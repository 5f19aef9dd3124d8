// SPDX-License-Identifier: Unlicense OR MIT

package trap

import (
	"io"
	"strconv"

	"tokyo.dev/tokyo/keyboard"
	"tokyo.dev/tokyo/render"
)

// Display is the text surface the handlers draw on.
type Display interface {
	Clear(c render.Color)
	PrintChar(r rune, fg, bg render.Color)
	Backspace()
	NewLine()
}

// Dispatcher holds what the handlers share. A Dispatcher must not be
// copied after first use.
type Dispatcher struct {
	PICs     *ChainedPICs
	Keys     *keyboard.Keyboard
	Display  Display
	Ports    Ports
	// Halt stops the processor until the next interrupt.
	Halt func()
	// Debug, if set, receives a copy of fault reports.
	Debug io.Writer

	// keyMu guards Keys.
	keyMu Mutex
	// report is the fault report buffer. It lives here and not on
	// the handler stack so the Debug writer never forces it to the
	// heap.
	report [1024]byte
}

// DoubleFault paints the display red and stops. It never returns.
func (d *Dispatcher) DoubleFault(frame *Frame, code uint64) {
	d.Display.Clear(render.Red)
	d.halt()
}

// PageFault reports the fault at addr and stops. It never returns.
func (d *Dispatcher) PageFault(frame *Frame, code PageFaultErrorCode, addr uint64) {
	b := appendPageFaultReport(d.report[:0], frame, code, addr)
	d.Display.NewLine()
	for _, c := range b {
		if c == '\n' {
			d.Display.NewLine()
			continue
		}
		d.Display.PrintChar(rune(c), render.Red, render.Black)
	}
	if d.Debug != nil {
		d.Debug.Write(b)
	}
	d.halt()
}

// Timer handles the controller timer line.
func (d *Dispatcher) Timer() {
	d.PICs.NotifyEndOfInterrupt(TimerVector)
}

// Keyboard reads and handles one byte from the keyboard controller.
func (d *Dispatcher) Keyboard() {
	d.scancode(d.Ports.Inb(KeyboardDataPort))
	d.PICs.NotifyEndOfInterrupt(KeyboardVector)
}

func (d *Dispatcher) scancode(b byte) {
	d.keyMu.Lock()
	key, ok := d.Keys.Feed(b)
	d.keyMu.Unlock()
	if !ok {
		return
	}
	switch {
	case key.Char == '\b':
		d.Display.Backspace()
	case key.Printable():
		d.Display.PrintChar(key.Char, render.White, render.Black)
	case key.Code == keyboard.Return:
		d.Display.NewLine()
	}
}

// halt stops the processor for good. Halt may return when an
// interrupt arrives.
func (d *Dispatcher) halt() {
	for {
		d.Halt()
	}
}

func appendPageFaultReport(b []byte, frame *Frame, code PageFaultErrorCode, addr uint64) []byte {
	b = append(b, "Page Fault\nAddress: "...)
	b = appendHex(b, addr)
	b = append(b, "\nError Code: "...)
	b = appendHex(b, uint64(code))
	b = append(b, " ("...)
	b = code.appendDescription(b)
	b = append(b, ")\nFrame:"...)
	b = appendField(b, "instruction_pointer", frame.InstructionPointer)
	b = appendField(b, "code_segment", frame.CodeSegment)
	b = appendField(b, "cpu_flags", frame.CPUFlags)
	b = appendField(b, "stack_pointer", frame.StackPointer)
	b = appendField(b, "stack_segment", frame.StackSegment)
	return append(b, '\n')
}

func appendField(b []byte, name string, v uint64) []byte {
	b = append(b, "\n  "...)
	b = append(b, name...)
	b = append(b, ": "...)
	return appendHex(b, v)
}

func appendHex(b []byte, v uint64) []byte {
	b = append(b, "0x"...)
	return strconv.AppendUint(b, v, 16)
}
