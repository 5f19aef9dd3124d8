// SPDX-License-Identifier: Unlicense OR MIT

// Package trap implements the processor trap machinery of the kernel:
// the chained 8259 interrupt controllers, the interrupt descriptor
// table and the exception and interrupt handlers.
//
// Everything reachable from a handler avoids the heap and never
// sleeps. The code is portable; the kernel package binds it to the
// hardware and package sim binds it to a machine model.
package trap

// Error is an error usable before the Go runtime is initialized.
type Error string

const (
	ErrPICOffset       Error = "trap: interrupt controller offset must be a multiple of 8 in [32, 232]"
	ErrPICInitialized  Error = "trap: interrupt controllers already initialized"
	ErrPICUnconfigured Error = "trap: interrupt controllers not configured"
	ErrStackIndex      Error = "trap: interrupt stack index out of range"
	ErrNoHandler       Error = "trap: missing handler entry point"
	ErrTableLoaded     Error = "trap: descriptor table already loaded"
	ErrTimerFrequency  Error = "trap: timer frequency out of range"
)

func (e Error) Error() string {
	return string(e)
}

// Vector is an interrupt vector number.
type Vector = uint8

// PICOffset is the vector of the first interrupt controller line.
const PICOffset = 32

const (
	DoubleFaultVector Vector = 0x8
	PageFaultVector   Vector = 0xe

	TimerVector    Vector = PICOffset + 0
	KeyboardVector Vector = PICOffset + 1
)

// Controller lines.
const (
	TimerLine    = 0
	KeyboardLine = 1
	cascadeLine  = 2
)

// Ports is access to the processor's I/O port space.
type Ports interface {
	Outb(port uint16, v uint8)
	Inb(port uint16) uint8
}

const (
	KeyboardDataPort uint16 = 0x60
	// Writes to the POST diagnostic port take long enough to let
	// slow devices settle.
	waitPort uint16 = 0x80
)

//go:nosplit
func ioWait(p Ports) {
	p.Outb(waitPort, 0)
}
