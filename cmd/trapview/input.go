// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"errors"
	"io"
	"log/slog"

	"tokyo.dev/tokyo/keyboard"
	"tokyo.dev/tokyo/sim"
	"tokyo.dev/tokyo/trap"
)

// Control keys with a meaning of their own.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	ctrlP     = 0x10
	backspace = 0x08
	del       = 0x7f
)

type actionKind int

const (
	actionNone actionKind = iota
	actionType
	actionQuit
	actionDoubleFault
	actionPageFault
)

type action struct {
	kind actionKind
	// scancodes to type for actionType.
	scancodes []byte
}

// translate maps a byte of raw terminal input to an action.
func translate(b byte) action {
	switch b {
	case ctrlC:
		return action{kind: actionQuit}
	case ctrlD:
		return action{kind: actionDoubleFault}
	case ctrlP:
		return action{kind: actionPageFault}
	case del:
		b = backspace
	case '\r':
		b = '\n'
	}
	seq, ok := keyboard.Scancodes(rune(b))
	if !ok {
		return action{}
	}
	return action{kind: actionType, scancodes: seq}
}

// Address and error code of the page fault raised by Ctrl-P.
const (
	testFaultAddr = 0xdeadbeef
	testFaultCode = trap.CausedByWrite
)

// feedInput translates r into keyboard input and faults for m until
// r ends, Ctrl-C is read or the processor stops.
func feedInput(r io.Reader, m *sim.Machine, log *slog.Logger) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		a := translate(b)
		ok := true
		switch a.kind {
		case actionQuit:
			return nil
		case actionType:
			ok = m.Type(a.scancodes)
		case actionDoubleFault:
			log.Info("raising double fault")
			ok = m.Fault(trap.DoubleFaultVector, 0, 0, trap.Frame{})
		case actionPageFault:
			log.Info("raising page fault", "addr", "0xdeadbeef")
			ok = m.Fault(trap.PageFaultVector, uint64(testFaultCode), testFaultAddr, trap.Frame{
				CodeSegment:  0x08,
				CPUFlags:     0x202,
				StackSegment: 0x10,
			})
		}
		if !ok {
			log.Info("processor stopped, input ignored")
			return nil
		}
	}
}
