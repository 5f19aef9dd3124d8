// SPDX-License-Identifier: Unlicense OR MIT

// Package sim is a model of the parts of a PC the trap handlers talk
// to: the interrupt controllers, the interval timer, the keyboard
// controller and a single processor delivering interrupts through a
// descriptor table. It runs the kernel's trap code hosted, for tests
// and for the trapview command.
package sim

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"tokyo.dev/tokyo/trap"
)

// Entry is a simulated handler entry point. Interrupt is used for
// controller vectors, Exception for processor exceptions.
type Entry struct {
	Interrupt func()
	Exception func(frame *trap.Frame, code uint64)
}

// Machine is a single processor. Boot code, interrupts and faults
// all run on one goroutine, in the order they were posted.
type Machine struct {
	Bus *Bus

	log    *slog.Logger
	events chan func()
	// stopped is closed when the processor goroutine exits.
	stopped  chan struct{}
	halted   chan struct{}
	haltOnce sync.Once
	quit     chan struct{}
	quitOnce sync.Once

	mu        sync.Mutex
	entries   map[uintptr]Entry
	nextPC    uintptr
	delivered [256]uint64

	// Processor state, owned by the processor goroutine.
	table      *trap.Table
	interrupts bool
	cr2        uint64
}

// entryBase is the first fake entry point address.
const entryBase = 0x100000

func NewMachine(bus *Bus, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	m := &Machine{
		Bus:     bus,
		log:     log,
		events:  make(chan func(), 256),
		stopped: make(chan struct{}),
		halted:  make(chan struct{}),
		quit:    make(chan struct{}),
		entries: make(map[uintptr]Entry),
		nextPC:  entryBase,
	}
	go m.run()
	return m
}

func (m *Machine) run() {
	defer close(m.stopped)
	for {
		select {
		case ev := <-m.events:
			ev()
			m.deliver()
		case <-m.quit:
			return
		}
	}
}

// Entry registers e and returns its address for use in a descriptor
// table.
func (m *Machine) Entry(e Entry) uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc := m.nextPC
	m.nextPC += 0x40
	m.entries[pc] = e
	return pc
}

func (m *Machine) entry(pc uintptr) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[pc]
	return e, ok
}

// post queues ev for the processor. It reports false if the
// processor is gone.
func (m *Machine) post(ev func()) bool {
	select {
	case m.events <- ev:
		return true
	case <-m.stopped:
		return false
	}
}

// Run runs fn on the processor and waits for it. It reports false if
// the processor stopped before fn completed.
func (m *Machine) Run(fn func()) bool {
	done := make(chan struct{})
	if !m.post(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-m.stopped:
		return false
	}
}

// Sync waits until every event posted so far has been handled.
func (m *Machine) Sync() bool {
	return m.Run(func() {})
}

// LoadIDT makes t the descriptor table of the processor. It must run
// on the processor.
func (m *Machine) LoadIDT(t *trap.Table) {
	m.table = t
	m.log.Debug("sim: descriptor table loaded", "bound", t.Bound())
}

// EnableInterrupts sets the interrupt flag. It must run on the
// processor.
func (m *Machine) EnableInterrupts() {
	m.interrupts = true
}

// CR2 returns the last page fault address. It must run on the
// processor.
func (m *Machine) CR2() uint64 {
	return m.cr2
}

// Raise signals an edge on controller line 0-15.
func (m *Machine) Raise(line uint8) bool {
	return m.post(func() {
		m.Bus.raise(line)
	})
}

// Type queues scancode bytes in the keyboard controller, one
// interrupt per byte.
func (m *Machine) Type(seq []byte) bool {
	for _, b := range seq {
		b := b
		if !m.post(func() { m.Bus.pushScancode(b) }) {
			return false
		}
	}
	return true
}

// Fault raises processor exception vector with an error code. For
// page faults cr2 is the faulting address.
func (m *Machine) Fault(vector uint8, code, cr2 uint64, frame trap.Frame) bool {
	return m.post(func() {
		m.cr2 = cr2
		m.dispatch(vector, code, &frame)
	})
}

// Halt stops the processor for good. It must run on the processor,
// and never returns.
func (m *Machine) Halt() {
	m.haltOnce.Do(func() {
		m.log.Info("sim: processor halted")
		close(m.halted)
	})
	runtime.Goexit()
}

// Halted is closed once the processor halts.
func (m *Machine) Halted() <-chan struct{} {
	return m.halted
}

// Delivered returns how often vector was delivered.
func (m *Machine) Delivered(vector uint8) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delivered[vector]
}

// Close stops the processor.
func (m *Machine) Close() {
	m.quitOnce.Do(func() { close(m.quit) })
	<-m.stopped
}

// RunTimer raises controller line 0 at the rate the kernel programmed
// into the timer until ctx is done or the processor stops.
func (m *Machine) RunTimer(ctx context.Context) error {
	period, ok := m.Bus.TimerPeriod()
	if !ok {
		return errTimerOff
	}
	m.log.Info("sim: timer running", "period", period)
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if !m.Raise(trap.TimerLine) {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-m.stopped:
			return nil
		}
	}
}

// deliver dispatches pending controller interrupts while the
// interrupt flag is set. Handlers run to completion one at a time,
// like behind an interrupt gate.
func (m *Machine) deliver() {
	for m.interrupts {
		vector, ok := m.Bus.acknowledge()
		if !ok {
			return
		}
		m.dispatch(vector, 0, &trap.Frame{})
	}
}

func (m *Machine) dispatch(vector uint8, code uint64, frame *trap.Frame) {
	m.mu.Lock()
	m.delivered[vector]++
	m.mu.Unlock()
	e, ok := m.gate(vector)
	if !ok {
		if vector == trap.DoubleFaultVector {
			m.log.Error("sim: triple fault")
			m.Halt()
		}
		m.log.Warn("sim: no handler", "vector", vector)
		m.dispatch(trap.DoubleFaultVector, 0, frame)
		return
	}
	switch {
	case e.Exception != nil:
		e.Exception(frame, code)
	case e.Interrupt != nil:
		e.Interrupt()
	}
}

func (m *Machine) gate(vector uint8) (Entry, bool) {
	if m.table == nil {
		return Entry{}, false
	}
	d := &m.table[vector]
	if !d.Present() {
		return Entry{}, false
	}
	return m.entry(d.Handler())
}

type simError string

func (e simError) Error() string {
	return string(e)
}

const errTimerOff simError = "sim: timer not programmed"
