// SPDX-License-Identifier: Unlicense OR MIT

package sim

import (
	"sync"
	"time"
)

const (
	pitChannel0Port uint16 = 0x40
	pitControlPort  uint16 = 0x43

	kbdDataPort   uint16 = 0x60
	kbdStatusPort uint16 = 0x64

	waitPort uint16 = 0x80

	pitFrequency = 1193182
)

// PIT models channel 0 of an 8254 as far as the kernel programs it.
type PIT struct {
	control  byte
	divisor  uint16
	latch    byte
	highNext bool
	armed    bool
}

func (t *PIT) write(port uint16, v byte) {
	switch port {
	case pitControlPort:
		if v>>6 != 0 {
			// Other channels.
			return
		}
		t.control = v
		t.highNext = false
	case pitChannel0Port:
		if !t.highNext {
			t.latch = v
			t.highNext = true
			return
		}
		t.divisor = uint16(v)<<8 | uint16(t.latch)
		t.highNext = false
		t.armed = true
	}
}

// Mode returns the programmed operating mode.
func (t *PIT) Mode() int {
	return int(t.control>>1) & 0x7
}

// Period returns the interval between timer interrupts, or false if
// the channel was never programmed.
func (t *PIT) Period() (time.Duration, bool) {
	if !t.armed {
		return 0, false
	}
	d := uint64(t.divisor)
	if d == 0 {
		d = 1 << 16
	}
	return time.Duration(d * uint64(time.Second) / pitFrequency), true
}

// Bus routes port I/O to the devices of the machine. It implements
// trap.Ports.
type Bus struct {
	mu  sync.Mutex
	pic *PIC
	pit PIT
	// kbd is the keyboard controller output buffer.
	kbd   []byte
	reads map[uint16]int
	// waits counts writes to the POST port.
	waits int
}

func NewBus() *Bus {
	return &Bus{
		pic:   NewPIC(),
		reads: make(map[uint16]int),
	}
}

func (b *Bus) Outb(port uint16, v uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch port {
	case primaryCommandPort, primaryDataPort, secondaryCommandPort, secondaryDataPort:
		b.pic.write(port, v)
	case pitChannel0Port, pitControlPort:
		b.pit.write(port, v)
	case waitPort:
		b.waits++
	}
}

func (b *Bus) Inb(port uint16) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads[port]++
	switch port {
	case primaryCommandPort, primaryDataPort, secondaryCommandPort, secondaryDataPort:
		return b.pic.read(port)
	case kbdDataPort:
		if len(b.kbd) == 0 {
			return 0
		}
		v := b.kbd[0]
		b.kbd = b.kbd[1:]
		return v
	case kbdStatusPort:
		if len(b.kbd) > 0 {
			return 1
		}
		return 0
	}
	return 0xff
}

// Reads returns the number of reads from port.
func (b *Bus) Reads(port uint16) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads[port]
}

// Waits returns the number of I/O delay writes.
func (b *Bus) Waits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.waits
}

// PIC calls f with the interrupt controller model.
func (b *Bus) PIC(f func(p *PIC)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f(b.pic)
}

// TimerPeriod returns the programmed timer interval.
func (b *Bus) TimerPeriod() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pit.Period()
}

// TimerMode returns the programmed timer mode.
func (b *Bus) TimerMode() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pit.Mode()
}

func (b *Bus) pushScancode(v byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kbd = append(b.kbd, v)
}

// acknowledge raises the keyboard line while the output buffer is
// full and returns the next deliverable vector.
func (b *Bus) acknowledge() (uint8, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.kbd) > 0 {
		b.pic.Raise(1)
	}
	return b.pic.Acknowledge()
}

func (b *Bus) raise(line uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pic.Raise(line)
}
