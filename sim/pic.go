// SPDX-License-Identifier: Unlicense OR MIT

package sim

import (
	"fmt"
	"math/bits"
)

const (
	primaryCommandPort   uint16 = 0x20
	primaryDataPort      uint16 = 0x21
	secondaryCommandPort uint16 = 0xa0
	secondaryDataPort    uint16 = 0xa1

	cascadeIRQ = 2
	irqMask    = 0x7
)

type initStage int

const (
	initExpectingICW2 initStage = iota
	initExpectingICW3
	initExpectingICW4
	initInitialized
)

// PIC models the classic pair of cascaded 8259A controllers, with the
// state the firmware leaves behind: primary at vector 0x08, secondary
// at 0x70, every line masked.
type PIC struct {
	pics [2]pic8259
	// eois counts end of interrupt commands per line 0-15.
	eois [16]uint64
	acks [16]uint64
	// strayEOIs counts EOI commands with nothing in service.
	strayEOIs uint64
}

// pic8259 models one controller.
type pic8259 struct {
	primary bool
	stage   initStage
	base    byte
	imr     byte
	irr     byte
	isr     byte
	// readISR selects the register returned by command port reads.
	readISR bool
	inits   int
}

// NewPIC returns a controller pair in its firmware state.
func NewPIC() *PIC {
	p := new(PIC)
	p.pics[0] = pic8259{primary: true, stage: initInitialized, base: 0x08, imr: 0xff}
	p.pics[1] = pic8259{stage: initInitialized, base: 0x70, imr: 0xff}
	return p
}

// Initialized reports whether both controllers completed an
// initialization sequence.
func (p *PIC) Initialized() bool {
	return p.pics[0].inits > 0 && p.pics[1].inits > 0 &&
		p.pics[0].stage == initInitialized && p.pics[1].stage == initInitialized
}

// Bases returns the vector bases of the primary and secondary.
func (p *PIC) Bases() (primary, secondary uint8) {
	return p.pics[0].base, p.pics[1].base
}

// Masks returns the interrupt mask registers.
func (p *PIC) Masks() (primary, secondary uint8) {
	return p.pics[0].imr, p.pics[1].imr
}

// EOIs returns the number of end of interrupt commands that retired
// line 0-15.
func (p *PIC) EOIs(line int) uint64 {
	return p.eois[line]
}

// Acks returns the number of times line 0-15 was delivered.
func (p *PIC) Acks(line int) uint64 {
	return p.acks[line]
}

// StrayEOIs returns the number of EOI commands sent with no line in
// service.
func (p *PIC) StrayEOIs() uint64 {
	return p.strayEOIs
}

// InService returns the in-service registers.
func (p *PIC) InService() (primary, secondary uint8) {
	return p.pics[0].isr, p.pics[1].isr
}

// Raise signals an edge on line 0-15.
func (p *PIC) Raise(line uint8) {
	if line >= 16 {
		return
	}
	if line >= 8 {
		p.pics[1].irr |= 1 << (line - 8)
	} else {
		p.pics[0].irr |= 1 << line
	}
	p.syncCascade()
}

func (p *PIC) syncCascade() {
	if _, ok := p.pics[1].pending(); ok {
		p.pics[0].irr |= 1 << cascadeIRQ
	} else {
		p.pics[0].irr &^= 1 << cascadeIRQ
	}
}

// Acknowledge returns the vector of the highest priority deliverable
// interrupt and moves it in service.
func (p *PIC) Acknowledge() (uint8, bool) {
	line, ok := p.pics[0].pending()
	if !ok {
		return 0, false
	}
	p.pics[0].accept(line)
	if line != cascadeIRQ {
		p.acks[line]++
		return p.pics[0].base | line, true
	}
	sec, ok := p.pics[1].pending()
	if !ok {
		// Spurious secondary interrupt.
		return p.pics[1].base | 7, true
	}
	p.pics[1].accept(sec)
	p.syncCascade()
	p.acks[8+sec]++
	return p.pics[1].base | sec, true
}

func (p *PIC) write(port uint16, v byte) {
	switch port {
	case primaryCommandPort:
		p.writeCommand(0, v)
	case primaryDataPort:
		p.pics[0].writeData(v)
	case secondaryCommandPort:
		p.writeCommand(1, v)
	case secondaryDataPort:
		p.pics[1].writeData(v)
	}
	p.syncCascade()
}

func (p *PIC) read(port uint16) byte {
	switch port {
	case primaryCommandPort:
		return p.pics[0].readCommand()
	case primaryDataPort:
		return p.pics[0].imr
	case secondaryCommandPort:
		return p.pics[1].readCommand()
	case secondaryDataPort:
		return p.pics[1].imr
	}
	return 0xff
}

func (p *PIC) writeCommand(idx int, v byte) {
	line, ok := p.pics[idx].writeCommand(v)
	switch {
	case !ok:
	case line < 0:
		p.strayEOIs++
	case idx == 1:
		p.eois[8+line]++
	case line != cascadeIRQ:
		p.eois[line]++
	}
}

// pending returns the highest priority unmasked requested line not
// blocked by a line in service.
func (c *pic8259) pending() (uint8, bool) {
	if c.stage != initInitialized {
		return 0, false
	}
	// Lines below the highest priority in-service line.
	allowed := lowestSetBit(c.isr) - 1
	ready := c.irr &^ c.imr & allowed
	if ready == 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros8(ready)), true
}

func (c *pic8259) accept(line uint8) {
	c.irr &^= 1 << line
	c.isr |= 1 << line
}

// writeCommand handles ICW1, OCW2 and OCW3. For an EOI it reports
// true and the retired line, or -1 if nothing was in service.
func (c *pic8259) writeCommand(v byte) (int, bool) {
	const (
		initBit    = 0x10
		commandBit = 0x08
		eoiBit     = 0x20
		specific   = 0x40
	)
	if v&initBit != 0 {
		c.stage = initExpectingICW2
		c.imr = 0
		c.isr = 0
		c.irr = 0
		c.readISR = false
		return 0, false
	}
	if c.stage != initInitialized {
		return 0, false
	}
	if v&commandBit != 0 {
		// OCW3: select the register for command port reads.
		if v&0x02 != 0 {
			c.readISR = v&0x01 != 0
		}
		return 0, false
	}
	if v&eoiBit == 0 {
		return 0, false
	}
	var bit byte
	if v&specific != 0 {
		bit = 1 << (v & irqMask)
	} else {
		bit = lowestSetBit(c.isr)
	}
	if c.isr&bit == 0 {
		return -1, true
	}
	c.isr &^= bit
	return bits.TrailingZeros8(bit), true
}

func (c *pic8259) writeData(v byte) {
	switch c.stage {
	case initInitialized:
		c.imr = v
	case initExpectingICW2:
		if v&irqMask != 0 {
			return
		}
		c.base = v
		c.stage = initExpectingICW3
	case initExpectingICW3:
		if c.primary && v != 1<<cascadeIRQ || !c.primary && v != cascadeIRQ {
			return
		}
		c.stage = initExpectingICW4
	case initExpectingICW4:
		if v != 1 && v != 3 {
			return
		}
		c.stage = initInitialized
		c.inits++
	}
}

func (c *pic8259) readCommand() byte {
	if c.readISR {
		return c.isr
	}
	return c.irr
}

func (p *PIC) String() string {
	return fmt.Sprintf("PIC(primary=%+v, secondary=%+v)", p.pics[0], p.pics[1])
}

func lowestSetBit(b byte) byte {
	return b & byte(-int8(b))
}
