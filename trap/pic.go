// SPDX-License-Identifier: Unlicense OR MIT

package trap

// 8259A programming. See the Intel 8259A datasheet and
// https://wiki.osdev.org/8259_PIC.

const (
	primaryCommand   uint16 = 0x20
	primaryData      uint16 = 0x21
	secondaryCommand uint16 = 0xa0
	secondaryData    uint16 = 0xa1

	// ICW1: initialization, ICW4 follows, cascade mode, edge triggered.
	cmdInit = 0x11
	// OCW2: non-specific end of interrupt.
	cmdEndOfInterrupt = 0x20
	// ICW4: 8086/88 mode.
	mode8086 = 0x01
)

type pic struct {
	offset  uint8
	command uint16
	data    uint16
}

//go:nosplit
func (p *pic) handles(v Vector) bool {
	return p.offset <= v && v < p.offset+8
}

// ChainedPICs is the primary and secondary 8259A, cascaded through
// line 2 of the primary, presented as a single device numbering its 16
// lines from a base vector.
type ChainedPICs struct {
	mu          Mutex
	io          Ports
	pics        [2]pic
	initialized bool
}

// Configure places the primary lines at vectors offset to offset+7
// and the secondary lines directly after. The offset is fixed once the
// controllers are initialized.
func (c *ChainedPICs) Configure(offset uint8, io Ports) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return ErrPICInitialized
	}
	if offset%8 != 0 || offset < 32 || offset > 232 {
		return ErrPICOffset
	}
	c.io = io
	c.pics = [2]pic{
		{offset: offset, command: primaryCommand, data: primaryData},
		{offset: offset + 8, command: secondaryCommand, data: secondaryData},
	}
	return nil
}

// Offset returns the vector of primary line 0.
//
//go:nosplit
func (c *ChainedPICs) Offset() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pics[0].offset
}

// Initialize remaps both controllers to their offsets. The line masks
// in effect before the call are kept.
//
//go:nosplit
func (c *ChainedPICs) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return ErrPICInitialized
	}
	if c.io == nil {
		return ErrPICUnconfigured
	}
	io := c.io
	mask1 := io.Inb(primaryData)
	mask2 := io.Inb(secondaryData)

	io.Outb(primaryCommand, cmdInit)
	ioWait(io)
	io.Outb(secondaryCommand, cmdInit)
	ioWait(io)

	io.Outb(primaryData, c.pics[0].offset)
	ioWait(io)
	io.Outb(secondaryData, c.pics[1].offset)
	ioWait(io)

	// The secondary hangs off line 2 of the primary.
	io.Outb(primaryData, 1<<cascadeLine)
	ioWait(io)
	io.Outb(secondaryData, cascadeLine)
	ioWait(io)

	io.Outb(primaryData, mode8086)
	ioWait(io)
	io.Outb(secondaryData, mode8086)
	ioWait(io)

	io.Outb(primaryData, mask1)
	io.Outb(secondaryData, mask2)
	c.initialized = true
	return nil
}

// Unmask enables delivery of controller line 0-15. Enabling a
// secondary line also enables the cascade line.
//
//go:nosplit
func (c *ChainedPICs) Unmask(line uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.io == nil || line >= 16 {
		return
	}
	if line >= 8 {
		c.clearMask(&c.pics[1], line-8)
		line = cascadeLine
	}
	c.clearMask(&c.pics[0], line)
}

//go:nosplit
func (c *ChainedPICs) clearMask(p *pic, line uint8) {
	mask := c.io.Inb(p.data)
	c.io.Outb(p.data, mask&^(1<<line))
}

// HandlesInterrupt reports whether v is one of the 16 controller
// vectors.
//
//go:nosplit
func (c *ChainedPICs) HandlesInterrupt(v Vector) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handles(v)
}

//go:nosplit
func (c *ChainedPICs) handles(v Vector) bool {
	return c.pics[0].handles(v) || c.pics[1].handles(v)
}

// NotifyEndOfInterrupt signals the end of the handler for vector v. It
// must be the last action of every controller interrupt handler.
// Secondary interrupts are acknowledged on both controllers. Other
// vectors are ignored.
//
//go:nosplit
func (c *ChainedPICs) NotifyEndOfInterrupt(v Vector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.io == nil || !c.handles(v) {
		return
	}
	if c.pics[1].handles(v) {
		c.io.Outb(c.pics[1].command, cmdEndOfInterrupt)
	}
	c.io.Outb(c.pics[0].command, cmdEndOfInterrupt)
}
