// SPDX-License-Identifier: Unlicense OR MIT

package trap

// Descriptor is a 64-bit mode gate descriptor. Uses uint64 to force
// 8-byte alignment.
type Descriptor [2]uint64

// Table is the interrupt descriptor table. There are 256 vectors.
type Table [256]Descriptor

// Entries are the handler entry points bound by Build. They are the
// addresses of the assembly trampolines, not Go function values.
type Entries struct {
	DoubleFault uintptr
	PageFault   uintptr
	Timer       uintptr
	Keyboard    uintptr
}

const (
	gatePresent = 1 << 15
	// An interrupt gate clears IF on entry, so controller interrupts
	// never nest.
	interruptGate = 0xe
	ring0         = 0

	// Hardware limit of the interrupt stack table.
	maxStackIndex = 7
)

// Build binds the four handled vectors and leaves every other slot
// unset. The double fault handler runs on interrupt stack
// doubleFaultStack (1-7) of the task state segment.
//
//go:nosplit
func (t *Table) Build(e Entries, codeSelector uint16, doubleFaultStack uint8) error {
	if doubleFaultStack < 1 || doubleFaultStack > maxStackIndex {
		return ErrStackIndex
	}
	if e.DoubleFault == 0 || e.PageFault == 0 || e.Timer == 0 || e.Keyboard == 0 {
		return ErrNoHandler
	}
	*t = Table{}
	t[DoubleFaultVector].set(e.DoubleFault, codeSelector, doubleFaultStack)
	t[PageFaultVector].set(e.PageFault, codeSelector, 0)
	t[TimerVector].set(e.Timer, codeSelector, 0)
	t[KeyboardVector].set(e.Keyboard, codeSelector, 0)
	return nil
}

// Bound returns the number of present gates.
func (t *Table) Bound() int {
	n := 0
	for i := range t {
		if t[i].Present() {
			n++
		}
	}
	return n
}

//go:nosplit
func (d *Descriptor) set(pc uintptr, selector uint16, ist uint8) {
	w0 := uint32(selector)<<16 | uint32(pc&0xffff)
	w1 := uint32(pc&0xffff0000) | gatePresent | ring0<<13 | interruptGate<<8 | uint32(ist)
	w2 := uint32(pc >> 32)
	d[0] = uint64(w1)<<32 | uint64(w0)
	d[1] = uint64(w2)
}

func (d *Descriptor) Present() bool {
	return d[0]>>32&gatePresent != 0
}

// Handler returns the entry point address.
func (d *Descriptor) Handler() uintptr {
	return uintptr(d[0]&0xffff) | uintptr(d[0]>>32&0xffff0000) | uintptr(d[1]&0xffffffff)<<32
}

func (d *Descriptor) Selector() uint16 {
	return uint16(d[0] >> 16)
}

// StackIndex returns the interrupt stack table index, 0 meaning the
// interrupted stack.
func (d *Descriptor) StackIndex() uint8 {
	return uint8(d[0]>>32) & 0x7
}

// Type returns the gate type.
func (d *Descriptor) Type() uint8 {
	return uint8(d[0]>>40) & 0xf
}

// IDT is the single interrupt descriptor table of the processor. It is
// built on first use and loaded at most once.
type IDT struct {
	once  Once
	table Table
	err   error
}

// Load builds the table and hands it to install, which loads it into
// the processor. Only the first call does anything; later calls return
// ErrTableLoaded, or the build error if building failed. A table that
// failed to build is never installed.
func (i *IDT) Load(build func(*Table) error, install func(*Table)) error {
	first := i.once.Do(func() {
		if i.err = build(&i.table); i.err == nil {
			install(&i.table)
		}
	})
	switch {
	case i.err != nil:
		return i.err
	case !first:
		return ErrTableLoaded
	}
	return nil
}

// Table returns the loaded table. It must not be modified.
func (i *IDT) Table() *Table {
	return &i.table
}
