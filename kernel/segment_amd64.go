// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"encoding/binary"
	"unsafe"

	"tokyo.dev/tokyo/trap"
)

// Types and code for setting up processor segments and the task
// state structure. Segmenting is largely disabled in 64-bit mode, but
// a GDT is still required, and the TSS holds the interrupt stack the
// double fault handler runs on.

// segmentDescriptor represents a 64-bit segment descriptor.
// Uses uint64 type to force 8-byte alignment.
type segmentDescriptor uint64

// TSS structure for amd64, 104 bytes. Only the stack pointers and
// the I/O map base are used.
type tss [26]uint32

// Global task state structure, never touched after initialization.
var globalTSS tss

// The global descriptor table, never touched after initialization.
var globalGDT [segmentEnd]segmentDescriptor

var (
	// Stack for interrupts and exceptions from ring 0 without a
	// dedicated stack.
	istack stack
	// Stack of the double fault handler, usable when the faulting
	// stack is not.
	doubleFaultStack stack
)

// Segment selectors.
const (
	// Mandatory null selector.
	_ = iota
	// Ring 0 code (64-bit).
	segmentCode0
	// Ring 0 data.
	segmentData0
	// TSS.
	segmentTSS0
	// TSS high address.
	segmentTSS0High
	// End sentinal for determining limit.
	segmentEnd
)

type segmentFlags uint32
type privLevel uint32

const ring0 privLevel = 0

const (
	segFlagAccess  segmentFlags = 1 << 8
	segFlagWrite                = 1 << 9
	segFlagCode                 = 1 << 11
	segFlagSystem               = 1 << 12
	segFlagPresent              = 1 << 15
	segFlagLong                 = 1 << 21
)

// Interrupt stack table slot of the double fault handler.
const istDoubleFault = 1

// kernelCodeSelector is the code segment every gate runs in.
const kernelCodeSelector = uint16(segmentCode0<<3) | uint16(ring0)

//go:nosplit
func loadGDT() {
	globalTSS.setISP(istDoubleFault, uint64(doubleFaultStack.top()))
	globalTSS.setRSP(0, uint64(istack.top()))
	tssAddr := uintptr(unsafe.Pointer(&globalTSS))
	tssLimit := uint32(unsafe.Sizeof(globalTSS) - 1)
	// Block all I/O ports from outside ring 0.
	globalTSS.setIOPerm(uint16(tssLimit + 1))
	globalGDT[segmentCode0] = newSegmentDescriptor(0, 0, segFlagSystem|segFlagCode|segFlagLong, ring0)
	globalGDT[segmentData0] = newSegmentDescriptor(0, 0, segFlagSystem|segFlagWrite, ring0)
	// The 64-bit TSS structure spans two descriptor entries,
	// with the high 32-bit address in the second entry.
	globalGDT[segmentTSS0] = newSegmentDescriptor(uint32(tssAddr), tssLimit, segFlagAccess|segFlagCode, ring0)
	globalGDT[segmentTSS0High] = segmentDescriptor(tssAddr >> 32)
	addr := uintptr(unsafe.Pointer(&globalGDT))
	if addr%8 != 0 {
		fatal("loadGDT: bad GDT alignment")
	}
	var gdtr [10]uint8
	putDescriptorRegister(&gdtr, addr, unsafe.Sizeof(globalGDT))
	lgdt(uint64(uintptr(unsafe.Pointer(&gdtr))))
	data0 := uint16(segmentData0<<3 | ring0)
	tss0 := uint16(segmentTSS0<<3 | ring0)
	setCSReg(kernelCodeSelector)
	setSSReg(data0)
	setDSReg(data0)
	setESReg(data0)
	setFSReg(data0)
	setGSReg(data0)
	ltr(tss0)
}

// installIDT loads t into the processor.
//
//go:nosplit
func installIDT(t *trap.Table) {
	addr := uintptr(unsafe.Pointer(t))
	if addr%8 != 0 {
		fatal("installIDT: bad IDT alignment")
	}
	var idtr [10]uint8
	putDescriptorRegister(&idtr, addr, unsafe.Sizeof(*t))
	lidt(uint64(uintptr(unsafe.Pointer(&idtr))))
}

// putDescriptorRegister encodes the 10 byte GDTR or IDTR value: a
// 16-bit limit followed by the 64-bit address.
//
//go:nosplit
func putDescriptorRegister(r *[10]uint8, addr, size uintptr) {
	binary.LittleEndian.PutUint16(r[:2], uint16(size-1))
	binary.LittleEndian.PutUint64(r[2:], uint64(addr))
}

// setRSP sets the address for the kernel stack
// number idx.
//
//go:nosplit
func (t *tss) setRSP(idx int, rsp uint64) {
	if idx < 0 || idx > 2 {
		fatal("setRSP: stack index out of range")
	}
	t[1+idx*2] = uint32(rsp)
	t[1+idx*2+1] = uint32(rsp >> 32)
}

// setISP sets the address for the interrupt stack
// number idx (1-based).
//
//go:nosplit
func (t *tss) setISP(idx int, rsp uint64) {
	if idx < 1 || idx > 7 {
		fatal("setISP: stack index out of range")
	}
	t[7+idx*2] = uint32(rsp)
	t[7+idx*2+1] = uint32(rsp >> 32)
}

//go:nosplit
func (t *tss) setIOPerm(addr uint16) {
	t[25] = uint32(addr) << 16
}

//go:nosplit
func newSegmentDescriptor(base uint32, limit uint32, flags segmentFlags, level privLevel) segmentDescriptor {
	if limit > 0xfffff {
		fatal("newSegmentDesciptor: limit too high")
	}
	flags |= segFlagPresent
	w0 := base<<16 | limit&0xffff
	w1 := base&0xff000000 | uint32(limit&0xf0000) | uint32(flags) | uint32(level)<<13 | (base>>16)&0xff
	return segmentDescriptor(uint64(w1)<<32 | uint64(w0))
}

func lgdt(addr uint64)
func lidt(addr uint64)
func setCSReg(seg uint16)
func setDSReg(seg uint16)
func setSSReg(seg uint16)
func setESReg(seg uint16)
func setFSReg(seg uint16)
func setGSReg(seg uint16)
func ltr(seg uint16)
