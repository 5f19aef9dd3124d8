// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "unsafe"

// Compiled Go code expects the current goroutine in R14, loaded by
// ABI wrappers from the thread local g slot, and compares the stack
// pointer against its stack guard in every function prologue. The
// runtime never starts, so entry points FS at tls and the kernel runs
// everything on g0.

// gstack mirrors the head of the runtime's g structure, the only part
// compiled code reads.
type gstack struct {
	lo, hi uintptr
	// stackguard0 is read by function prologues at 16(R14).
	stackguard0 uintptr
	stackguard1 uintptr
}

// stackGuard is the space a nosplit chain may use below stackguard0,
// the runtime's guard size on linux/amd64.
const stackGuard = 928

var (
	g0 gstack
	// tls[0] is the g slot. The FS base is &tls[1]: on linux/amd64
	// the slot is the word below it.
	tls [2]uintptr
)

// initG0 sets the stack bounds of g0 to span every kernel stack, so
// the prologue checks pass on whichever stack a trap arrives.
//
//go:nosplit
func initG0() {
	g0.setBounds(&[...]*stack{&kstack, &istack, &doubleFaultStack})
}

//go:nosplit
func (g *gstack) setBounds(stacks *[3]*stack) {
	lo, hi := ^uintptr(0), uintptr(0)
	for _, s := range stacks {
		base := uintptr(unsafe.Pointer(&s[0]))
		if base < lo {
			lo = base
		}
		if top := s.top(); top > hi {
			hi = top
		}
	}
	g.lo = lo
	g.hi = hi
	g.stackguard0 = lo + stackGuard
	g.stackguard1 = g.stackguard0
}
