// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"testing"
	"unsafe"
)

func TestGLayout(t *testing.T) {
	if off := unsafe.Offsetof(gstack{}.stackguard0); off != 16 {
		t.Errorf("stackguard0 at offset %d, want 16", off)
	}
}

func TestStackBounds(t *testing.T) {
	stacks := [3]*stack{new(stack), new(stack), new(stack)}
	var g gstack
	g.setBounds(&stacks)
	for i, s := range stacks {
		base := uintptr(unsafe.Pointer(&s[0]))
		if base < g.lo || s.top() > g.hi {
			t.Errorf("stack %d [%#x, %#x] outside g bounds [%#x, %#x]", i, base, s.top(), g.lo, g.hi)
		}
	}
	if g.stackguard0 != g.lo+stackGuard || g.stackguard1 != g.stackguard0 {
		t.Errorf("stack guards %#x, %#x with lo %#x", g.stackguard0, g.stackguard1, g.lo)
	}
	// A stack pointer anywhere in the kernel stacks passes the
	// prologue check.
	for i, s := range stacks {
		if sp := uintptr(unsafe.Pointer(&s[len(s)/2])); sp <= g.stackguard0 {
			t.Errorf("stack %d: sp %#x at or below guard %#x", i, sp, g.stackguard0)
		}
	}
}

func TestKernelStacksCovered(t *testing.T) {
	initG0()
	for _, s := range []*stack{&kstack, &istack, &doubleFaultStack} {
		if base := uintptr(unsafe.Pointer(&s[0])); base < g0.lo || s.top() > g0.hi {
			t.Errorf("stack at %#x not covered by g0 [%#x, %#x]", base, g0.lo, g0.hi)
		}
	}
}
