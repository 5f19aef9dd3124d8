// SPDX-License-Identifier: Unlicense OR MIT

package trap

import (
	"errors"
	"testing"
)

var testEntries = Entries{
	DoubleFault: 0xffff8000_00101000,
	PageFault:   0xffff8000_00102040,
	Timer:       0x0000_0000_00203080,
	Keyboard:    0x0000_1234_5678_9abc,
}

func TestBuildBindsHandledVectors(t *testing.T) {
	var tab Table
	if err := tab.Build(testEntries, 0x08, 1); err != nil {
		t.Fatal(err)
	}
	if n := tab.Bound(); n != 4 {
		t.Errorf("%d bound gates, want 4", n)
	}
	want := map[Vector]struct {
		pc    uintptr
		stack uint8
	}{
		DoubleFaultVector: {testEntries.DoubleFault, 1},
		PageFaultVector:   {testEntries.PageFault, 0},
		TimerVector:       {testEntries.Timer, 0},
		KeyboardVector:    {testEntries.Keyboard, 0},
	}
	for v := range tab {
		d := &tab[v]
		w, ok := want[Vector(v)]
		if d.Present() != ok {
			t.Errorf("vector %d: present %v, want %v", v, d.Present(), ok)
			continue
		}
		if !ok {
			if *d != (Descriptor{}) {
				t.Errorf("vector %d: unbound gate is %#x, want zero", v, *d)
			}
			continue
		}
		if got := d.Handler(); got != w.pc {
			t.Errorf("vector %d: handler %#x, want %#x", v, got, w.pc)
		}
		if got := d.Selector(); got != 0x08 {
			t.Errorf("vector %d: selector %#x", v, got)
		}
		if got := d.StackIndex(); got != w.stack {
			t.Errorf("vector %d: stack index %d, want %d", v, got, w.stack)
		}
		if got := d.Type(); got != interruptGate {
			t.Errorf("vector %d: gate type %#x", v, got)
		}
	}
}

func TestDescriptorEncoding(t *testing.T) {
	var d Descriptor
	d.set(0x1122334455667788, 0x08, 1)
	want := Descriptor{0x55668e01_00087788, 0x11223344}
	if d != want {
		t.Errorf("got %#x, want %#x", d, want)
	}
}

func TestBuildErrors(t *testing.T) {
	var tab Table
	for _, stack := range []uint8{0, 8, 255} {
		if err := tab.Build(testEntries, 0x08, stack); !errors.Is(err, ErrStackIndex) {
			t.Errorf("stack %d: got %v, want %v", stack, err, ErrStackIndex)
		}
	}
	e := testEntries
	e.Keyboard = 0
	if err := tab.Build(e, 0x08, 1); !errors.Is(err, ErrNoHandler) {
		t.Errorf("missing entry: got %v, want %v", err, ErrNoHandler)
	}
	if n := tab.Bound(); n != 0 {
		t.Errorf("failed builds bound %d gates", n)
	}
}

func TestIDTLoadOnce(t *testing.T) {
	var idt IDT
	builds, installs := 0, 0
	build := func(t *Table) error {
		builds++
		return t.Build(testEntries, 0x08, 1)
	}
	install := func(tab *Table) {
		installs++
		if tab != idt.Table() {
			t.Error("installed a table other than the loaded one")
		}
	}
	if err := idt.Load(build, install); err != nil {
		t.Fatal(err)
	}
	if err := idt.Load(build, install); !errors.Is(err, ErrTableLoaded) {
		t.Errorf("second Load: got %v, want %v", err, ErrTableLoaded)
	}
	if builds != 1 || installs != 1 {
		t.Errorf("%d builds and %d installs, want 1 of each", builds, installs)
	}
	if n := idt.Table().Bound(); n != 4 {
		t.Errorf("%d bound gates, want 4", n)
	}
}

func TestIDTLoadBuildError(t *testing.T) {
	var idt IDT
	build := func(t *Table) error {
		return t.Build(testEntries, 0x08, 0)
	}
	install := func(*Table) {
		t.Error("installed a table that failed to build")
	}
	for i := 0; i < 2; i++ {
		if err := idt.Load(build, install); !errors.Is(err, ErrStackIndex) {
			t.Errorf("Load %d: got %v, want %v", i, err, ErrStackIndex)
		}
	}
}
