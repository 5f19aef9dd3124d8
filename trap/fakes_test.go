// SPDX-License-Identifier: Unlicense OR MIT

package trap

import (
	"testing"

	"tokyo.dev/tokyo/keyboard"
	"tokyo.dev/tokyo/render"
)

type portWrite struct {
	port uint16
	v    uint8
}

// testPorts records port writes and serves queued reads.
type testPorts struct {
	writes []portWrite
	reads  []uint16
	in     map[uint16][]uint8
}

func newTestPorts() *testPorts {
	return &testPorts{in: make(map[uint16][]uint8)}
}

func (p *testPorts) Outb(port uint16, v uint8) {
	p.writes = append(p.writes, portWrite{port, v})
}

func (p *testPorts) Inb(port uint16) uint8 {
	p.reads = append(p.reads, port)
	q := p.in[port]
	if len(q) == 0 {
		return 0
	}
	p.in[port] = q[1:]
	return q[0]
}

func (p *testPorts) queue(port uint16, v ...uint8) {
	p.in[port] = append(p.in[port], v...)
}

func (p *testPorts) reset() {
	p.writes = nil
	p.reads = nil
}

type displayCall struct {
	op     string
	r      rune
	fg, bg render.Color
}

// testDisplay records the calls made on it.
type testDisplay struct {
	calls []displayCall
}

func (d *testDisplay) Clear(c render.Color) {
	d.calls = append(d.calls, displayCall{op: "clear", fg: c})
}

func (d *testDisplay) PrintChar(r rune, fg, bg render.Color) {
	d.calls = append(d.calls, displayCall{op: "char", r: r, fg: fg, bg: bg})
}

func (d *testDisplay) Backspace() {
	d.calls = append(d.calls, displayCall{op: "backspace"})
}

func (d *testDisplay) NewLine() {
	d.calls = append(d.calls, displayCall{op: "newline"})
}

// text returns the characters and new lines printed.
func (d *testDisplay) text() string {
	var s []rune
	for _, c := range d.calls {
		switch c.op {
		case "char":
			s = append(s, c.r)
		case "newline":
			s = append(s, '\n')
		}
	}
	return string(s)
}

type halted struct{}

func haltPanics() {
	panic(halted{})
}

// expectHalt runs f and fails unless f halts the processor.
func expectHalt(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if _, ok := recover().(halted); !ok {
			t.Fatal("handler returned instead of halting")
		}
	}()
	f()
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testPorts, *testDisplay) {
	t.Helper()
	ports := newTestPorts()
	display := new(testDisplay)
	kbd := keyboard.New()
	d := &Dispatcher{
		PICs:     new(ChainedPICs),
		Keys:     &kbd,
		Display:  display,
		Ports:    ports,
		Halt:     haltPanics,
	}
	if err := d.PICs.Configure(PICOffset, ports); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return d, ports, display
}
