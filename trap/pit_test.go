// SPDX-License-Identifier: Unlicense OR MIT

package trap

import (
	"errors"
	"reflect"
	"testing"
)

func TestSetTimerFrequency(t *testing.T) {
	tests := []struct {
		hz      uint32
		divisor uint16
		got     uint32
	}{
		{100, 11931, 100},
		{1000, 1193, 1000},
		{18, 0xffff, 18},
		{1, 0xffff, 18},
		{PITFrequency, 2, PITFrequency / 2},
	}
	for _, tt := range tests {
		ports := newTestPorts()
		got, err := SetTimerFrequency(ports, tt.hz)
		if err != nil {
			t.Errorf("%d Hz: %v", tt.hz, err)
			continue
		}
		if got != tt.got {
			t.Errorf("%d Hz: programmed %d Hz, want %d", tt.hz, got, tt.got)
		}
		want := []portWrite{
			{0x43, 0x36},
			{0x40, uint8(tt.divisor)},
			{0x40, uint8(tt.divisor >> 8)},
		}
		if !reflect.DeepEqual(ports.writes, want) {
			t.Errorf("%d Hz: writes %v, want %v", tt.hz, ports.writes, want)
		}
	}
}

func TestSetTimerFrequencyRange(t *testing.T) {
	for _, hz := range []uint32{0, PITFrequency + 1} {
		ports := newTestPorts()
		if _, err := SetTimerFrequency(ports, hz); !errors.Is(err, ErrTimerFrequency) {
			t.Errorf("%d Hz: got %v, want %v", hz, err, ErrTimerFrequency)
		}
		if len(ports.writes) != 0 {
			t.Errorf("%d Hz: timer programmed anyway", hz)
		}
	}
}
