// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "testing"

func TestDecodeRTC(t *testing.T) {
	tests := []struct {
		name    string
		statusB uint8
		regs    [7]uint8
		want    string
	}{
		{"bcd 24h", rtc24Hour, [7]uint8{0x20, 0x26, 0x10, 0x19, 0x17, 0x34, 0x05}, "2026-10-19 17:34:05"},
		{"binary 24h", rtc24Hour | rtcBinary, [7]uint8{20, 26, 1, 2, 3, 4, 5}, "2026-01-02 03:04:05"},
		{"bcd pm", 0, [7]uint8{0x20, 0x26, 0x10, 0x19, rtcPM | 0x05, 0x00, 0x00}, "2026-10-19 17:00:00"},
		{"binary noon", rtcBinary, [7]uint8{20, 26, 10, 19, rtcPM | 12, 0, 0}, "2026-10-19 12:00:00"},
		{"bcd midnight", 0, [7]uint8{0x20, 0x26, 0x10, 0x19, 0x12, 0x30, 0x00}, "2026-10-19 00:30:00"},
		{"no century", rtc24Hour, [7]uint8{0x00, 0x99, 0x12, 0x31, 0x23, 0x59, 0x59}, "2099-12-31 23:59:59"},
	}
	for _, tt := range tests {
		got := string(appendRTC(nil, decodeRTC(tt.statusB, tt.regs)))
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAppendLogValue(t *testing.T) {
	got := string(appendLogValue(nil, "timer hz", 100))
	if want := "[tokyo] timer hz=100\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
