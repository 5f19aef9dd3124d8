// SPDX-License-Identifier: Unlicense OR MIT

package trap

// 8254 programmable interval timer, which drives controller line 0.

const (
	pitChannel0 uint16 = 0x40
	pitCommand  uint16 = 0x43

	// Channel 0, lobyte/hibyte access, mode 3 (square wave), binary.
	pitSquareWave = 0x36

	// PITFrequency is the input clock of the timer in Hz.
	PITFrequency = 1193182
)

// SetTimerFrequency programs timer channel 0 to interrupt hz times a
// second, as close as the 16-bit divisor allows, and returns the
// resulting frequency.
//
//go:nosplit
func SetTimerFrequency(p Ports, hz uint32) (uint32, error) {
	if hz == 0 || hz > PITFrequency {
		return 0, ErrTimerFrequency
	}
	divisor := PITFrequency / hz
	if divisor > 0xffff {
		divisor = 0xffff
	}
	// Mode 3 needs a divisor of at least 2.
	if divisor < 2 {
		divisor = 2
	}
	p.Outb(pitCommand, pitSquareWave)
	p.Outb(pitChannel0, uint8(divisor))
	p.Outb(pitChannel0, uint8(divisor>>8))
	return PITFrequency / divisor, nil
}
