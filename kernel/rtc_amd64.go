// SPDX-License-Identifier: Unlicense OR MIT

package kernel

// Reading the real time clock of the CMOS, for the boot log.

const (
	cmosAddr = 0x70
	cmosData = 0x71

	rtcSeconds = 0x00
	rtcMinutes = 0x02
	rtcHours   = 0x04
	rtcDay     = 0x07
	rtcMonth   = 0x08
	rtcYear    = 0x09
	rtcStatusA = 0x0a
	rtcStatusB = 0x0b
	rtcCentury = 0x32

	// Status A: update in progress.
	rtcUpdating = 1 << 7
	// Status B: 24 hour clock, binary values.
	rtc24Hour = 1 << 1
	rtcBinary = 1 << 2
	// PM flag in the hours register of a 12 hour clock.
	rtcPM = 1 << 7
)

// rtcTime is a wall clock reading.
type rtcTime struct {
	year                 int
	month, day           uint8
	hour, minute, second uint8
}

//go:nosplit
func logRTC() {
	var buf [64]byte
	b := append(buf[:0], logPrefix...)
	b = append(b, "rtc "...)
	b = appendRTC(b, readRTC())
	output(append(b, '\n'))
}

// readRTC reads the clock until two readings agree, since the CMOS
// may update while it is read.
//
//go:nosplit
func readRTC() rtcTime {
	waitForCMOS()
	t := readRTC0()
	for {
		waitForCMOS()
		t2 := readRTC0()
		if t2 == t {
			return t
		}
		t = t2
	}
}

//go:nosplit
func readRTC0() rtcTime {
	return decodeRTC(readCMOSReg(rtcStatusB), [...]uint8{
		readCMOSReg(rtcCentury), readCMOSReg(rtcYear), readCMOSReg(rtcMonth),
		readCMOSReg(rtcDay), readCMOSReg(rtcHours), readCMOSReg(rtcMinutes),
		readCMOSReg(rtcSeconds),
	})
}

// decodeRTC converts raw century, year, month, day, hour, minute and
// second registers.
//
//go:nosplit
func decodeRTC(statusB uint8, regs [7]uint8) rtcTime {
	century, year, month, day, hour, min, sec := regs[0], regs[1], regs[2], regs[3], regs[4], regs[5], regs[6]
	pm := false
	if statusB&rtc24Hour == 0 {
		pm = hour&rtcPM != 0
		hour &^= rtcPM
	}
	if statusB&rtcBinary == 0 {
		century, year, month, day = bcdToBin(century), bcdToBin(year), bcdToBin(month), bcdToBin(day)
		hour, min, sec = bcdToBin(hour), bcdToBin(min), bcdToBin(sec)
	}
	if statusB&rtc24Hour == 0 {
		// 12 AM is midnight, 12 PM is noon.
		hour %= 12
		if pm {
			hour += 12
		}
	}
	if century == 0 {
		century = 20
	}
	return rtcTime{
		year:   int(century)*100 + int(year),
		month:  month,
		day:    day,
		hour:   hour,
		minute: min,
		second: sec,
	}
}

// appendRTC formats t as "2006-01-02 15:04:05".
//
//go:nosplit
func appendRTC(b []byte, t rtcTime) []byte {
	b = appendDigits(b, t.year, 4)
	b = append(b, '-')
	b = appendDigits(b, int(t.month), 2)
	b = append(b, '-')
	b = appendDigits(b, int(t.day), 2)
	b = append(b, ' ')
	b = appendDigits(b, int(t.hour), 2)
	b = append(b, ':')
	b = appendDigits(b, int(t.minute), 2)
	b = append(b, ':')
	return appendDigits(b, int(t.second), 2)
}

//go:nosplit
func appendDigits(b []byte, v, width int) []byte {
	var d [8]byte
	for i := width - 1; i >= 0; i-- {
		d[i] = byte('0' + v%10)
		v /= 10
	}
	return append(b, d[:width]...)
}

//go:nosplit
func bcdToBin(v uint8) uint8 {
	return v&0x0f + v>>4*10
}

// waitForCMOS waits for the CMOS busy flag to clear.
//
//go:nosplit
func waitForCMOS() {
	for readCMOSReg(rtcStatusA)&rtcUpdating != 0 {
	}
}

//go:nosplit
func readCMOSReg(reg uint8) uint8 {
	outb(cmosAddr, reg)
	return inb(cmosData)
}
