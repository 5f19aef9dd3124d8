// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "strconv"

// COM1 is the first 16550 UART.
const COM1 = 0x3f8

const (
	uartData        = 0
	uartIntEnable   = 1
	uartFIFOControl = 2
	uartLineControl = 3
	uartModemCtrl   = 4
	uartLineStatus  = 5

	// Transmit holding register empty.
	uartTHRE = 1 << 5
)

// serialPort is COM1 as an io.Writer.
type serialPort struct{}

var serial serialPort

// initSerial sets COM1 to 115200 baud, 8N1, polled.
//
//go:nosplit
func initSerial() {
	outb(COM1+uartIntEnable, 0)
	// Divisor latch access.
	outb(COM1+uartLineControl, 0x80)
	outb(COM1+uartData, 1)
	outb(COM1+uartIntEnable, 0)
	outb(COM1+uartLineControl, 0x03)
	outb(COM1+uartFIFOControl, 0xc7)
	outb(COM1+uartModemCtrl, 0x03)
}

//go:nosplit
func outputByte(b byte) {
	for inb(COM1+uartLineStatus)&uartTHRE == 0 {
	}
	outb(COM1+uartData, b)
}

//go:nosplit
func output(b []byte) {
	for i := 0; i < len(b); i++ {
		outputByte(b[i])
	}
}

//go:nosplit
func outputString(b string) {
	for i := 0; i < len(b); i++ {
		outputByte(b[i])
	}
}

//go:nosplit
func (*serialPort) Write(b []byte) (int, error) {
	output(b)
	return len(b), nil
}

const logPrefix = "[tokyo] "

//go:nosplit
func logLine(msg string) {
	outputString(logPrefix)
	outputString(msg)
	outputByte('\n')
}

//go:nosplit
func logValue(key string, v uint64) {
	var buf [64]byte
	output(appendLogValue(buf[:0], key, v))
}

// appendLogValue formats a "[tokyo] key=value" line.
//
//go:nosplit
func appendLogValue(b []byte, key string, v uint64) []byte {
	b = append(b, logPrefix...)
	b = append(b, key...)
	b = append(b, '=')
	b = strconv.AppendUint(b, v, 10)
	return append(b, '\n')
}
