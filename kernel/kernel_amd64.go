// SPDX-License-Identifier: Unlicense OR MIT

// Package kernel is the freestanding amd64 side of tokyo. It sets up
// segments, the interrupt descriptor table and the interrupt
// controllers, then idles while the trap handlers drive the screen.
//
// The Go runtime never starts. entry enables SSE and installs a static
// g0 spanning the kernel stacks, which is all compiled code needs as
// long as nothing allocates. Errors are constant strings and output
// goes to the COM1 serial port.
package kernel

import (
	"unsafe"

	"tokyo.dev/tokyo/render"
	"tokyo.dev/tokyo/trap"
)

// kernError is an error type usable in kernel code.
type kernError string

const pageSize = 4096

type stack [10 * pageSize]byte

// BootInfo is filled in by the loader and passed to Main.
type BootInfo struct {
	FramebufferAddr uint64
	FramebufferSize uint64
	Width           uint32
	Height          uint32
	// Stride is the number of pixels per scan line.
	Stride        uint32
	BytesPerPixel uint32
	Format        render.PixelFormat
}

var (
	// Kernel stack, switched to by entry.
	kstack stack

	screen render.View
)

// Main brings up the kernel and idles. It never returns.
//
//go:nosplit
func Main(info *BootInfo) {
	initG0()
	initSerial()
	logLine("system booted")
	logRTC()
	if err := initKernel(info); err != nil {
		fatalError(err)
	}
	logLine("idle")
	for {
		halt()
	}
}

//go:nosplit
func initKernel(info *BootInfo) error {
	if err := initDisplay(info); err != nil {
		return err
	}
	loadGDT()
	logLine("segments loaded")
	if err := initTraps(); err != nil {
		return err
	}
	if err := initTimer(); err != nil {
		return err
	}
	enableInterrupts()
	logLine("interrupts enabled")
	screen.Clear(render.Blue)
	return nil
}

//go:nosplit
func initDisplay(info *BootInfo) error {
	if info == nil || info.FramebufferAddr == 0 {
		return kernError("initDisplay: no framebuffer")
	}
	size := info.FramebufferSize
	fb := (*(*[1 << 30]byte)(unsafe.Pointer(uintptr(info.FramebufferAddr))))[:size:size]
	err := screen.Init(fb, render.Info{
		Width:         int(info.Width),
		Height:        int(info.Height),
		Stride:        int(info.Stride),
		BytesPerPixel: int(info.BytesPerPixel),
		Format:        info.Format,
	})
	if err != nil {
		return err
	}
	logValue("framebuffer width", uint64(info.Width))
	logValue("framebuffer height", uint64(info.Height))
	return nil
}

//go:nosplit
func fatalError(err error) {
	// Only the constant error types are supported. Calling Error
	// through the interface would reach a wrapper that is not
	// nosplit.
	switch err := err.(type) {
	case kernError:
		fatal(string(err))
	case trap.Error:
		fatal(string(err))
	case render.Error:
		fatal(string(err))
	default:
		fatal("unsupported error")
	}
}

//go:nosplit
func fatal(msg string) {
	outputString("fatal error: ")
	outputString(msg)
	outputString("\n")
	disableInterrupts()
	for {
		halt()
	}
}

//go:nosplit
func (s *stack) top() uintptr {
	stackTop := uintptr(unsafe.Pointer(&s[0])) + unsafe.Sizeof(*s)
	// Align to 16 bytes.
	return stackTop &^ 0xf
}

// entry is the image entry point. It expects a *BootInfo in DI,
// switches to kstack and calls Main.
func entry()

func halt()
func enableInterrupts()
func disableInterrupts()
func readCR2() uint64
func outb(port uint16, b uint8)
func inb(port uint16) uint8

//go:nosplit
func (k kernError) Error() string {
	return string(k)
}
