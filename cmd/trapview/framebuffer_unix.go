// SPDX-License-Identifier: Unlicense OR MIT

//go:build unix

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// framebuffer is anonymous memory standing in for video memory.
type framebuffer struct {
	mem []byte
}

func newFramebuffer(size int) (*framebuffer, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("map framebuffer: %w", err)
	}
	return &framebuffer{mem: mem}, nil
}

func (f *framebuffer) Close() error {
	if f.mem == nil {
		return nil
	}
	err := unix.Munmap(f.mem)
	f.mem = nil
	return err
}
