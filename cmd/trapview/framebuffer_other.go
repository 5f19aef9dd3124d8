// SPDX-License-Identifier: Unlicense OR MIT

//go:build !unix

package main

type framebuffer struct {
	mem []byte
}

func newFramebuffer(size int) (*framebuffer, error) {
	return &framebuffer{mem: make([]byte, size)}, nil
}

func (f *framebuffer) Close() error {
	f.mem = nil
	return nil
}
