// SPDX-License-Identifier: Unlicense OR MIT

//go:build amd64

// Command tokyo is the kernel image. The loader enters it at
// kernel.entry, not at main, so the Go runtime never starts:
//
//	GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build \
//		-ldflags='-E tokyo.dev/tokyo/kernel.entry' ./cmd/tokyo
//
// Use cmd/qemu to boot a disk image holding it.
package main

import _ "tokyo.dev/tokyo/kernel"

func main() {}
