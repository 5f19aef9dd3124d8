// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// rawTerminal puts f in raw mode if it is a terminal. The returned
// function restores the previous mode.
func rawTerminal(f *os.File) (restore func(), raw bool, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, false, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, false, fmt.Errorf("enable raw mode: %w", err)
	}
	return func() { term.Restore(fd, old) }, true, nil
}

// crlfWriter ends lines with CR LF, for output to a raw terminal.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
