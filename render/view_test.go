// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"image"
	"testing"
)

func newTestView(t *testing.T, cols, rows int, format PixelFormat, bpp int) *View {
	t.Helper()
	info := Info{
		Width:         cols * cellWidth,
		Height:        rows * cellHeight,
		Stride:        cols*cellWidth + 3,
		BytesPerPixel: bpp,
		Format:        format,
	}
	buf := make([]byte, info.Stride*info.Height*bpp)
	v, err := NewView(buf, info)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	return &v
}

// cellCount counts the pixels of color c in a text cell.
func cellCount(v *View, col, row int, c Color) int {
	n := 0
	for y := row * cellHeight; y < (row+1)*cellHeight; y++ {
		for x := col * cellWidth; x < (col+1)*cellWidth; x++ {
			if v.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestViewClear(t *testing.T) {
	v := newTestView(t, 4, 2, BGR, 4)
	v.PrintChar('x', White, Black)
	v.Clear(Blue)
	if col, row := v.Cursor(); col != 0 || row != 0 {
		t.Errorf("cursor at %d,%d after clear", col, row)
	}
	for y := 0; y < v.info.Height; y++ {
		for x := 0; x < v.info.Width; x++ {
			if got := v.At(x, y); got != Blue {
				t.Fatalf("pixel %d,%d = %v, want blue", x, y, got)
			}
		}
	}
}

func TestViewPrintChar(t *testing.T) {
	v := newTestView(t, 4, 2, RGB, 3)
	v.Clear(Black)
	v.PrintChar('A', White, Black)
	if col, row := v.Cursor(); col != 1 || row != 0 {
		t.Fatalf("cursor at %d,%d, want 1,0", col, row)
	}
	if cellCount(v, 0, 0, White) == 0 {
		t.Error("glyph drew no foreground pixels")
	}
	if cellCount(v, 1, 0, White) != 0 {
		t.Error("glyph spilled into the next cell")
	}
	v.PrintChar(' ', White, Red)
	if n := cellCount(v, 1, 0, Red); n != cellWidth*cellHeight {
		t.Errorf("space cell has %d background pixels, want %d", n, cellWidth*cellHeight)
	}
}

func TestViewWrap(t *testing.T) {
	v := newTestView(t, 2, 3, RGB, 4)
	for _, r := range "abc" {
		v.PrintChar(r, White, Black)
	}
	if col, row := v.Cursor(); col != 1 || row != 1 {
		t.Errorf("cursor at %d,%d, want 1,1", col, row)
	}
}

func TestViewBackspace(t *testing.T) {
	v := newTestView(t, 2, 2, RGB, 4)
	v.Clear(Black)
	v.Backspace()
	if col, row := v.Cursor(); col != 0 || row != 0 {
		t.Fatalf("backspace at origin moved cursor to %d,%d", col, row)
	}
	v.PrintChar('M', White, Black)
	v.PrintChar('M', White, Black)
	v.PrintChar('M', White, Black)
	v.Backspace()
	if col, row := v.Cursor(); col != 0 || row != 1 {
		t.Fatalf("cursor at %d,%d, want 0,1", col, row)
	}
	if cellCount(v, 0, 1, White) != 0 {
		t.Error("backspace left the glyph in place")
	}
	v.Backspace()
	if col, row := v.Cursor(); col != 1 || row != 0 {
		t.Fatalf("cursor at %d,%d, want 1,0", col, row)
	}
	if cellCount(v, 1, 0, White) != 0 {
		t.Error("backspace across the line start left the glyph in place")
	}
	if cellCount(v, 0, 0, White) == 0 {
		t.Error("backspace erased too much")
	}
}

func TestViewNewLineScrolls(t *testing.T) {
	v := newTestView(t, 3, 2, BGR, 3)
	v.Clear(Black)
	v.PrintChar('A', White, Black)
	v.NewLine()
	v.PrintChar('B', Red, Black)
	v.NewLine()
	if col, row := v.Cursor(); col != 0 || row != 1 {
		t.Fatalf("cursor at %d,%d, want 0,1", col, row)
	}
	if cellCount(v, 0, 0, Red) == 0 {
		t.Error("second line did not scroll up")
	}
	if cellCount(v, 0, 0, White) != 0 {
		t.Error("first line still visible after scroll")
	}
	if n := cellCount(v, 0, 1, Black); n != cellWidth*cellHeight {
		t.Error("last line not blank after scroll")
	}
}

func TestNewViewErrors(t *testing.T) {
	info := Info{Width: 14, Height: 13, Stride: 14, BytesPerPixel: 4, Format: U8}
	if _, err := NewView(make([]byte, 1024), info); !errors.Is(err, ErrFormat) {
		t.Errorf("u8/4: got %v, want %v", err, ErrFormat)
	}
	info.Format = RGB
	if _, err := NewView(make([]byte, 10), info); !errors.Is(err, ErrBufferSize) {
		t.Errorf("short buffer: got %v, want %v", err, ErrBufferSize)
	}
	info.Width = 3
	if _, err := NewView(make([]byte, 1024), info); !errors.Is(err, ErrBufferSize) {
		t.Errorf("narrow: got %v, want %v", err, ErrBufferSize)
	}
}

func TestViewRGBA(t *testing.T) {
	v := newTestView(t, 1, 1, U8, 1)
	v.Clear(Color{Red: 30, Green: 60, Blue: 90})
	img := image.NewRGBA(image.Rect(0, 0, cellWidth, cellHeight))
	v.RGBA(img)
	if got := img.RGBAAt(3, 3); got.R != 60 || got.G != 60 || got.B != 60 || got.A != 0xff {
		t.Errorf("pixel = %v, want gray 60", got)
	}
}

func TestViewTab(t *testing.T) {
	v := newTestView(t, 20, 2, BGR, 4)
	v.Clear(Black)
	v.PrintChar('a', White, Black)
	v.PrintChar('\t', White, Blue)
	if col, row := v.Cursor(); col != 8 || row != 0 {
		t.Fatalf("cursor at %d,%d after tab, want 8,0", col, row)
	}
	for col := 1; col < 8; col++ {
		if n := cellCount(v, col, 0, Blue); n != cellWidth*cellHeight {
			t.Errorf("cell %d: %d background pixels, want %d", col, n, cellWidth*cellHeight)
		}
		if cellCount(v, col, 0, White) != 0 {
			t.Errorf("cell %d: tab drew a glyph", col)
		}
	}
	v.PrintChar('\t', White, Blue)
	if col, _ := v.Cursor(); col != 16 {
		t.Errorf("second tab: column %d, want 16", col)
	}
	// The last tab stop is the right edge.
	v.PrintChar('\t', White, Blue)
	if col, row := v.Cursor(); col != 20 || row != 0 {
		t.Errorf("tab past the last stop: cursor at %d,%d, want 20,0", col, row)
	}
	v.PrintChar('b', White, Black)
	if col, row := v.Cursor(); col != 1 || row != 1 {
		t.Errorf("cursor at %d,%d after wrap, want 1,1", col, row)
	}
}

func TestViewInitInPlace(t *testing.T) {
	v := newTestView(t, 4, 2, RGB, 3)
	v.PrintChar('x', White, Red)
	info := v.Info()
	buf := make([]byte, info.Stride*info.Height*info.BytesPerPixel)
	bad := info
	bad.Format = U8
	if err := v.Init(buf, bad); !errors.Is(err, ErrFormat) {
		t.Fatalf("Init with u8/3: got %v, want %v", err, ErrFormat)
	}
	if col, _ := v.Cursor(); col != 1 {
		t.Errorf("failed Init moved the cursor to column %d", col)
	}
	if err := v.Init(buf, info); err != nil {
		t.Fatal(err)
	}
	if col, row := v.Cursor(); col != 0 || row != 0 {
		t.Errorf("cursor at %d,%d after Init", col, row)
	}
	v.PrintChar('y', White, Black)
	if cellCount(v, 0, 0, White) == 0 {
		t.Error("view does not draw into the new buffer")
	}
}
