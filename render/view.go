// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Info describes a framebuffer.
type Info struct {
	Width, Height int
	// Stride is the number of pixels between the starts of two
	// scan lines.
	Stride        int
	BytesPerPixel int
	Format        PixelFormat
}

// Error is an error usable before the Go runtime is initialized.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrFormat     Error = "render: unsupported pixel format"
	ErrBufferSize Error = "render: framebuffer too small"
)

// Text cell size.
const (
	cellWidth  = 7
	cellHeight = 13
)

// Columns between tab stops.
const tabWidth = 8

// View is a text terminal drawn onto a framebuffer. It never
// allocates, so it can be used from interrupt handlers.
type View struct {
	buf   []byte
	info  Info
	write PixelWriter

	cols, rows int
	col, row   int
	// bg is the background of the most recent clear or character.
	bg Color
}

// NewView returns a view drawing into buf.
func NewView(buf []byte, info Info) (View, error) {
	var v View
	err := v.Init(buf, info)
	return v, err
}

// Init sets v up to draw into buf with the cursor at the top left. On
// error v is left unchanged.
func (v *View) Init(buf []byte, info Info) error {
	w := WriterFor(info.Format, info.BytesPerPixel)
	if w == nil {
		return ErrFormat
	}
	if info.Width < cellWidth || info.Height < cellHeight || info.Stride < info.Width {
		return ErrBufferSize
	}
	if len(buf) < info.Stride*info.Height*info.BytesPerPixel {
		return ErrBufferSize
	}
	v.buf = buf
	v.info = info
	v.write = w
	v.cols = info.Width / cellWidth
	v.rows = info.Height / cellHeight
	v.col, v.row = 0, 0
	v.bg = Color{}
	return nil
}

func (v *View) Info() Info {
	return v.info
}

// Cursor returns the text cell the next character goes to.
func (v *View) Cursor() (col, row int) {
	return v.col, v.row
}

// Size returns the number of text columns and rows.
func (v *View) Size() (cols, rows int) {
	return v.cols, v.rows
}

// Clear fills the framebuffer with c and moves the cursor home.
func (v *View) Clear(c Color) {
	v.fill(0, 0, v.info.Width, v.info.Height, c)
	v.col, v.row = 0, 0
	v.bg = c
}

// PrintChar draws r at the cursor and advances it, wrapping at the
// right edge. A tab advances to the next tab stop.
func (v *View) PrintChar(r rune, fg, bg Color) {
	if r == '\n' {
		v.NewLine()
		return
	}
	if v.col >= v.cols {
		v.NewLine()
	}
	v.bg = bg
	if r == '\t' {
		v.tab()
		return
	}
	v.glyph(r, v.col*cellWidth, v.row*cellHeight, fg, bg)
	v.col++
}

// tab blanks the cells up to the next tab stop and moves the cursor
// there, stopping at the right edge.
func (v *View) tab() {
	next := min((v.col/tabWidth+1)*tabWidth, v.cols)
	v.fill(v.col*cellWidth, v.row*cellHeight, (next-v.col)*cellWidth, cellHeight, v.bg)
	v.col = next
}

// Backspace erases the character before the cursor.
func (v *View) Backspace() {
	switch {
	case v.col > 0:
		v.col--
	case v.row > 0:
		v.row--
		v.col = v.cols - 1
	default:
		return
	}
	v.fill(v.col*cellWidth, v.row*cellHeight, cellWidth, cellHeight, v.bg)
}

// NewLine moves the cursor to the start of the next line, scrolling
// the view up a line at the bottom.
func (v *View) NewLine() {
	v.col = 0
	if v.row+1 < v.rows {
		v.row++
		return
	}
	v.scroll()
}

func (v *View) scroll() {
	line := v.info.Stride * v.info.BytesPerPixel
	text := line * cellHeight
	copy(v.buf, v.buf[text:v.rows*text])
	v.fill(0, (v.rows-1)*cellHeight, v.info.Width, cellHeight, v.bg)
}

func (v *View) glyph(r rune, x, y int, fg, bg Color) {
	v.fill(x, y, cellWidth, cellHeight, bg)
	face := basicfont.Face7x13
	dr, mask, mp, _, ok := face.Glyph(fixed.P(x, y+face.Ascent), r)
	if !ok {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			_, _, _, a := mask.At(mp.X+px-dr.Min.X, mp.Y+py-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				v.set(px, py, fg)
			}
		}
	}
}

func (v *View) fill(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			v.set(px, py, c)
		}
	}
}

func (v *View) set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= v.info.Width || y >= v.info.Height {
		return
	}
	v.write(v.buf, (y*v.info.Stride+x)*v.info.BytesPerPixel, c)
}

// At returns the color of the pixel at x, y.
func (v *View) At(x, y int) Color {
	return readPixel(v.buf, (y*v.info.Stride+x)*v.info.BytesPerPixel, v.info.Format, v.info.BytesPerPixel)
}

// RGBA copies the framebuffer into dst, which must be at least as
// large as the view.
func (v *View) RGBA(dst *image.RGBA) {
	for y := 0; y < v.info.Height; y++ {
		for x := 0; x < v.info.Width; x++ {
			c := v.At(x, y)
			dst.SetRGBA(x, y, color.RGBA{R: c.Red, G: c.Green, B: c.Blue, A: 0xff})
		}
	}
}
