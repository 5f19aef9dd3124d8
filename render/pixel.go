// SPDX-License-Identifier: Unlicense OR MIT

// Package render draws text onto a linear framebuffer as handed over
// by the boot firmware.
package render

// Color is a 24-bit color without alpha.
type Color struct {
	Red, Green, Blue uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Blue  = Color{0, 0, 255}
)

// PixelFormat is the channel order of a framebuffer.
type PixelFormat uint8

const (
	RGB PixelFormat = iota
	BGR
	// U8 is a single grayscale channel.
	U8
)

// PixelWriter stores c at offset pos of buf.
type PixelWriter func(buf []byte, pos int, c Color)

//go:nosplit
func WriteRGB24(buf []byte, pos int, c Color) {
	buf[pos] = c.Red
	buf[pos+1] = c.Green
	buf[pos+2] = c.Blue
}

// WriteRGB32 writes a reserved zero byte followed by the channels.
//
//go:nosplit
func WriteRGB32(buf []byte, pos int, c Color) {
	buf[pos] = 0
	WriteRGB24(buf, pos+1, c)
}

//go:nosplit
func WriteBGR24(buf []byte, pos int, c Color) {
	buf[pos] = c.Blue
	buf[pos+1] = c.Green
	buf[pos+2] = c.Red
}

// WriteBGR32 writes a reserved zero byte followed by the channels.
//
//go:nosplit
func WriteBGR32(buf []byte, pos int, c Color) {
	buf[pos] = 0
	WriteBGR24(buf, pos+1, c)
}

// WriteU8 writes the average of the three channels.
//
//go:nosplit
func WriteU8(buf []byte, pos int, c Color) {
	buf[pos] = uint8((uint16(c.Red) + uint16(c.Green) + uint16(c.Blue)) / 3)
}

// WriterFor returns the writer for a format and pixel size, or nil if
// the combination is not supported.
func WriterFor(format PixelFormat, bytesPerPixel int) PixelWriter {
	switch {
	case format == RGB && bytesPerPixel == 3:
		return WriteRGB24
	case format == RGB && bytesPerPixel == 4:
		return WriteRGB32
	case format == BGR && bytesPerPixel == 3:
		return WriteBGR24
	case format == BGR && bytesPerPixel == 4:
		return WriteBGR32
	case format == U8 && bytesPerPixel == 1:
		return WriteU8
	}
	return nil
}

// readPixel is the inverse of the writers, used to export the
// framebuffer. Grayscale expands to equal channels.
func readPixel(buf []byte, pos int, format PixelFormat, bytesPerPixel int) Color {
	if bytesPerPixel == 4 {
		pos++
	}
	switch format {
	case BGR:
		return Color{Red: buf[pos+2], Green: buf[pos+1], Blue: buf[pos]}
	case U8:
		v := buf[pos]
		return Color{v, v, v}
	default:
		return Color{Red: buf[pos], Green: buf[pos+1], Blue: buf[pos+2]}
	}
}

func (f PixelFormat) String() string {
	switch f {
	case RGB:
		return "rgb"
	case BGR:
		return "bgr"
	case U8:
		return "u8"
	default:
		return "unknown"
	}
}
