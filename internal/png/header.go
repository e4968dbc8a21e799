package png

import (
	"fmt"
	"math"
)

// ColorType, as per the PNG spec.
type ColorType uint8

const (
	ColorGray      ColorType = 0
	ColorRGB       ColorType = 2
	ColorIndexed   ColorType = 3
	ColorGrayAlpha ColorType = 4
	ColorRGBA      ColorType = 6
)

func (ct ColorType) String() string {
	switch ct {
	case ColorGray:
		return "grayscale"
	case ColorRGB:
		return "truecolor"
	case ColorIndexed:
		return "indexed"
	case ColorGrayAlpha:
		return "grayscale+alpha"
	case ColorRGBA:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("unknown(%d)", uint8(ct))
}

// Channels returns the number of samples per pixel, or 0 for an unknown color type.
func (ct ColorType) Channels() int {
	switch ct {
	case ColorGray, ColorIndexed:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	}
	return 0
}

func (ct ColorType) allowsDepth(depth uint8) bool {
	switch ct {
	case ColorGray:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8 || depth == 16
	case ColorIndexed:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8
	case ColorRGB, ColorGrayAlpha, ColorRGBA:
		return depth == 8 || depth == 16
	}
	return false
}

// Interlace methods.
const (
	InterlaceNone  = 0
	InterlaceAdam7 = 1
)

const ihdrLength = 13

// Header holds the fields of the IHDR chunk.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

func (h *Header) Channels() int {
	return h.ColorType.Channels()
}

func (h *Header) BitsPerPixel() int {
	return h.Channels() * int(h.BitDepth)
}

// BytesPerPixel is the distance, in bytes, between a byte and the
// corresponding byte of the pixel to its left. Sub-byte pixels count as 1.
func (h *Header) BytesPerPixel() int {
	return max(1, (h.BitsPerPixel()+7)/8)
}

// RowBytes returns the size of a reconstructed row of width pixels,
// without the filter-type byte.
func (h *Header) RowBytes(width int) int {
	return (width*h.BitsPerPixel() + 7) / 8
}

func (h *Header) Interlaced() bool {
	return h.InterlaceMethod == InterlaceAdam7
}

// parseHeader reads the IHDR fields in stream order from the chunk's own payload.
func parseHeader(chunk *Chunk) (Header, error) {
	if chunk.Length != ihdrLength {
		return Header{}, FormatError("bad IHDR length")
	}

	c := chunk.Cursor()

	var h Header
	h.Width, _ = c.Uint32()
	h.Height, _ = c.Uint32()
	h.BitDepth, _ = c.ReadByte()
	ct, _ := c.ReadByte()
	h.ColorType = ColorType(ct)
	h.CompressionMethod, _ = c.ReadByte()
	h.FilterMethod, _ = c.ReadByte()
	h.InterlaceMethod, _ = c.ReadByte()

	return h, h.validate()
}

func (h *Header) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return FormatError("non-positive dimension")
	}
	if h.Width > math.MaxInt32 || h.Height > math.MaxInt32 {
		return FormatError("dimension exceeds 2^31-1")
	}
	if h.ColorType.Channels() == 0 {
		return FormatError(fmt.Sprintf("bad color type %d", uint8(h.ColorType)))
	}
	if !h.ColorType.allowsDepth(h.BitDepth) {
		return FormatError(fmt.Sprintf("bit depth %d not allowed for color type %d", h.BitDepth, uint8(h.ColorType)))
	}
	if h.CompressionMethod != 0 {
		return UnsupportedError("compression method")
	}
	if h.FilterMethod != 0 {
		return UnsupportedError("filter method")
	}
	if h.InterlaceMethod != InterlaceNone && h.InterlaceMethod != InterlaceAdam7 {
		return FormatError(fmt.Sprintf("invalid interlace method %d", h.InterlaceMethod))
	}

	// Up to 8 bytes per pixel plus filter bytes and Adam7 row padding:
	// FilteredSize must not overflow an int.
	n := uint64(h.Width) * uint64(h.Height)
	if n > math.MaxInt/16 {
		return UnsupportedError("dimension overflow")
	}
	return nil
}
