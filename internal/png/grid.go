// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package png

import (
	"image"
	"image/color"
)

// Grid is a decoded bitmap. Samples narrower than a byte are unpacked to
// one byte each, keeping their original range; 16-bit samples are stored
// big-endian in two bytes.
type Grid struct {
	Width, Height int
	ColorType     ColorType
	BitDepth      int
	Palette       []byte

	// Stride is the number of bytes between vertically adjacent pixels.
	Stride int
	Pix    []byte
}

func newGrid(hdr *Header, palette []byte) *Grid {
	g := &Grid{
		Width:     int(hdr.Width),
		Height:    int(hdr.Height),
		ColorType: hdr.ColorType,
		BitDepth:  int(hdr.BitDepth),
		Palette:   palette,
	}
	g.Stride = g.Width * g.PixelSize()
	g.Pix = make([]byte, g.Stride*g.Height)
	return g
}

func (g *Grid) Channels() int {
	return g.ColorType.Channels()
}

func (g *Grid) sampleSize() int {
	if g.BitDepth == 16 {
		return 2
	}
	return 1
}

// PixelSize returns the number of bytes of a pixel in Pix.
func (g *Grid) PixelSize() int {
	return g.Channels() * g.sampleSize()
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (g *Grid) PixOffset(x, y int) int {
	return y*g.Stride + x*g.PixelSize()
}

// At returns the sample bytes of the pixel at (x, y). The slice aliases Pix.
func (g *Grid) At(x, y int) []byte {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return nil
	}
	i := g.PixOffset(x, y)
	return g.Pix[i : i+g.PixelSize() : i+g.PixelSize()]
}

// unpackRow expands a reconstructed row of n samples into dst.
func (g *Grid) unpackRow(dst, src []byte, n int) {
	switch g.BitDepth {
	case 8, 16:
		copy(dst, src)
		return
	}

	depth := uint(g.BitDepth)
	mask := byte(1<<depth - 1)
	perByte := 8 / int(depth)
	for i := 0; i < n; i++ {
		b := src[i/perByte]
		shift := 8 - depth*uint(i%perByte+1)
		dst[i] = (b >> shift) & mask
	}
}

// setRow fills row y from a reconstructed baseline scanline.
func (g *Grid) setRow(y int, row []byte) {
	g.unpackRow(g.Pix[y*g.Stride:(y+1)*g.Stride], row, g.Width*g.Channels())
}

// scatterPass places the rows of a reduced Adam7 image into the grid.
func (g *Grid) scatterPass(pass int, rows []byte, rowBytes, pw, ph int) {
	x0, y0, dx, dy := PassOrigin(pass)
	ps := g.PixelSize()

	buf := make([]byte, pw*ps)
	for j := 0; j < ph; j++ {
		g.unpackRow(buf, rows[j*rowBytes:(j+1)*rowBytes], pw*g.Channels())

		y := y0 + j*dy
		for i := 0; i < pw; i++ {
			x := x0 + i*dx
			copy(g.Pix[g.PixOffset(x, y):], buf[i*ps:(i+1)*ps])
		}
	}
}

// Image converts the grid to an image.Image. Grayscale samples below
// 8 bits are scaled to the full 8-bit range.
func (g *Grid) Image() image.Image {
	r := image.Rect(0, 0, g.Width, g.Height)

	switch g.ColorType {
	case ColorGray:
		if g.BitDepth == 16 {
			img := image.NewGray16(r)
			copy(img.Pix, g.Pix)
			return img
		}
		img := image.NewGray(r)
		scale := byte(255 / (1<<g.BitDepth - 1))
		for i, v := range g.Pix {
			img.Pix[i] = v * scale
		}
		return img
	case ColorIndexed:
		return &image.Paletted{
			Pix:     append([]byte(nil), g.Pix...),
			Stride:  g.Width,
			Rect:    r,
			Palette: g.colorPalette(),
		}
	}

	if g.BitDepth == 16 {
		img := image.NewNRGBA64(r)
		g.expand(img.Pix, 2)
		return img
	}
	img := image.NewNRGBA(r)
	g.expand(img.Pix, 1)
	return img
}

// expand writes every pixel as RGBA into dst, size bytes per sample.
func (g *Grid) expand(dst []byte, size int) {
	n := g.Width * g.Height
	src := g.Pix
	opaque := []byte{0xff, 0xff}[:size]

	for i := 0; i < n; i++ {
		out := dst[i*4*size : (i+1)*4*size]
		switch g.ColorType {
		case ColorRGBA:
			copy(out, src[i*4*size:(i+1)*4*size])
		case ColorRGB:
			copy(out, src[i*3*size:(i+1)*3*size])
			copy(out[3*size:], opaque)
		case ColorGrayAlpha:
			v := src[i*2*size : i*2*size+size]
			a := src[i*2*size+size : (i+1)*2*size]
			copy(out[0:], v)
			copy(out[size:], v)
			copy(out[2*size:], v)
			copy(out[3*size:], a)
		}
	}
}

// colorPalette returns the PLTE entries, padded with opaque black up to
// the largest index the bit depth can address.
func (g *Grid) colorPalette() color.Palette {
	n := len(g.Palette) / 3
	size := max(n, 1<<g.BitDepth)
	pal := make(color.Palette, size)
	for i := range pal {
		if i < n {
			pal[i] = color.RGBA{g.Palette[3*i], g.Palette[3*i+1], g.Palette[3*i+2], 0xff}
		} else {
			pal[i] = color.RGBA{0, 0, 0, 0xff}
		}
	}
	return pal
}
