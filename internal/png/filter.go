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

// Filter type, as per the PNG spec.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
	nFilter   = 5
)

// paeth implements the Paeth predictor. Ties go to a, then b.
func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// unfilter reconstructs cdat in place. pdat is the previous reconstructed
// row of the same pass, all zeros for the first row. It returns false for
// an unknown filter type.
func unfilter(ft byte, cdat, pdat []byte, bpp int) bool {
	switch ft {
	case ftNone:
		// No-op.
	case ftSub:
		for i := bpp; i < len(cdat); i++ {
			cdat[i] += cdat[i-bpp]
		}
	case ftUp:
		for i, p := range pdat {
			cdat[i] += p
		}
	case ftAverage:
		// The first pixel has no left neighbour.
		for i := 0; i < bpp && i < len(cdat); i++ {
			cdat[i] += pdat[i] / 2
		}
		for i := bpp; i < len(cdat); i++ {
			cdat[i] += uint8((int(cdat[i-bpp]) + int(pdat[i])) / 2)
		}
	case ftPaeth:
		for i := 0; i < bpp && i < len(cdat); i++ {
			cdat[i] += paeth(0, pdat[i], 0)
		}
		for i := bpp; i < len(cdat); i++ {
			cdat[i] += paeth(cdat[i-bpp], pdat[i], pdat[i-bpp])
		}
	default:
		return false
	}
	return true
}

// reconstructRows undoes the filters of height scanlines of width pixels
// starting at data[0]. It returns the unfiltered rows packed back to back
// and the number of input bytes consumed. Scanline numbers in errors are
// offset by first.
func reconstructRows(data []byte, hdr *Header, width, height, first int) ([]byte, int, error) {
	rowBytes := hdr.RowBytes(width)
	bpp := hdr.BytesPerPixel()

	need := height * (1 + rowBytes)
	if len(data) < need {
		return nil, 0, ErrTruncatedStream
	}

	out := make([]byte, height*rowBytes)
	pdat := make([]byte, rowBytes)

	off := 0
	for y := 0; y < height; y++ {
		ft := data[off]
		cdat := out[y*rowBytes : (y+1)*rowBytes]
		copy(cdat, data[off+1:off+1+rowBytes])
		off += 1 + rowBytes

		if !unfilter(ft, cdat, pdat, bpp) {
			return nil, 0, &UnsupportedFilterError{Type: ft, Scanline: first + y}
		}
		pdat = cdat
	}
	return out, off, nil
}
