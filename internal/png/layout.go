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

import "fmt"

// Reconstruct undoes the scanline filters of an inflated image and lays
// its pixels out into img.Pixels, deinterlacing Adam7 images.
func Reconstruct(img *Image) error {
	if img.Stage != StageInflated {
		return fmt.Errorf("%w: cannot reconstruct a %s image", ErrStage, img.Stage)
	}
	// The grid is sized from the header, so the data must back it first.
	if len(img.Payload) < img.FilteredSize() {
		return ErrTruncatedStream
	}

	var (
		grid *Grid
		err  error
	)
	if img.Interlaced() {
		grid, err = reconstructAdam7(img)
	} else {
		grid, err = reconstructBaseline(img)
	}
	if err != nil {
		return err
	}

	img.Pixels = grid
	img.Stage = StageReconstructed
	return nil
}

func reconstructBaseline(img *Image) (*Grid, error) {
	w, h := int(img.Width), int(img.Height)

	rows, _, err := reconstructRows(img.Payload, &img.Header, w, h, 0)
	if err != nil {
		return nil, err
	}

	grid := newGrid(&img.Header, img.Palette)
	rowBytes := img.RowBytes(w)
	for y := 0; y < h; y++ {
		grid.setRow(y, rows[y*rowBytes:(y+1)*rowBytes])
	}
	return grid, nil
}

func reconstructAdam7(img *Image) (*Grid, error) {
	w, h := int(img.Width), int(img.Height)
	grid := newGrid(&img.Header, img.Palette)

	data := img.Payload
	scanline := 0
	for pass := 0; pass < Passes; pass++ {
		pw, ph := PassSize(pass, w, h)
		if pw == 0 || ph == 0 {
			continue
		}

		rows, n, err := reconstructRows(data, &img.Header, pw, ph, scanline)
		if err != nil {
			return nil, err
		}
		grid.scatterPass(pass, rows, img.RowBytes(pw), pw, ph)

		data = data[n:]
		scanline += ph
	}
	return grid, nil
}
