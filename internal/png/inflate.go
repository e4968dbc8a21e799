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
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

// Inflater decompresses a complete zlib stream.
type Inflater interface {
	Inflate(src []byte) ([]byte, error)
}

// InflaterFunc adapts a function to the Inflater interface.
type InflaterFunc func(src []byte) ([]byte, error)

func (f InflaterFunc) Inflate(src []byte) ([]byte, error) {
	return f(src)
}

// ZlibInflater is the default Inflater. SizeHint, when positive,
// pre-sizes the output buffer.
type ZlibInflater struct {
	SizeHint int
}

func (z ZlibInflater) Inflate(src []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var out bytes.Buffer
	if z.SizeHint > 0 {
		out.Grow(z.SizeHint)
	}
	if _, err := io.Copy(&out, zr); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// maxDeflateRatio is the largest expansion a deflate stream can achieve.
const maxDeflateRatio = 1032

// sizeHint bounds the expected inflated size by what the compressed payload
// can actually expand to, so a forged header cannot force a huge allocation.
func sizeHint(img *Image) int {
	limit := len(img.Payload)
	if limit <= math.MaxInt/maxDeflateRatio {
		limit *= maxDeflateRatio
	} else {
		limit = math.MaxInt
	}
	return min(img.FilteredSize(), limit)
}

// InflatePayload replaces the compressed payload of img with the
// filtered scanlines produced by inf.
func InflatePayload(img *Image, inf Inflater) error {
	if img.Stage != StageParsed {
		return fmt.Errorf("%w: cannot inflate a %s image", ErrStage, img.Stage)
	}
	if inf == nil {
		inf = ZlibInflater{SizeHint: sizeHint(img)}
	} else if z, ok := inf.(ZlibInflater); ok && z.SizeHint == 0 {
		inf = ZlibInflater{SizeHint: sizeHint(img)}
	}

	raw, err := inf.Inflate(img.Payload)
	if err != nil {
		return &DecompressionError{Err: err}
	}

	img.Payload = raw
	img.Stage = StageInflated
	return nil
}
