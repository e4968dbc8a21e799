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
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat     = errors.New("png: invalid format")
	ErrBufferOverflow    = errors.New("png: buffer overflow")
	ErrTruncatedStream   = errors.New("png: truncated stream")
	ErrMissingPalette    = errors.New("png: indexed-color image requires a PLTE chunk")
	ErrUnexpectedPalette = errors.New("png: grayscale image forbids a PLTE chunk")
	ErrDecompression     = errors.New("png: decompression failed")
	ErrUnsupportedFilter = errors.New("png: unsupported filter type")
	ErrOutOfBounds       = errors.New("png: read out of bounds")
	ErrUnsupported       = errors.New("png: unsupported feature")
	ErrStage             = errors.New("png: operation out of order")
)

// FormatError reports a structural problem with the input, with a reason.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

func (e FormatError) Is(target error) bool { return target == ErrInvalidFormat }

// UnsupportedError reports a valid but unhandled PNG feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "png: unsupported feature: " + string(e) }

func (e UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// BufferOverflowError is returned when a chunk claims more bytes than the
// buffer still holds.
type BufferOverflowError struct {
	Requested uint32
	Available int
}

func (e *BufferOverflowError) Error() string {
	return fmt.Sprintf("png: buffer overflow: length of chunk is %d but only %d bytes remain in buffer",
		e.Requested, e.Available)
}

func (e *BufferOverflowError) Is(target error) bool { return target == ErrBufferOverflow }

type ChecksumError struct {
	Type     ChunkType
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("png: invalid checksum for %s chunk: stored %08x, computed %08x",
		e.Type, e.Expected, e.Actual)
}

func (e *ChecksumError) Is(target error) bool { return target == ErrInvalidFormat }

type UnsupportedFilterError struct {
	Type     byte
	Scanline int
}

func (e *UnsupportedFilterError) Error() string {
	return fmt.Sprintf("png: unsupported filter type %d at scanline %d", e.Type, e.Scanline)
}

func (e *UnsupportedFilterError) Is(target error) bool { return target == ErrUnsupportedFilter }

// DecompressionError wraps the failure reported by the Inflater.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("png: decompression failed: %v", e.Err)
}

func (e *DecompressionError) Is(target error) bool { return target == ErrDecompression }

func (e *DecompressionError) Unwrap() error { return e.Err }
