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
	"fmt"
	"io"
	"iter"
	"log/slog"
)

type options struct {
	verifyCRC  bool
	maxPayload int
	maxPixels  uint64
	logger     *slog.Logger
	inflater   Inflater
}

type Option func(*options)

// WithCRCCheck toggles verification of chunk checksums. Enabled by default.
func WithCRCCheck(verify bool) Option {
	return func(o *options) { o.verifyCRC = verify }
}

// WithMaxPayload bounds the total size of the IDAT data. Zero means no limit.
func WithMaxPayload(n int) Option {
	return func(o *options) { o.maxPayload = n }
}

// WithMaxPixels rejects images whose width times height exceeds n. Zero
// means no limit.
func WithMaxPixels(n uint64) Option {
	return func(o *options) { o.maxPixels = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInflater replaces the zlib decompressor used by DecodeImage.
func WithInflater(inf Inflater) Option {
	return func(o *options) { o.inflater = inf }
}

func buildOptions(opts []Option) options {
	o := options{
		verifyCRC: true,
		inflater:  ZlibInflater{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

type decoder struct {
	r      *ChunkReader
	img    *Image
	opts   options
	logger *slog.Logger
}

// Decode parses the chunk stream in buf. The returned Image holds the
// header, the palette and the still compressed payload.
func Decode(buf []byte, opts ...Option) (*Image, error) {
	o := buildOptions(opts)

	d := &decoder{
		r:      NewChunkReader(buf, o.verifyCRC),
		opts:   o,
		logger: o.logger,
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.img, nil
}

// DecodeImage runs Decode, InflatePayload and Reconstruct in sequence.
func DecodeImage(buf []byte, opts ...Option) (*Image, error) {
	img, err := Decode(buf, opts...)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	if err := InflatePayload(img, o.inflater); err != nil {
		return nil, err
	}
	if err := Reconstruct(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (d *decoder) decode() error {
	if err := d.r.ReadSignature(); err != nil {
		return err
	}

	first, err := d.r.ReadChunk()
	if err != nil {
		return err
	}
	if first.Type.Kind() != KindIHDR {
		return FormatError(fmt.Sprintf("first chunk is %s, expected IHDR", first.Type))
	}

	done, err := d.parseChunk(&first)
	for !done && err == nil {
		if !d.r.More() {
			return ErrTruncatedStream
		}

		var chunk Chunk
		chunk, err = d.r.ReadChunk()
		if err != nil {
			return err
		}
		done, err = d.parseChunk(&chunk)
	}
	return err
}

// parseChunk applies chunk to the image being built and reports
// whether the end of the stream was reached.
func (d *decoder) parseChunk(chunk *Chunk) (bool, error) {
	d.logger.Debug("chunk",
		"type", chunk.Type.String(),
		"offset", chunk.Offset,
		"length", chunk.Length,
		"critical", chunk.Type.Critical(),
	)

	switch chunk.Type.Kind() {
	case KindIHDR:
		if d.img != nil {
			return false, FormatError("duplicate IHDR chunk")
		}
		hdr, err := parseHeader(chunk)
		if err != nil {
			return false, err
		}
		if n := uint64(hdr.Width) * uint64(hdr.Height); d.opts.maxPixels > 0 && n > d.opts.maxPixels {
			return false, UnsupportedError(fmt.Sprintf("image has %d pixels, limit is %d", n, d.opts.maxPixels))
		}
		d.img = &Image{Header: hdr, Stage: StageParsed}

		d.logger.Info("header",
			"width", hdr.Width,
			"height", hdr.Height,
			"depth", hdr.BitDepth,
			"colorType", hdr.ColorType.String(),
			"interlace", hdr.InterlaceMethod,
			"bpp", hdr.BytesPerPixel(),
		)
	case KindPLTE:
		if d.img.Palette != nil {
			return false, FormatError("duplicate PLTE chunk")
		}
		if err := validatePalette(chunk.Data); err != nil {
			return false, err
		}
		d.img.Palette = chunk.Data
	case KindIDAT:
		if err := d.img.checkPalette(); err != nil {
			return false, err
		}
		if err := d.appendPayload(chunk.Data); err != nil {
			return false, err
		}
	case KindIEND:
		d.logger.Debug("end of stream", "payload", len(d.img.Payload))
		return true, nil
	case KindOther:
		if chunk.Type.Critical() {
			d.logger.Warn("skipping unknown critical chunk", "type", chunk.Type.String())
		}
	}
	return false, nil
}

func (d *decoder) appendPayload(data []byte) error {
	payload := d.img.Payload
	if d.opts.maxPayload > 0 && len(payload)+len(data) > d.opts.maxPayload {
		return UnsupportedError(fmt.Sprintf("IDAT data exceeds %d bytes", d.opts.maxPayload))
	}

	if payload == nil {
		// The remaining input bounds the total IDAT size, so a single
		// allocation holds every chunk.
		capacity := len(data) + d.r.c.Len()
		if d.opts.maxPayload > 0 {
			capacity = min(capacity, d.opts.maxPayload)
		}
		payload = make([]byte, 0, capacity)
	}
	d.img.Payload = append(payload, data...)
	return nil
}

func validatePalette(data []byte) error {
	if len(data) == 0 || len(data)%3 != 0 || len(data)/3 > 256 {
		return FormatError(fmt.Sprintf("bad PLTE length %d", len(data)))
	}
	return nil
}

// Chunks iterates over the chunks of buf without interpreting them.
// Iteration stops after IEND or on the first error.
func Chunks(buf []byte, opts ...Option) iter.Seq2[Chunk, error] {
	o := buildOptions(opts)

	return func(yield func(Chunk, error) bool) {
		r := NewChunkReader(buf, o.verifyCRC)
		if err := r.ReadSignature(); err != nil {
			yield(Chunk{}, err)
			return
		}

		for {
			if !r.More() {
				yield(Chunk{}, ErrTruncatedStream)
				return
			}
			chunk, err := r.ReadChunk()
			if err != nil {
				yield(Chunk{}, err)
				return
			}
			if !yield(chunk, nil) || chunk.Type.Kind() == KindIEND {
				return
			}
		}
	}
}
