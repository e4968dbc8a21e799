package png

import (
	"hash"
	"hash/crc32"
	"strconv"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

// Size of the length, type and CRC fields framing every chunk.
const (
	chunkHeaderSize = 8
	chunkCRCSize    = 4
)

// ChunkReader walks the chunks of an in-memory PNG stream.
type ChunkReader struct {
	c         *Cursor
	crc       hash.Hash32
	verifyCRC bool
}

func NewChunkReader(buf []byte, verifyCRC bool) *ChunkReader {
	return &ChunkReader{
		c:         NewCursor(buf),
		crc:       crc32.NewIEEE(),
		verifyCRC: verifyCRC,
	}
}

// ReadSignature consumes the 8-byte PNG signature.
func (r *ChunkReader) ReadSignature() error {
	sig, err := r.c.Read(len(pngHeader))
	if err != nil {
		return FormatError("not a PNG file")
	}
	if string(sig) != pngHeader {
		return FormatError("not a PNG file")
	}
	return nil
}

// More reports whether unread bytes remain.
func (r *ChunkReader) More() bool {
	return r.c.Len() > 0
}

func (r *ChunkReader) ReadChunk() (Chunk, error) {
	offset := r.c.Offset()
	if r.c.Len() < chunkHeaderSize {
		return Chunk{}, ErrTruncatedStream
	}

	length, _ := r.c.Uint32()
	tag, _ := r.c.Read(4)

	var typ ChunkType
	copy(typ[:], tag)
	if !validChunkType(typ) {
		return Chunk{}, FormatError("bad chunk type " + strconv.Quote(string(tag)))
	}

	// The CRC must still fit after the data.
	available := r.c.Len()
	if uint64(length)+chunkCRCSize > uint64(available) {
		return Chunk{}, &BufferOverflowError{Requested: length, Available: available}
	}

	data, _ := r.c.Read(int(length))
	crc, _ := r.c.Uint32()

	if r.verifyCRC {
		r.crc.Reset()
		r.crc.Write(typ[:])
		r.crc.Write(data)
		if sum := r.crc.Sum32(); sum != crc {
			return Chunk{}, &ChecksumError{Type: typ, Expected: crc, Actual: sum}
		}
	}

	return Chunk{
		Length: length,
		Type:   typ,
		Data:   data,
		CRC:    crc,
		Offset: offset,
	}, nil
}
