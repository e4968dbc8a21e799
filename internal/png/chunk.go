package png

import "hash/crc32"

// ChunkType is the 4-byte ASCII tag of a chunk.
type ChunkType [4]byte

func (t ChunkType) String() string {
	return string(t[:])
}

// Bit 5 of each type byte is the lowercase bit.
const caseBit = 0x20

// Critical reports whether a decoder must understand the chunk to render the image.
func (t ChunkType) Critical() bool { return t[0]&caseBit == 0 }

// Public reports whether the chunk is part of the PNG specification.
func (t ChunkType) Public() bool { return t[1]&caseBit == 0 }

// Conforming reports whether the reserved bit is set as the current PNG version requires.
func (t ChunkType) Conforming() bool { return t[2]&caseBit == 0 }

// SafeToCopy reports whether editors may copy the chunk without understanding it.
func (t ChunkType) SafeToCopy() bool { return t[3]&caseBit != 0 }

// Kind identifies the chunks the decoder interprets.
type Kind int

const (
	KindOther Kind = iota
	KindIHDR
	KindPLTE
	KindIDAT
	KindIEND
)

func (k Kind) String() string {
	switch k {
	case KindIHDR:
		return "IHDR"
	case KindPLTE:
		return "PLTE"
	case KindIDAT:
		return "IDAT"
	case KindIEND:
		return "IEND"
	default:
		return "other"
	}
}

func (t ChunkType) Kind() Kind {
	switch string(t[:]) {
	case "IHDR":
		return KindIHDR
	case "PLTE":
		return KindPLTE
	case "IDAT":
		return KindIDAT
	case "IEND":
		return KindIEND
	}
	return KindOther
}

func validChunkType(t ChunkType) bool {
	for _, b := range t {
		if !(b >= 'A' && b <= 'Z') && !(b >= 'a' && b <= 'z') {
			return false
		}
	}
	return true
}

// Chunk is a single length-prefixed, typed and CRC-suffixed record.
// Data aliases the buffer the chunk was read from.
type Chunk struct {
	Length uint32
	Type   ChunkType
	Data   []byte
	CRC    uint32

	// Offset of the length field within the input buffer.
	Offset int
}

// Cursor returns a fresh cursor over the chunk's payload.
func (c *Chunk) Cursor() *Cursor {
	return NewCursor(c.Data)
}

// ChecksumOK reports whether the stored CRC matches the one computed over
// the chunk type and data.
func (c *Chunk) ChecksumOK() bool {
	sum := crc32.Update(0, crc32.IEEETable, c.Type[:])
	return crc32.Update(sum, crc32.IEEETable, c.Data) == c.CRC
}
