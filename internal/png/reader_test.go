package png_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ostafen/pngdec/internal/png"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	c := png.NewCursor([]byte{0x00, 0x00, 0x01, 0x02, 0xAA, 0xBB})

	v, err := c.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x0102), v)
	require.Equal(t, 4, c.Offset())
	require.Equal(t, 2, c.Len())

	b, err := c.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), b)

	_, err = c.Read(2)
	require.ErrorIs(t, err, png.ErrOutOfBounds)
	require.Equal(t, 5, c.Offset(), "failed reads must not advance")

	rest, err := c.Read(1)
	require.NoError(t, err)
	require.Equal(t, []byte{0xBB}, rest)

	_, err = c.ReadByte()
	require.ErrorIs(t, err, png.ErrOutOfBounds)
}

func TestReadSignature(t *testing.T) {
	buf := makePNG(ihdrChunk(1, 1, 8, 0, 0), iendChunk())
	require.NoError(t, png.NewChunkReader(buf, true).ReadSignature())

	for i := 0; i < len(signature); i++ {
		bad := append([]byte(nil), buf...)
		bad[i] ^= 0xFF

		err := png.NewChunkReader(bad, true).ReadSignature()
		require.ErrorIs(t, err, png.ErrInvalidFormat, "byte %d", i)
	}

	err := png.NewChunkReader([]byte(signature[:5]), true).ReadSignature()
	require.ErrorIs(t, err, png.ErrInvalidFormat)
}

func TestReadChunk(t *testing.T) {
	buf := makePNG(makeChunk("tEXt", []byte("Comment\x00hello")), iendChunk())

	r := png.NewChunkReader(buf, true)
	require.NoError(t, r.ReadSignature())

	chunk, err := r.ReadChunk()
	require.NoError(t, err)
	require.Equal(t, "tEXt", chunk.Type.String())
	require.Equal(t, uint32(13), chunk.Length)
	require.Equal(t, []byte("Comment\x00hello"), chunk.Data)
	require.Equal(t, 8, chunk.Offset)
	require.True(t, chunk.ChecksumOK())
	require.Equal(t, png.KindOther, chunk.Type.Kind())

	chunk, err = r.ReadChunk()
	require.NoError(t, err)
	require.Equal(t, png.KindIEND, chunk.Type.Kind())
	require.False(t, r.More())

	_, err = r.ReadChunk()
	require.ErrorIs(t, err, png.ErrTruncatedStream)
}

func TestChunkTypeFlags(t *testing.T) {
	cases := []struct {
		typ                                     string
		critical, public, conforming, safeCopy bool
	}{
		{"IHDR", true, true, true, false},
		{"tEXt", false, true, true, true},
		{"prVt", false, false, true, true},
		{"ABcD", true, true, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			var typ png.ChunkType
			copy(typ[:], tc.typ)

			require.Equal(t, tc.critical, typ.Critical())
			require.Equal(t, tc.public, typ.Public())
			require.Equal(t, tc.conforming, typ.Conforming())
			require.Equal(t, tc.safeCopy, typ.SafeToCopy())
		})
	}
}

func TestReadChunkBufferOverflow(t *testing.T) {
	// Declares 100 bytes but only 20 follow the type.
	chunk := binary.BigEndian.AppendUint32(nil, 100)
	chunk = append(chunk, "IDAT"...)
	chunk = append(chunk, make([]byte, 20)...)

	r := png.NewChunkReader(makePNG(chunk), true)
	require.NoError(t, r.ReadSignature())

	_, err := r.ReadChunk()
	require.ErrorIs(t, err, png.ErrBufferOverflow)

	var overflow *png.BufferOverflowError
	require.True(t, errors.As(err, &overflow))
	require.Equal(t, uint32(100), overflow.Requested)
	require.Equal(t, 20, overflow.Available)
}

func TestReadChunkBadType(t *testing.T) {
	chunk := makeChunk("ID\xffT", []byte{1, 2, 3})

	r := png.NewChunkReader(makePNG(chunk), true)
	require.NoError(t, r.ReadSignature())

	_, err := r.ReadChunk()
	require.ErrorIs(t, err, png.ErrInvalidFormat)
}

func TestReadChunkChecksum(t *testing.T) {
	chunk := makeChunk("IDAT", []byte{1, 2, 3})
	chunk[len(chunk)-1] ^= 0x01

	t.Run("verified", func(t *testing.T) {
		r := png.NewChunkReader(makePNG(chunk), true)
		require.NoError(t, r.ReadSignature())

		_, err := r.ReadChunk()
		require.ErrorIs(t, err, png.ErrInvalidFormat)

		var crcErr *png.ChecksumError
		require.True(t, errors.As(err, &crcErr))
		require.Equal(t, "IDAT", crcErr.Type.String())
	})

	t.Run("ignored", func(t *testing.T) {
		r := png.NewChunkReader(makePNG(chunk), false)
		require.NoError(t, r.ReadSignature())

		c, err := r.ReadChunk()
		require.NoError(t, err)
		require.False(t, c.ChecksumOK())
	})
}
