package png_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

const signature = "\x89PNG\r\n\x1a\n"

func makeChunk(typ string, data []byte) []byte {
	buf := make([]byte, 0, 12+len(data))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, typ...)
	buf = append(buf, data...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(buf, crc.Sum32())
}

func makePNG(chunks ...[]byte) []byte {
	buf := []byte(signature)
	for _, c := range chunks {
		buf = append(buf, c...)
	}
	return buf
}

func ihdrData(width, height uint32, depth, colorType, interlace byte) []byte {
	buf := make([]byte, 0, 13)
	buf = binary.BigEndian.AppendUint32(buf, width)
	buf = binary.BigEndian.AppendUint32(buf, height)
	return append(buf, depth, colorType, 0, 0, interlace)
}

func ihdrChunk(width, height uint32, depth, colorType, interlace byte) []byte {
	return makeChunk("IHDR", ihdrData(width, height, depth, colorType, interlace))
}

func iendChunk() []byte {
	return makeChunk("IEND", nil)
}

func compress(t *testing.T, raw []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// grayPNG builds a baseline 8-bit grayscale image, every row filtered with ft.
func grayPNG(t *testing.T, width, height int, pix []byte, ft byte) []byte {
	t.Helper()

	raw := filterRows(pix, width, height, 1, ft)
	return makePNG(
		ihdrChunk(uint32(width), uint32(height), 8, 0, 0),
		makeChunk("IDAT", compress(t, raw)),
		iendChunk(),
	)
}

// filterRows applies filter type ft to each of the height rows of
// rowBytes bytes in pix, resetting the previous row at the start.
func filterRows(pix []byte, rowBytes, height, bpp int, ft byte) []byte {
	out := make([]byte, 0, height*(rowBytes+1))
	prev := make([]byte, rowBytes)

	for y := 0; y < height; y++ {
		row := pix[y*rowBytes : (y+1)*rowBytes]
		out = append(out, ft)
		for i, v := range row {
			var left, upLeft byte
			if i >= bpp {
				left = row[i-bpp]
				upLeft = prev[i-bpp]
			}
			up := prev[i]
			switch ft {
			case 0:
				out = append(out, v)
			case 1:
				out = append(out, v-left)
			case 2:
				out = append(out, v-up)
			case 3:
				out = append(out, v-byte((int(left)+int(up))/2))
			case 4:
				out = append(out, v-predictPaeth(left, up, upLeft))
			}
		}
		prev = row
	}
	return out
}

func predictPaeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := p-int(a), p-int(b), p-int(c)
	if pa < 0 {
		pa = -pa
	}
	if pb < 0 {
		pb = -pb
	}
	if pc < 0 {
		pc = -pc
	}
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// packRow returns the scanline bytes of a row. Rows of sub-byte depth
// hold one sample per byte and are packed most significant bit first.
func packRow(row []byte, depth int) []byte {
	if depth >= 8 {
		return row
	}

	perByte := 8 / depth
	out := make([]byte, (len(row)+perByte-1)/perByte)
	for i, v := range row {
		out[i/perByte] |= v << (8 - depth*(i%perByte+1))
	}
	return out
}

// filterImage packs and filters the rows of a baseline image. pix holds
// pixBytes bytes per pixel, or one sample per pixel below 8 bits.
func filterImage(pix []byte, width, height, pixBytes, depth int, ft byte) []byte {
	var rows []byte
	for y := 0; y < height; y++ {
		rows = append(rows, packRow(pix[y*width*pixBytes:(y+1)*width*pixBytes], depth)...)
	}
	return filterRows(rows, len(rows)/height, height, pixBytes, ft)
}

// interlace splits an image laid out as in filterImage into Adam7 passes
// and filters every pass row with ft.
func interlace(pix []byte, width, height, pixBytes, depth int, ft byte) []byte {
	type pass struct{ x, y, dx, dy int }
	passes := []pass{
		{0, 0, 8, 8}, {4, 0, 8, 8}, {0, 4, 4, 8}, {2, 0, 4, 4},
		{0, 2, 2, 4}, {1, 0, 2, 2}, {0, 1, 1, 2},
	}

	var out []byte
	for _, p := range passes {
		var sub []byte
		pw, ph := 0, 0
		for y := p.y; y < height; y += p.dy {
			pw = 0
			for x := p.x; x < width; x += p.dx {
				i := (y*width + x) * pixBytes
				sub = append(sub, pix[i:i+pixBytes]...)
				pw++
			}
			ph++
		}
		if pw == 0 || ph == 0 {
			continue
		}
		out = append(out, filterImage(sub, pw, ph, pixBytes, depth, ft)...)
	}
	return out
}
