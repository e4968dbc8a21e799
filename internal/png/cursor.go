package png

import "encoding/binary"

// Cursor is a forward-only reader over an immutable byte slice.
// Slices returned by Read alias the underlying buffer.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Read returns the next n bytes and advances past them.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, ErrOutOfBounds
	}
	c.off += n
	return c.buf[c.off-n : c.off], nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if c.Len() < 1 {
		return 0, ErrOutOfBounds
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// Uint32 reads a big-endian 32-bit value.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.buf) - c.off
}
