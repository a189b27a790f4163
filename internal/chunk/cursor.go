package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// cursor walks a sector's payload one opcode at a time. Every read is
// bounds-checked against the end of the payload regardless of what the
// original C decoder did or didn't check, per the fuzz-robustness
// requirement that every pointer read into a sector stay inside it.
type cursor struct {
	buf []byte
	i   int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) done() bool {
	return c.i >= len(c.buf)
}

// peek returns the byte at offset i+off without consuming it, and whether
// that offset is in bounds.
func (c *cursor) peek(off int) (byte, bool) {
	j := c.i + off
	if j < 0 || j >= len(c.buf) {
		return 0, false
	}
	return c.buf[j], true
}

func (c *cursor) u8() (byte, error) {
	if c.i >= len(c.buf) {
		return 0, fmt.Errorf("%w: opcode at end of sector", fmperrors.ErrDataExceedsSectorSize)
	}
	b := c.buf[c.i]
	c.i++
	return b, nil
}

func (c *cursor) u16() (uint16, error) {
	if c.i+2 > len(c.buf) {
		return 0, fmt.Errorf("%w: 2-byte field at end of sector", fmperrors.ErrDataExceedsSectorSize)
	}
	v := binary.BigEndian.Uint16(c.buf[c.i:])
	c.i += 2
	return v, nil
}

// slice consumes and returns the next n bytes.
func (c *cursor) slice(n int) ([]byte, error) {
	if n < 0 || c.i+n > len(c.buf) {
		return nil, fmt.Errorf("%w: %d-byte field at end of sector", fmperrors.ErrDataExceedsSectorSize, n)
	}
	s := c.buf[c.i : c.i+n]
	c.i += n
	return s, nil
}

func (c *cursor) skip(n int) error {
	if n < 0 || c.i+n > len(c.buf) {
		return fmt.Errorf("%w: skip of %d bytes past end of sector", fmperrors.ErrDataExceedsSectorSize, n)
	}
	c.i += n
	return nil
}
