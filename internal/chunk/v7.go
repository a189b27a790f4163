package chunk

import (
	"fmt"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// decodeV7 implements the modern (v7-v12) opcode table, ported from
// process_block_v7. The opcode space is mostly length-prefixed
// DATA_SIMPLE/FIELD_REF records of fixed or encoded size; PATH_PUSH/POP
// live at 0x20-0x40 (plus 0xE0, a second PATH_PUSH), and 0x80 is a one-byte
// no-op the original silently discards.
func decodeV7(payload []byte) ([]*Chunk, error) {
	c := newCursor(payload)
	var chunks []*Chunk

	for !c.done() {
		code, err := c.u8()
		if err != nil {
			return chunks, err
		}
		ch := &Chunk{Code: code}

		switch {
		case code == 0x00:
			if c.done() {
				return chunks, fmt.Errorf("%w: truncated 0x00 opcode", fmperrors.ErrDataExceedsSectorSize)
			}
			if b, _ := c.peek(0); b == 0x00 {
				// end-of-sector marker; stop without error.
				return chunks, nil
			}
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(int(code) + 1); err != nil {
				return chunks, err
			}

		case code <= 0x05:
			ch.Type = TypeFieldRefSimple
			ref, err := c.u8()
			if err != nil {
				return chunks, err
			}
			ch.RefSimple = uint16(ref)
			n := 1
			if code != 0x01 {
				n = 2*int(code) - 2
			}
			if ch.Data, err = c.slice(n); err != nil {
				return chunks, err
			}

		case code == 0x06:
			ch.Type = TypeFieldRefSimple
			ref, err := c.u8()
			if err != nil {
				return chunks, err
			}
			ch.RefSimple = uint16(ref)
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x07:
			ch.Type = TypeDataSegment
			seg, err := c.u8()
			if err != nil {
				return chunks, err
			}
			ch.SegmentIndex = uint16(seg)
			n, err := c.u16()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x08:
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(2); err != nil {
				return chunks, err
			}

		case code == 0x09:
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(3); err != nil {
				return chunks, err
			}

		case code <= 0x0B || (code == 0x0E && peekIs(c, 0, 0xFF)):
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(6); err != nil {
				return chunks, err
			}

		case code <= 0x0D:
			ch.Type = TypeFieldRefSimple
			ref, err := c.u16()
			if err != nil {
				return chunks, err
			}
			ch.RefSimple = ref
			if ch.Data, err = c.slice(8); err != nil {
				return chunks, err
			}

		case code == 0x0E:
			ch.Type = TypeFieldRefSimple
			ref, err := c.u16()
			if err != nil {
				return chunks, err
			}
			ch.RefSimple = ref
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x0F && peekHasHighBit(c, 0):
			ch.Type = TypeDataSegment
			if err := c.skip(1); err != nil {
				return chunks, err
			}
			seg, err := c.u8()
			if err != nil {
				return chunks, err
			}
			ch.SegmentIndex = uint16(seg)
			n, err := c.u16()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x10:
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(3); err != nil {
				return chunks, err
			}

		case code > 0x10 && code <= 0x15:
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(2*(int(code)-0x10) + 1); err != nil {
				return chunks, err
			}

		case code == 0x16:
			ch.Type = TypeFieldRefLong
			refLong, err := c.slice(3)
			if err != nil {
				return chunks, err
			}
			ch.RefLong = refLong
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x19:
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(9); err != nil {
				return chunks, err
			}

		case code > 0x19 && code <= 0x1D:
			ch.Type = TypeDataSimple
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}
			if err := c.skip(2 * (int(code) - 0x19)); err != nil {
				return chunks, err
			}

		case code == 0x1E:
			ch.Type = TypeFieldRefLong
			refLen, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.RefLong, err = c.slice(int(refLen)); err != nil {
				return chunks, err
			}
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x1F:
			ch.Type = TypeFieldRefLong
			refLen, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.RefLong, err = c.slice(int(refLen)); err != nil {
				return chunks, err
			}
			n, err := c.u16()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x20 || code == 0xE0:
			ch.Type = TypePathPush
			n := 1
			if peekIs(c, 0, 0xFE) {
				if err := c.skip(1); err != nil {
					return chunks, err
				}
				n = 8
			}
			if ch.Data, err = c.slice(n); err != nil {
				return chunks, err
			}

		case code == 0x28:
			ch.Type = TypePathPush
			if ch.Data, err = c.slice(2); err != nil {
				return chunks, err
			}

		case code == 0x30:
			ch.Type = TypePathPush
			if ch.Data, err = c.slice(3); err != nil {
				return chunks, err
			}

		case code == 0x38:
			ch.Type = TypePathPush
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x40:
			ch.Type = TypePathPop

		case code == 0x80:
			continue // discarded, no chunk emitted

		default:
			return chunks, fmt.Errorf("%w: 0x%02x", fmperrors.ErrUnrecognizedCode, code)
		}

		chunks = append(chunks, ch)
	}
	return chunks, nil
}

func peekIs(c *cursor, off int, want byte) bool {
	b, ok := c.peek(off)
	return ok && b == want
}

func peekHasHighBit(c *cursor, off int) bool {
	b, ok := c.peek(off)
	return ok && b&0x80 != 0
}
