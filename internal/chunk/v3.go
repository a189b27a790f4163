package chunk

import (
	"fmt"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// decodeV3 implements the legacy (v3-v6) opcode table, ported from
// process_block_v3. Unlike v7, most of the opcode space here is carved up
// by ranges of the opcode byte itself (c<0x40, c<0x80, c<0xC0, ...) rather
// than explicit codes, with 0xFF acting as an escape into a small extended
// table. Every read is bounds-checked, so a chunk that would run past the
// end of the payload fails with ErrDataExceedsSectorSize; the final check
// that the cursor landed exactly on the end (ErrBadSector) is kept from the
// original as a guard.
func decodeV3(payload []byte) ([]*Chunk, error) {
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
			ch.Type = TypeFieldRefSimple
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code == 0x01 && peekIs(c, 0, 0xFF) && peekIs(c, 1, 0x05):
			// A fixed 8-byte filler chunk (opcode + 7 more), discarded.
			if err := c.skip(7); err != nil {
				return chunks, err
			}
			continue

		case code < 0x40:
			ch.Type = TypeFieldRefLong
			var err error
			if ch.RefLong, err = c.slice(int(code)); err != nil {
				return chunks, err
			}
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code < 0x80:
			ch.Type = TypeFieldRefSimple
			ch.RefSimple = uint16(code - 0x40)
			n, err := c.u8()
			if err != nil {
				return chunks, err
			}
			if ch.Data, err = c.slice(int(n)); err != nil {
				return chunks, err
			}

		case code < 0xC0:
			ch.Type = TypeDataSimple
			if ch.Data, err = c.slice(int(code - 0x80)); err != nil {
				return chunks, err
			}

		case code == 0xC0:
			ch.Type = TypePathPop

		case code < 0xFF:
			ch.Type = TypePathPush
			if ch.Data, err = c.slice(int(code - 0xC0)); err != nil {
				return chunks, err
			}

		default: // code == 0xFF: escape into the extended opcode table
			ext, err := c.u8()
			if err != nil {
				return chunks, err
			}
			ch.Extended = true
			switch {
			case ext == 0x00:
				return chunks, fmt.Errorf("%w: bad 0xFF chunk: 00", fmperrors.ErrUnrecognizedCode)

			case ext <= 0x04:
				ch.Type = TypeFieldRefLong
				var err error
				if ch.RefLong, err = c.slice(int(ext)); err != nil {
					return chunks, err
				}
				n, err := c.u16()
				if err != nil {
					return chunks, err
				}
				if ch.Data, err = c.slice(int(n)); err != nil {
					return chunks, err
				}

			case ext >= 0x40 && ext <= 0x80:
				ch.Type = TypeFieldRefSimple
				ch.RefSimple = uint16(ext - 0x40)
				n, err := c.u16()
				if err != nil {
					return chunks, err
				}
				if ch.Data, err = c.slice(int(n)); err != nil {
					return chunks, err
				}

			default:
				return chunks, fmt.Errorf("%w: bad 0xFF chunk: 0x%02x", fmperrors.ErrUnrecognizedCode, ext)
			}
		}

		chunks = append(chunks, ch)
	}

	if c.i != len(payload) {
		return chunks, fmt.Errorf("%w: sector did not decode to an exact boundary", fmperrors.ErrBadSector)
	}
	return chunks, nil
}
