package sector

import (
	"encoding/binary"
	"fmt"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// Sector is one raw, fixed-size block of the file: a small header (deleted
// flag, tree level, and prev/next links into the sector chain) plus a
// payload that the chunk decoder interprets.
type Sector struct {
	Deleted    byte
	Level      byte
	PrevID     uint32
	NextID     uint32
	Payload    []byte
	PayloadLen int

	// ThisID is the 1-based sector number assigned during traversal
	// (file order, not necessarily link order); zero until visited.
	ThisID int
}

// FromBytes materializes a Sector from one raw sector's worth of bytes,
// per the variant's header layout described by h. raw must be exactly
// h.SectorSize bytes.
func FromBytes(h *Header, raw []byte) (*Sector, error) {
	if len(raw) != h.SectorSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", fmperrors.ErrRead, h.SectorSize, len(raw))
	}

	payloadLen := h.SectorSize - h.HeaderLen
	if h.PayloadLenOffset >= 0 {
		payloadLen = int(binary.BigEndian.Uint16(raw[h.PayloadLenOffset:]))
	}
	if payloadLen > h.SectorSize-h.HeaderLen {
		return nil, fmperrors.ErrBadSector
	}

	s := &Sector{
		Deleted:    raw[0],
		Level:      raw[1],
		PrevID:     binary.BigEndian.Uint32(raw[h.PrevOffset : h.PrevOffset+4]),
		NextID:     binary.BigEndian.Uint32(raw[h.NextOffset : h.NextOffset+4]),
		PayloadLen: payloadLen,
		Payload:    append([]byte(nil), raw[h.HeaderLen:h.HeaderLen+payloadLen]...),
	}
	return s, nil
}
