// Package sector implements the file-level framing underneath the chunk
// decoder: the 1024-byte file header, variant detection, and the
// doubly-linked list of fixed-size sectors that make up the rest of the
// file.
package sector

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bgrewell/fmpkit/pkg/consts"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// Header describes the variant-specific layout decoded from the file's
// first 1024 bytes, plus the cosmetic release version/date FileMaker
// stamps there.
type Header struct {
	IsV7       bool
	Version    int // 3 for legacy, 7 or 12 for modern
	SectorSize int
	HeaderLen  int
	PrevOffset int
	NextOffset int
	// PayloadLenOffset is -1 on v7, where payload length is implicit
	// (SectorSize - HeaderLen); v3 stores it explicitly at this offset.
	PayloadLenOffset int
	XORMask          byte

	ReleaseVersion string    // Pascal-string product version, e.g. "12.0"
	ReleaseDate    time.Time // zero Time if the DDMMMYY string didn't parse
	ReleaseDateRaw string
}

// ParseHeader validates the magic number and decodes the variant-specific
// layout out of buf, which must be exactly consts.HeaderSize bytes (the
// first sector of the file).
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < consts.HeaderSize {
		return nil, fmt.Errorf("%w: header shorter than %d bytes", fmperrors.ErrRead, consts.HeaderSize)
	}
	if !bytes.Equal(buf[:len(consts.Magic)], consts.Magic[:]) {
		return nil, fmperrors.ErrBadMagicNumber
	}

	h := &Header{}
	if bytes.Equal(buf[15:15+len(consts.HBAM7Signature)], []byte(consts.HBAM7Signature)) {
		h.IsV7 = true
		h.SectorSize = consts.V7SectorSize
		h.XORMask = consts.V7XORMask
		h.PrevOffset = consts.V7PrevIDOffset
		h.NextOffset = consts.V7NextIDOffset
		h.PayloadLenOffset = -1
		h.HeaderLen = consts.V7HeaderLen
		if buf[consts.V12VersionByteOffset] == consts.V12VersionByte {
			h.Version = 12
		} else {
			h.Version = 7
		}
	} else {
		h.Version = 3
		h.SectorSize = consts.V3SectorSize
		h.PrevOffset = consts.V3PrevIDOffset
		h.NextOffset = consts.V3NextIDOffset
		h.PayloadLenOffset = consts.V3PayloadLenOffset
		h.HeaderLen = consts.V3HeaderLen
	}

	h.ReleaseDateRaw = string(bytes.TrimRight(buf[consts.ReleaseDateOffset:consts.ReleaseDateOffset+consts.ReleaseDateLen], "\x00"))
	if t, err := time.Parse("02Jan06", h.ReleaseDateRaw); err == nil {
		h.ReleaseDate = t
	}
	h.ReleaseVersion = pascalString(buf[consts.ReleaseVersionOffset:])

	return h, nil
}

// pascalString reads a length-prefixed string: one length byte followed by
// that many bytes. Truncated if it would run past buf.
func pascalString(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	n := int(buf[0])
	if n > len(buf)-1 {
		n = len(buf) - 1
	}
	return string(buf[1 : 1+n])
}

// ThrowawaySectors is the number of whole sectors to skip after the header
// before the first real sector: one for v7 (the header sector doubles as
// sector 0), two for v3 (legacy files carry an extra reserved sector).
func (h *Header) ThrowawaySectors() int {
	if h.IsV7 {
		return 1
	}
	return 2
}
