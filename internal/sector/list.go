package sector

import (
	"fmt"
	"io"

	"github.com/bgrewell/fmpkit/pkg/consts"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// List is every sector of a file, in physical (on-disk) order, following
// the header and throwaway sector(s).
type List struct {
	Header  *Header
	Sectors []*Sector
}

// Load reads the header, skips the throwaway sector(s), and reads every
// remaining sector from r. fileSize is the total byte length of r's
// underlying source, used to cross-check the sector count the first
// sector's NextID implies.
func Load(r io.ReadSeeker, fileSize int64) (*List, error) {
	headerBuf := make([]byte, consts.HeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return nil, fmt.Errorf("%w: %v", fmperrors.ErrRead, err)
	}
	h, err := ParseHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	startOffset := int64(h.ThrowawaySectors()) * int64(h.SectorSize)
	if _, err := r.Seek(startOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", fmperrors.ErrSeek, err)
	}

	raw := make([]byte, h.SectorSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", fmperrors.ErrRead, err)
	}
	first, err := FromBytes(h, raw)
	if err != nil {
		return nil, err
	}

	numBlocks := int(first.NextID)
	expectedSize := int64(numBlocks+h.ThrowawaySectors()) * int64(h.SectorSize)
	if first.NextID == 0 || expectedSize != fileSize {
		return nil, fmperrors.ErrBadSectorCount
	}

	sectors := make([]*Sector, numBlocks)
	sectors[0] = first

	index := 1
	for index < numBlocks {
		if _, err := io.ReadFull(r, raw); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("%w: %v", fmperrors.ErrRead, err)
		}
		block, err := FromBytes(h, raw)
		if err != nil {
			return nil, err
		}
		sectors[index] = block
		index++
	}
	if index != numBlocks {
		return nil, fmperrors.ErrIncompleteSector
	}

	return &List{Header: h, Sectors: sectors}, nil
}
