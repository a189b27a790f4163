package sector

import (
	"encoding/binary"
	"testing"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/stretchr/testify/require"
)

func v3TestHeader() *Header {
	return &Header{
		IsV7: false, Version: 3, SectorSize: 1024,
		HeaderLen: 14, PrevOffset: 2, NextOffset: 6, PayloadLenOffset: 12,
	}
}

func TestFromBytesV3(t *testing.T) {
	h := v3TestHeader()
	raw := make([]byte, h.SectorSize)
	raw[0] = 0x01 // deleted
	raw[1] = 0x02 // level
	binary.BigEndian.PutUint32(raw[2:], 41)
	binary.BigEndian.PutUint32(raw[6:], 43)
	binary.BigEndian.PutUint16(raw[12:], 5)
	copy(raw[14:], []byte{1, 2, 3, 4, 5})

	s, err := FromBytes(h, raw)
	require.NoError(t, err)
	require.Equal(t, byte(1), s.Deleted)
	require.Equal(t, byte(2), s.Level)
	require.Equal(t, uint32(41), s.PrevID)
	require.Equal(t, uint32(43), s.NextID)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, s.Payload)
}

func TestFromBytesRejectsOversizedPayloadLen(t *testing.T) {
	h := v3TestHeader()
	raw := make([]byte, h.SectorSize)
	binary.BigEndian.PutUint16(raw[12:], uint16(h.SectorSize)) // way too big
	_, err := FromBytes(h, raw)
	require.ErrorIs(t, err, fmperrors.ErrBadSector)
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	h := v3TestHeader()
	_, err := FromBytes(h, make([]byte, 10))
	require.Error(t, err)
}
