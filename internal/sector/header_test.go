package sector

import (
	"testing"

	"github.com/bgrewell/fmpkit/pkg/consts"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/stretchr/testify/require"
)

func v3HeaderBuf() []byte {
	buf := make([]byte, consts.HeaderSize)
	copy(buf, consts.Magic[:])
	copy(buf[consts.ReleaseDateOffset:], "01Jan99")
	buf[consts.ReleaseVersionOffset] = 5
	copy(buf[consts.ReleaseVersionOffset+1:], "5.0v3")
	return buf
}

func v7HeaderBuf(v12 bool) []byte {
	buf := make([]byte, consts.HeaderSize)
	copy(buf, consts.Magic[:])
	copy(buf[15:], consts.HBAM7Signature)
	if v12 {
		buf[consts.V12VersionByteOffset] = consts.V12VersionByte
	}
	copy(buf[consts.ReleaseDateOffset:], "15Mar22")
	return buf
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	buf := v3HeaderBuf()
	buf[14] ^= 0xFF
	_, err := ParseHeader(buf)
	require.ErrorIs(t, err, fmperrors.ErrBadMagicNumber)
}

func TestParseHeaderV3(t *testing.T) {
	h, err := ParseHeader(v3HeaderBuf())
	require.NoError(t, err)
	require.False(t, h.IsV7)
	require.Equal(t, 3, h.Version)
	require.Equal(t, consts.V3SectorSize, h.SectorSize)
	require.Equal(t, 2, h.ThrowawaySectors())
	require.Equal(t, "5.0v3", h.ReleaseVersion)
}

func TestParseHeaderV7AndV12(t *testing.T) {
	h7, err := ParseHeader(v7HeaderBuf(false))
	require.NoError(t, err)
	require.True(t, h7.IsV7)
	require.Equal(t, 7, h7.Version)
	require.Equal(t, 1, h7.ThrowawaySectors())
	require.Equal(t, byte(consts.V7XORMask), h7.XORMask)

	h12, err := ParseHeader(v7HeaderBuf(true))
	require.NoError(t, err)
	require.Equal(t, 12, h12.Version)
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, 10))
	require.ErrorIs(t, err, fmperrors.ErrRead)
}
