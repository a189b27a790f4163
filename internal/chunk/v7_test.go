package chunk

import (
	"testing"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/stretchr/testify/require"
)

func TestDecodeV7FieldRefSimpleShortForm(t *testing.T) {
	// opcode 0x03 (<=0x05 branch, not 0x01): len = 2*3-2 = 4
	payload := []byte{0x03, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE}
	chunks, err := Decode(payload, true)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, TypeFieldRefSimple, chunks[0].Type)
	require.Equal(t, uint16(0xAA), chunks[0].RefSimple)
	require.Equal(t, []byte{0xBB, 0xCC, 0xDD, 0xEE}, chunks[0].Data)
}

func TestDecodeV7EndOfSectorMarker(t *testing.T) {
	payload := []byte{0x00, 0x00}
	chunks, err := Decode(payload, true)
	require.NoError(t, err)
	require.Len(t, chunks, 0)
}

func TestDecodeV7PathPushShort(t *testing.T) {
	payload := []byte{0x20, 0x05}
	chunks, err := Decode(payload, true)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, TypePathPush, chunks[0].Type)
	require.Equal(t, []byte{0x05}, chunks[0].Data)
}

func TestDecodeV7PathPushExtended(t *testing.T) {
	payload := append([]byte{0x20, 0xFE}, []byte{1, 2, 3, 4, 5, 6, 7, 8}...)
	chunks, err := Decode(payload, true)
	require.NoError(t, err)
	require.Equal(t, 8, len(chunks[0].Data))
}

func TestDecodeV7PathPop(t *testing.T) {
	chunks, err := Decode([]byte{0x40}, true)
	require.NoError(t, err)
	require.Equal(t, TypePathPop, chunks[0].Type)
}

func TestDecodeV7DiscardsNoOp(t *testing.T) {
	chunks, err := Decode([]byte{0x80, 0x40}, true)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, TypePathPop, chunks[0].Type)
}

func TestDecodeV7UnrecognizedCode(t *testing.T) {
	_, err := Decode([]byte{0x99}, true)
	require.ErrorIs(t, err, fmperrors.ErrUnrecognizedCode)
}

func TestDecodeV7TruncatedChunkErrors(t *testing.T) {
	_, err := Decode([]byte{0x0E, 0x00}, true)
	require.ErrorIs(t, err, fmperrors.ErrDataExceedsSectorSize)
}

func TestDecodeV7DataSegment(t *testing.T) {
	// opcode 0x07: segment index, 2-byte len, data
	payload := []byte{0x07, 0x02, 0x00, 0x03, 'a', 'b', 'c'}
	chunks, err := Decode(payload, true)
	require.NoError(t, err)
	require.Equal(t, TypeDataSegment, chunks[0].Type)
	require.Equal(t, uint16(2), chunks[0].SegmentIndex)
	require.Equal(t, []byte("abc"), chunks[0].Data)
}
