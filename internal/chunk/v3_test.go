package chunk

import (
	"testing"

	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/stretchr/testify/require"
)

func TestDecodeV3FieldRefSimpleRange(t *testing.T) {
	// opcode 0x41 is in [0x40,0x80): ref_simple = 0x41-0x40 = 1
	payload := []byte{0x41, 0x02, 'h', 'i'}
	chunks, err := Decode(payload, false)
	require.NoError(t, err)
	require.Equal(t, TypeFieldRefSimple, chunks[0].Type)
	require.Equal(t, uint16(1), chunks[0].RefSimple)
	require.Equal(t, []byte("hi"), chunks[0].Data)
}

func TestDecodeV3DataSimpleRange(t *testing.T) {
	// opcode 0x83 is in [0x80,0xC0): data.len = 0x83-0x80 = 3
	payload := []byte{0x83, 'a', 'b', 'c'}
	chunks, err := Decode(payload, false)
	require.NoError(t, err)
	require.Equal(t, TypeDataSimple, chunks[0].Type)
	require.Equal(t, []byte("abc"), chunks[0].Data)
}

func TestDecodeV3PathPushAndPop(t *testing.T) {
	// 0xC0 alone is PathPop; 0xC2 is PathPush with len 2
	payload := []byte{0xC0, 0xC2, 0x01, 0x02}
	chunks, err := Decode(payload, false)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, TypePathPop, chunks[0].Type)
	require.Equal(t, TypePathPush, chunks[1].Type)
	require.Equal(t, []byte{0x01, 0x02}, chunks[1].Data)
}

func TestDecodeV3FillerChunkDiscarded(t *testing.T) {
	payload := []byte{0x01, 0xFF, 0x05, 0, 0, 0, 0, 0, 0xC0}
	chunks, err := Decode(payload, false)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, TypePathPop, chunks[0].Type)
}

func TestDecodeV3RequiresExactBoundary(t *testing.T) {
	// a single trailing byte after a clean PathPop is not a valid opcode
	// start for the allotted space: 0xC0 consumes no payload, leaving one
	// stray byte the decoder can't interpret as a full opcode.
	payload := []byte{0xC0, 0x01}
	_, err := Decode(payload, false)
	require.Error(t, err)
}

func TestDecodeV3ExtendedFieldRefLong(t *testing.T) {
	// 0xFF 0x02 -> extended FIELD_REF_LONG: ext (2) itself is the ref_long
	// length, so the next 2 bytes are the ref, then a 2-byte data length.
	payload := []byte{0xFF, 0x02, 0x01, 0x09, 0x00, 0x02, 'x', 'y'}
	chunks, err := Decode(payload, false)
	require.NoError(t, err)
	require.True(t, chunks[0].Extended)
	require.Equal(t, TypeFieldRefLong, chunks[0].Type)
	require.Equal(t, []byte{0x01, 0x09}, chunks[0].RefLong)
	require.Equal(t, []byte("xy"), chunks[0].Data)
}

func TestDecodeV3UnrecognizedExtendedCode(t *testing.T) {
	_, err := Decode([]byte{0xFF, 0x99}, false)
	require.ErrorIs(t, err, fmperrors.ErrUnrecognizedCode)
}
