package sector

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/bgrewell/fmpkit/pkg/consts"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/stretchr/testify/require"
)

// buildV3File assembles a minimal but valid v3 file: header sector,
// throwaway sector, then numBlocks real sectors. The first real sector's
// NextID is set to numBlocks per the original format's odd reuse of that
// field as a total block count.
func buildV3File(numBlocks int) []byte {
	var buf bytes.Buffer
	header := make([]byte, consts.HeaderSize)
	copy(header, consts.Magic[:])
	buf.Write(header)
	buf.Write(make([]byte, consts.V3SectorSize)) // throwaway

	for i := 0; i < numBlocks; i++ {
		sec := make([]byte, consts.V3SectorSize)
		if i == 0 {
			binary.BigEndian.PutUint32(sec[consts.V3NextIDOffset:], uint32(numBlocks))
		}
		buf.Write(sec)
	}
	return buf.Bytes()
}

func TestListLoadV3(t *testing.T) {
	data := buildV3File(3)
	l, err := Load(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.False(t, l.Header.IsV7)
	require.Len(t, l.Sectors, 3)
}

func TestListLoadRejectsTruncatedFile(t *testing.T) {
	data := buildV3File(3)
	data = data[:len(data)-100]
	_, err := Load(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, fmperrors.ErrBadSectorCount)
}

func TestListLoadRejectsZeroNextID(t *testing.T) {
	data := buildV3File(1)
	// zero out the first real sector's next-id field
	offset := consts.HeaderSize + consts.V3SectorSize + consts.V3NextIDOffset
	binary.BigEndian.PutUint32(data[offset:], 0)
	_, err := Load(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, fmperrors.ErrBadSectorCount)
}
