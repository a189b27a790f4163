package fmp

import (
	"testing"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/path"
	"github.com/bgrewell/fmpkit/internal/sector"
	"github.com/bgrewell/fmpkit/internal/textdecode"
	"github.com/stretchr/testify/require"
)

// A sector chain that loops back on an already-visited sector must terminate
// traversal cleanly instead of spinning forever.
func TestProcessBlocksStopsOnSectorCycle(t *testing.T) {
	list := &sector.List{
		Header:  &sector.Header{IsV7: false},
		Sectors: make([]*sector.Sector, 3),
	}
	list.Sectors[0] = &sector.Sector{}
	list.Sectors[1] = &sector.Sector{NextID: 3} // sector #2 -> next is sector #3 (array index 2)
	list.Sectors[2] = &sector.Sector{NextID: 2} // sector #3 -> loops back to sector #2 (array index 1)

	h := &Handle{
		list:    list,
		decoder: textdecode.NewDecoder(textdecode.BackendMacRoman, 0),
		chunkCache: map[int][]*chunk.Chunk{
			1: {&chunk.Chunk{Type: chunk.TypeDataSimple, Data: []byte("A")}},
			2: {&chunk.Chunk{Type: chunk.TypeDataSimple, Data: []byte("B")}},
		},
	}

	var seen []string
	err := h.processBlocks(nil, func(ch *chunk.Chunk, elements []path.Element, level int) ChunkStatus {
		seen = append(seen, string(ch.Data))
		return ChunkNext
	})

	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, seen)
}
