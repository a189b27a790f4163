package fmp

import (
	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/sector"
	"github.com/bgrewell/fmpkit/internal/textdecode"
)

// newTestHandle builds a Handle whose per-sector chunk decode is bypassed by
// pre-seeding decodeSector's cache directly — internal/chunk's own tests
// already cover turning raw payload bytes into chunks, so visitor tests only
// need to exercise what a visitor does with an already-decoded chunk stream.
// Sector array index 0 is the index sector and is never visited, matching
// processBlocks starting at physical sector #2.
func newTestHandle(isV7 bool, sectors ...[]*chunk.Chunk) *Handle {
	list := &sector.List{
		Header:  &sector.Header{IsV7: isV7},
		Sectors: make([]*sector.Sector, len(sectors)+1),
	}
	list.Sectors[0] = &sector.Sector{}

	cache := make(map[int][]*chunk.Chunk, len(sectors))
	for i, chunks := range sectors {
		idx := i + 1
		var next uint32
		if i < len(sectors)-1 {
			next = uint32(idx + 2)
		}
		list.Sectors[idx] = &sector.Sector{NextID: next}
		cache[idx] = chunks
	}

	backend := textdecode.BackendMacRoman
	if isV7 {
		backend = textdecode.BackendSCSU
	}
	return &Handle{
		list:       list,
		decoder:    textdecode.NewDecoder(backend, 0),
		chunkCache: cache,
	}
}

func push(data ...byte) *chunk.Chunk {
	return &chunk.Chunk{Type: chunk.TypePathPush, Data: data}
}

func pop() *chunk.Chunk {
	return &chunk.Chunk{Type: chunk.TypePathPop}
}

func fieldRefSimple(ref uint16, data []byte) *chunk.Chunk {
	return &chunk.Chunk{Type: chunk.TypeFieldRefSimple, RefSimple: ref, Data: data}
}
