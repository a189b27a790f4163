package fmp

import (
	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/path"
	"github.com/bgrewell/fmpkit/internal/sector"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
)

// ChunkStatus is what a chunk handler returns to steer traversal: continue
// to the next chunk, stop this sector's chunk chain early (not an error —
// e.g. the visitor has walked past the part of the tree it cares about),
// or abort the whole traversal.
type ChunkStatus int

const (
	ChunkNext ChunkStatus = iota
	ChunkDone
	ChunkAbort
)

// chunkHandler receives a decoded chunk together with the path stack as it
// stood immediately before this chunk's own push/pop is applied — matching
// the original's "chunk->path is a snapshot taken before mutation" quirk,
// which is why a PATH_POP chunk's handler still sees the element about to
// be removed.
type chunkHandler func(ch *chunk.Chunk, elements []path.Element, level int) ChunkStatus

// blockHandler is invoked once per visited sector, before its chunk chain
// runs. Returning false skips the chunk chain for that sector.
type blockHandler func(s *sector.Sector) bool

// decodeSector returns the memoised chunk decode of sector index idx
// (0-based, physical order), decoding it on first use.
func (h *Handle) decodeSector(idx int) ([]*chunk.Chunk, error) {
	if cached, ok := h.chunkCache[idx]; ok {
		return cached, nil
	}
	chunks, err := chunk.Decode(h.list.Sectors[idx].Payload, h.list.Header.IsV7)
	if err != nil {
		return nil, err
	}
	h.chunkCache[idx] = chunks
	return chunks, nil
}

// processBlocks walks the sector chain starting at physical sector #2
// (array index 1) — index 0 is the index sector and, per the original
// traversal, is never itself handed to a chunk handler — following each
// sector's NextID link until it dangles, repeats, or a handler says stop.
func (h *Handle) processBlocks(handleBlock blockHandler, handleChunk chunkHandler) error {
	numBlocks := len(h.list.Sectors)
	visited := make([]bool, numBlocks)
	stack := path.NewStack()

	nextBlock := 2
	for {
		idx := nextBlock - 1
		if idx < 0 || idx >= numBlocks || visited[idx] {
			break
		}
		s := h.list.Sectors[idx]

		chunks, err := h.decodeSector(idx)
		visited[idx] = true
		if err != nil {
			return err
		}
		s.ThisID = nextBlock

		proceed := handleBlock == nil || handleBlock(s)
		if proceed {
			status := runChunkChain(stack, chunks, handleChunk)
			if status == ChunkAbort {
				return fmperrors.ErrUserAborted
			}
		}

		nextBlock = int(s.NextID)
		if nextBlock == 0 {
			break
		}
	}
	return nil
}

// runChunkChain replays one sector's chunk list against handle, resetting
// the path stack first (path state does not carry across sectors).
func runChunkChain(stack *path.Stack, chunks []*chunk.Chunk, handle chunkHandler) ChunkStatus {
	stack.Reset()
	for _, ch := range chunks {
		elements := stack.Elements()
		level := stack.Level()
		switch ch.Type {
		case chunk.TypePathPop:
			stack.Pop()
		case chunk.TypePathPush:
			stack.Push(path.Element(ch.Data))
		}
		switch handle(ch, elements, level) {
		case ChunkAbort:
			return ChunkAbort
		case ChunkDone:
			return ChunkDone
		}
	}
	return ChunkNext
}
