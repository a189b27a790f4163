package fmp

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/path"
)

// ListTables enumerates the tables defined in the file. Legacy (v3-v6)
// files have no table directory of their own — the single implicit table
// takes the file's own name, extension stripped.
func (h *Handle) ListTables() ([]*Table, error) {
	if !h.list.Header.IsV7 {
		name := strings.TrimSuffix(h.filename, filepath.Ext(h.filename))
		return []*Table{{Index: 1, Name: name}}, nil
	}

	byIndex := map[int]*Table{}

	// The table directory lives under path [3, 16, 5, <table-id>], where
	// <table-id> is the table's node id (raw value >= 128); table index is
	// that id minus 128. This shape is specific to list_tables and isn't
	// expressed via the generic path.MatchStart1/MatchStart2 helpers.
	handle := func(ch *chunk.Chunk, elements []path.Element, level int) ChunkStatus {
		if level == 0 {
			return ChunkNext
		}
		if path.Value(elements[0], true) > 3 {
			return ChunkDone
		}
		if ch.Type != chunk.TypeFieldRefSimple {
			return ChunkNext
		}
		if level < 4 {
			return ChunkNext
		}
		if !path.Is(elements[0], true, 3) || !path.Is(elements[1], true, 16) ||
			!path.Is(elements[2], true, 5) || path.Value(elements[3], true) < 128 {
			return ChunkNext
		}
		tableValue := path.Value(elements[level-1], true)
		if tableValue < 128 {
			return ChunkNext
		}
		tableIndex := int(tableValue - 128)
		if tableIndex <= 0 {
			return ChunkNext
		}
		if ch.RefSimple == 16 {
			t, ok := byIndex[tableIndex]
			if !ok {
				t = &Table{Index: tableIndex}
				byIndex[tableIndex] = t
			}
			t.Name = h.decoder.Convert(ch.Data)
		}
		return ChunkNext
	}

	if err := h.processBlocks(nil, handle); err != nil {
		return nil, err
	}

	tables := make([]*Table, 0, len(byIndex))
	for _, t := range byIndex {
		if t.Name != "" {
			tables = append(tables, t)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Index < tables[j].Index })
	return tables, nil
}
