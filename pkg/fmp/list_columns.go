package fmp

import (
	"sort"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/path"
	"github.com/bgrewell/fmpkit/pkg/consts"
)

// ListColumns enumerates the columns of table. On legacy (v3-v6) files the
// scope guard is simply "path[0] <= 3"; on modern files it additionally
// requires path[0] to match the target table's node id (table.Index+128),
// since every table's column directory lives under the same three-deep
// shape and only the leading node distinguishes tables.
//
// Column.Collation is always 0x00 (reported as "en" by consts.CollationTag):
// the reference implementation
// this format was reverse engineered from declares a collation enum on its
// column type but no visitor ever decodes a byte into it, so every column
// it produces carries the zero value. Rather than invent an undocumented
// wire location for it, that same default is preserved here.
func (h *Handle) ListColumns(table *Table) ([]*Column, error) {
	byIndex := map[int]*Column{}
	isV7 := h.list.Header.IsV7
	targetNode := uint64(table.Index) + 128

	handle := func(ch *chunk.Chunk, elements []path.Element, level int) ChunkStatus {
		if level == 0 {
			return ChunkNext
		}
		lead := path.Value(elements[0], isV7)
		if isV7 {
			if lead > targetNode {
				return ChunkDone
			}
			if lead < targetNode {
				return ChunkNext
			}
		} else if lead > 3 {
			return ChunkDone
		}
		if ch.Type != chunk.TypeFieldRefSimple {
			return ChunkNext
		}
		if !path.MatchStart2(elements, isV7, level, 3, 3, 5) {
			return ChunkNext
		}

		columnElem := elements[level-1]
		columnIndex := int(path.Value(columnElem, isV7))

		nameRef := uint16(1)
		if isV7 {
			nameRef = 16
		}
		if ch.RefSimple == nameRef {
			if columnIndex <= 0 {
				return ChunkNext
			}
			col, ok := byIndex[columnIndex]
			if !ok {
				col = &Column{Index: columnIndex}
				byIndex[columnIndex] = col
			}
			col.Name = h.decoder.Convert(ch.Data)
			return ChunkNext
		}

		// Column type is only ever set on v3: the v7 directory carries no
		// equivalent ref_simple, so a v7 column's Type stays ColumnTypeUnknown.
		if !isV7 && ch.RefSimple == 2 && len(ch.Data) >= 2 {
			col, ok := byIndex[columnIndex]
			if !ok || columnIndex <= 0 {
				return ChunkNext
			}
			if consts.ColumnType(ch.Data[1]) <= consts.ColumnTypeGlobal {
				col.Type = consts.ColumnType(ch.Data[1])
			} else {
				col.Type = consts.ColumnTypeUnknown
			}
		}
		return ChunkNext
	}

	err := h.processBlocks(nil, handle)

	columns := make([]*Column, 0, len(byIndex))
	for _, c := range byIndex {
		if c.Name != "" {
			columns = append(columns, c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Index < columns[j].Index })

	return columns, err
}
