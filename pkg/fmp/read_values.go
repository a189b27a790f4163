package fmp

import (
	"strings"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/path"
	"github.com/bgrewell/fmpkit/pkg/consts"
)

// ValueStatus is returned by a ValueHandler to steer ReadValues.
type ValueStatus int

const (
	ValueContinue ValueStatus = iota
	ValueAbort
)

// ValueHandler receives one decoded cell. row is 1-based and monotonically
// non-decreasing; column identifies which field the value belongs to. A
// long text field may be delivered as a single call even though it spanned
// several chunks internally — ReadValues reassembles those before calling
// the handler.
type ValueHandler func(row int, column *Column, value string) ValueStatus

type readValuesState struct {
	currentRow      int
	lastRow         int
	lastColumn      int
	longStringBuf   strings.Builder
	longStringInUse bool
	columns         []*Column
	handle          ValueHandler
}

func (s *readValuesState) column(index int) *Column {
	for index > len(s.columns) {
		s.columns = append(s.columns, &Column{})
	}
	return s.columns[index-1]
}

// pathIsLongString reports whether chunk's path addresses a long-text
// segment of a table-data cell rather than the cell's inline value.
func pathIsLongString(elements []path.Element, level int, isV7 bool, lastRow int) bool {
	if !path.MatchStart1(elements, isV7, level, 3, 5) {
		return false
	}
	if !isV7 {
		columnIndex := path.Value(elements[2], isV7)
		want := lastRow
		if columnIndex == 1 {
			want--
		}
		return path.Is(elements[1], isV7, uint64(want))
	}
	columnIndex := path.Value(elements[3], isV7)
	want := lastRow
	if columnIndex == 1 {
		want++
	}
	return path.Is(elements[2], isV7, uint64(want))
}

func pathRow(elements []path.Element, isV7 bool) int {
	if !isV7 {
		return int(path.Value(elements[1], isV7))
	}
	return int(path.Value(elements[2], isV7))
}

func pathIsTableData(elements []path.Element, level int, isV7 bool) bool {
	return path.MatchStart1(elements, isV7, level, 2, 5)
}

// processValue is shared by the v3 and v7 chunk handlers once they've
// established the chunk falls past the column-directory prefix.
func processValue(ch *chunk.Chunk, elements []path.Element, level int, isV7 bool, decoder interface {
	Convert([]byte) string
}, st *readValuesState) ChunkStatus {
	var longString bool
	var columnIndex int

	if pathIsLongString(elements, level, isV7, st.lastRow) {
		if ch.RefSimple == 0 {
			return ChunkNext // rich-text formatting run, not a value
		}
		longString = true
		columnIndex = int(path.Value(elements[level-1], isV7))
	} else if pathIsTableData(elements, level, isV7) &&
		int(ch.RefSimple) <= len(st.columns) && ch.RefSimple != 252 {
		columnIndex = int(ch.RefSimple)
	}

	if columnIndex <= 0 || columnIndex > len(st.columns) {
		return ChunkNext
	}
	column := st.column(columnIndex)

	if column.Index != st.lastColumn && st.longStringInUse {
		if st.handle != nil {
			flushed := st.column(st.lastColumn)
			status := st.handle(st.currentRow, flushed, st.longStringBuf.String())
			st.longStringBuf.Reset()
			st.longStringInUse = false
			if status == ValueAbort {
				return ChunkAbort
			}
		}
		st.longStringBuf.Reset()
		st.longStringInUse = false
	}

	row := pathRow(elements, isV7)
	if row != st.lastRow || column.Index < st.lastColumn {
		st.currentRow++
	}

	value := decoder.Convert(ch.Data)
	if longString {
		st.longStringBuf.WriteString(value)
		st.longStringInUse = true
	} else if st.handle != nil {
		if st.handle(st.currentRow, column, value) == ValueAbort {
			return ChunkAbort
		}
	}
	st.lastRow = row
	st.lastColumn = column.Index
	return ChunkNext
}

// ReadValues visits every cell value of table's rows in storage order,
// invoking handle for each one. Long text fields that span multiple chunks
// are reassembled into a single call; any value buffered when traversal
// completes is flushed as a final call before ReadValues returns.
func (h *Handle) ReadValues(table *Table, handle ValueHandler) error {
	isV7 := h.list.Header.IsV7
	targetNode := uint64(table.Index) + 128
	st := &readValuesState{handle: handle}

	columnHandler := func(ch *chunk.Chunk, elements []path.Element, level int) ChunkStatus {
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
		} else if lead > 5 {
			return ChunkDone
		}
		if ch.Type != chunk.TypeFieldRefSimple {
			return ChunkNext
		}

		if path.MatchStart2(elements, isV7, level, 3, 3, 5) {
			columnIndex := int(path.Value(elements[level-1], isV7))
			if columnIndex <= 0 {
				return ChunkNext
			}
			column := st.column(columnIndex)
			nameRef := uint16(1)
			if isV7 {
				nameRef = 16
			}
			if ch.RefSimple == nameRef {
				column.Name = h.decoder.Convert(ch.Data)
				column.Index = columnIndex
			} else if !isV7 && ch.RefSimple == 2 && len(ch.Data) >= 2 {
				switch ch.Data[1] {
				case 0x01:
					column.Type = consts.ColumnTypeText
				case 0x02:
					column.Type = consts.ColumnTypeNumber
				}
			}
			return ChunkNext
		}

		return processValue(ch, elements, level, isV7, h.decoder, st)
	}

	err := h.processBlocks(nil, columnHandler)

	if st.longStringInUse && handle != nil {
		flushed := st.column(st.lastColumn)
		handle(st.currentRow, flushed, st.longStringBuf.String())
		st.longStringInUse = false
	}

	return err
}
