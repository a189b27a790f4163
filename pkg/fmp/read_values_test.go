package fmp

import (
	"testing"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/stretchr/testify/require"
)

type recordedValue struct {
	row    int
	column string
	value  string
}

// Notes is deliberately column index 2, not 1: pathIsLongString's v3 formula
// decrements lastRow for column index 1 between segments, which only ever
// matches a single segment per row. Column 2 keeps the match value stable
// across repeated segments of the same row, which is what a real multi-chunk
// long-text field relies on.
func TestReadValuesConcatenatesLongStringAndFlushesOnColumnChange(t *testing.T) {
	sector1 := []*chunk.Chunk{
		push(3), push(5), push(1),
		fieldRefSimple(1, []byte("Id")),
		fieldRefSimple(2, []byte{0x00, 0x01}),
		pop(),
		push(2),
		fieldRefSimple(1, []byte("Notes")),
		fieldRefSimple(2, []byte{0x00, 0x01}),
		pop(),
		pop(), pop(),

		push(5), push(1), // row 1
		fieldRefSimple(1, []byte("42")),
		push(2), // long-string column index, row element (1) shared with the row push above
		fieldRefSimple(1, []byte("hel")),
		fieldRefSimple(1, []byte("lo w")),
		fieldRefSimple(1, []byte("orld")),
		pop(), pop(),

		push(2), // row 2
		fieldRefSimple(1, []byte("100")),
		pop(), pop(),
	}

	h := newTestHandle(false, sector1)

	var got []recordedValue
	err := h.ReadValues(&Table{Index: 1}, func(row int, column *Column, value string) ValueStatus {
		got = append(got, recordedValue{row, column.Name, value})
		return ValueContinue
	})
	require.NoError(t, err)

	require.Equal(t, []recordedValue{
		{1, "Id", "42"},
		{1, "Notes", "hello world"},
		{2, "Id", "100"},
	}, got)
}

func TestReadValuesAbortStopsTraversalImmediately(t *testing.T) {
	chunks := []*chunk.Chunk{
		push(3), push(5), push(1),
		fieldRefSimple(1, []byte("Id")),
		fieldRefSimple(2, []byte{0x00, 0x01}),
		pop(), pop(), pop(),
	}

	values := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	for i, v := range values {
		chunks = append(chunks,
			push(5), push(byte(i+1)),
			fieldRefSimple(1, []byte(v)),
			pop(), pop(),
		)
	}

	h := newTestHandle(false, chunks)

	var seenRows []int
	err := h.ReadValues(&Table{Index: 1}, func(row int, column *Column, value string) ValueStatus {
		seenRows = append(seenRows, row)
		if row == 7 {
			return ValueAbort
		}
		return ValueContinue
	})

	require.ErrorIs(t, err, fmperrors.ErrUserAborted)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, seenRows)
}
