package fmp

import (
	"testing"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/stretchr/testify/require"
)

func TestListTablesV3UsesFilenameSansExtension(t *testing.T) {
	h := newTestHandle(false)
	h.filename = "Employees.fp5"

	tables, err := h.ListTables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, "Employees", tables[0].Name)
	require.Equal(t, 1, tables[0].Index)
}

func TestListTablesV3UsesEmptyNameWhenFilenameIsEmpty(t *testing.T) {
	h := newTestHandle(false)

	tables, err := h.ListTables()
	require.NoError(t, err)
	require.Equal(t, "", tables[0].Name)
}

func TestListTablesV7ReadsDirectory(t *testing.T) {
	// Table directory shape: [3, 16, 5, table_id] with table_id >= 128;
	// table_id - 128 is the emitted table index. 129 -> index 1, 130 -> index 2.
	sector1 := []*chunk.Chunk{
		push(3),
		push(16),
		push(5),
		push(0x00, 0x01), // table_id = 0x80 + 1 = 129 -> index 1
		fieldRefSimple(16, []byte("Orders")),
		pop(),
		push(0x00, 0x02), // table_id = 130 -> index 2
		fieldRefSimple(16, []byte("Customers")),
		pop(),
		pop(),
		pop(),
		pop(),
	}

	h := newTestHandle(true, sector1)
	tables, err := h.ListTables()
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.Equal(t, 1, tables[0].Index)
	require.Equal(t, "Orders", tables[0].Name)
	require.Equal(t, 2, tables[1].Index)
	require.Equal(t, "Customers", tables[1].Name)
}
