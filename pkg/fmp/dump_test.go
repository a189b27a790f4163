package fmp

import (
	"bytes"
	"testing"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/textdecode"
	"github.com/stretchr/testify/require"
)

func TestDumpFileWritesHeaderAndChunkTrace(t *testing.T) {
	sector1 := []*chunk.Chunk{
		push(3),
		&chunk.Chunk{Type: chunk.TypeDataSimple, Code: 0x20, Data: []byte("hello")},
		fieldRefSimple(7, []byte("world")),
		pop(),
	}

	h := newTestHandle(false, sector1)
	h.list.Header.ReleaseVersion = "6.0"
	h.decoder = textdecode.NewDecoder(textdecode.BackendMacRoman, 0)

	var buf bytes.Buffer
	err := h.DumpFile(&buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Version: File Maker 6.0")
	require.Contains(t, out, "PUSH")
	require.Contains(t, out, "POP")
	require.Contains(t, out, "data simple")
	require.Contains(t, out, `"hello"`)
	require.Contains(t, out, "field (0x00): [7]")
	require.Contains(t, out, `"world"`)
}
