package fmp

import (
	"fmt"
	"io"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/path"
	"github.com/bgrewell/fmpkit/internal/sector"
	"github.com/bgrewell/fmpkit/internal/textdecode"
)

type dumpState struct {
	w            io.Writer
	decoder      *textdecode.Decoder
	noXORDecoder *textdecode.Decoder
	didPrintPath bool
}

// dumpValue renders one data field the way a human inspecting the bytecode
// would want it: as a small integer if it looks like one of the format's
// packed numeric encodings, otherwise as decoded text.
func dumpValue(w io.Writer, data []byte, xorMask byte, isV7 bool, decoder *textdecode.Decoder) {
	if len(data) == 0 {
		fmt.Fprint(w, "[]")
		return
	}
	lead := data[0] ^ xorMask
	switch {
	case len(data) == 1 || (lead >= 0x80 && len(data) <= 3):
		fmt.Fprintf(w, "[%d]", path.Value(path.Element(data), isV7))
	case (lead < 0x20 || lead >= 0x80) && len(data) <= 4:
		var val uint64
		for i, b := range data {
			if i > 0 {
				val <<= 8
			}
			val += uint64(b)
		}
		fmt.Fprintf(w, "[%d]", val)
	default:
		fmt.Fprintf(w, "%q", decoder.Convert(data))
	}
}

// dumpPathValue is dumpValue's path-coordinate counterpart: path elements
// of 3 bytes or fewer always print as the packed integer they decode to,
// regardless of what dumpValue's heuristic would guess from their bytes.
func dumpPathValue(w io.Writer, e path.Element, xorMask byte, isV7 bool, decoder *textdecode.Decoder) {
	if len(e) <= 3 {
		fmt.Fprintf(w, "[%d]", path.Value(e, isV7))
		return
	}
	dumpValue(w, e, xorMask, isV7, decoder)
}

func dumpPath(w io.Writer, elements []path.Element, xorMask byte, isV7 bool, decoder *textdecode.Decoder) {
	for _, e := range elements {
		dumpPathValue(w, e, xorMask, isV7, decoder)
		fmt.Fprint(w, ".")
	}
}

// DumpFile writes a line-oriented trace of every sector, path move, and
// chunk in the file to w. It exists for inspecting files the higher-level
// visitors fail or behave unexpectedly on, not for programmatic use.
func (h *Handle) DumpFile(w io.Writer) error {
	hdr := h.list.Header
	fmt.Fprintf(w, "Version: File Maker %s\n", hdr.ReleaseVersion)
	if !hdr.ReleaseDate.IsZero() {
		fmt.Fprintf(w, "Released: %04d-%02d-%02d\n",
			hdr.ReleaseDate.Year(), hdr.ReleaseDate.Month(), hdr.ReleaseDate.Day())
	}

	isV7 := hdr.IsV7
	xorMask := hdr.XORMask
	st := &dumpState{w: w, decoder: h.decoder, noXORDecoder: h.decoder.WithoutXOR()}

	onBlock := func(s *sector.Sector) bool {
		st.didPrintPath = false
		if s.ThisID == 0 {
			fmt.Fprint(w, "=== [ INDEX BLOCK ] ===\n")
			fmt.Fprintf(w, "   # blocks: %d\n", s.NextID)
		} else {
			fmt.Fprintf(w, "== %d -> [ BLOCK %d ] -> %d ==\n", s.PrevID, s.ThisID, s.NextID)
			fmt.Fprintf(w, "        [ Len: %d ]\n", s.PayloadLen)
		}
		return true
	}

	onChunk := func(ch *chunk.Chunk, elements []path.Element, level int) ChunkStatus {
		switch ch.Type {
		case chunk.TypePathPop:
			st.didPrintPath = false
			fmt.Fprintf(w, "-- POP 0x%02X --\n", ch.Code)
		case chunk.TypePathPush:
			fmt.Fprintf(w, "-- PUSH 0x%02X [ ", ch.Code)
			for _, b := range ch.Data {
				fmt.Fprintf(w, "0x%02X ", b)
			}
			fmt.Fprint(w, " ] --\n")
			st.didPrintPath = false
		default:
			if !st.didPrintPath && level > 0 {
				dumpPath(w, elements, xorMask, isV7, st.decoder)
				fmt.Fprint(w, "\n")
				st.didPrintPath = true
			}
			fmt.Fprintf(w, "%*s", level, "")
		}

		switch ch.Type {
		case chunk.TypeDataSimple:
			fmt.Fprintf(w, "-- data simple (0x%02X): ", ch.Code)
			dumpValue(w, ch.Data, 0, isV7, st.noXORDecoder)
			fmt.Fprint(w, " --\n")
		case chunk.TypeFieldRefSimple:
			fmt.Fprintf(w, "-- field (0x%02X): [%d] => ", ch.Code, ch.RefSimple)
			dumpValue(w, ch.Data, xorMask, isV7, st.decoder)
			fmt.Fprint(w, " --\n")
		case chunk.TypeFieldRefLong:
			fmt.Fprintf(w, "-- field (0x%02X): ", ch.Code)
			dumpValue(w, ch.RefLong, xorMask, isV7, st.decoder)
			fmt.Fprint(w, " => ")
			dumpValue(w, ch.Data, xorMask, isV7, st.decoder)
			fmt.Fprint(w, " --\n")
		case chunk.TypeDataSegment:
			fmt.Fprintf(w, "-- segment #%d (%d bytes) --\n", ch.SegmentIndex, len(ch.Data))
		}
		if ch.Extended {
			fmt.Fprint(w, "   => EXTENDED <= \n")
		}
		return ChunkNext
	}

	return h.processBlocks(onBlock, onChunk)
}
