// Package fmp decodes FileMaker Pro database files — both the legacy
// (v3-v6, "HBAM") and modern (v7-v12, "HBAM7") on-disk formats — far
// enough to enumerate tables, columns, and cell values. It does not
// understand FileMaker's query language, relationships, or scripts: this
// is a read-only archaeology tool, not a database engine.
package fmp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bgrewell/fmpkit/internal/chunk"
	"github.com/bgrewell/fmpkit/internal/sector"
	"github.com/bgrewell/fmpkit/internal/textdecode"
	"github.com/bgrewell/fmpkit/pkg/fmperrors"
	"github.com/bgrewell/fmpkit/pkg/logging"
	"github.com/bgrewell/fmpkit/pkg/option"
)

// Handle is an open FMP file. It owns the decoded sector list and a
// memoised per-sector chunk cache shared by every visitor (ListTables,
// ListColumns, ReadValues, DumpFile) run against it.
type Handle struct {
	list       *sector.List
	decoder    *textdecode.Decoder
	chunkCache map[int][]*chunk.Chunk

	filename string
	logger   *logging.Logger
	closer   io.Closer
}

// Version reports the FileMaker format generation: 3 for legacy files, 7
// or 12 for modern ones.
func (h *Handle) Version() int { return h.list.Header.Version }

// ReleaseVersion is the FileMaker product version string stamped in the
// header, e.g. "12.0v3".
func (h *Handle) ReleaseVersion() string { return h.list.Header.ReleaseVersion }

// ReleaseDate is the header's stamped release date as year, month and day.
// If it didn't parse as a DDMMMYY string, the fields are those of the zero
// time.Time (year 1, month 1, day 1).
func (h *Handle) ReleaseDate() (t struct {
	Year, Month, Day int
}) {
	d := h.list.Header.ReleaseDate
	t.Year, t.Month, t.Day = d.Year(), int(d.Month()), d.Day()
	return t
}

// Open opens an FMP file from a seekable reader. size must be the total
// byte length of r's underlying data, used to validate the sector count
// the header implies against the file's actual size.
func Open(r io.ReadSeeker, size int64, opts ...option.OpenOption) (*Handle, error) {
	openOptions := option.DefaultOpenOptions()
	for _, opt := range opts {
		opt(openOptions)
	}

	list, err := sector.Load(r, size)
	if err != nil {
		return nil, err
	}

	backend := textdecode.BackendMacRoman
	xorMask := byte(0)
	if list.Header.IsV7 {
		backend = textdecode.BackendSCSU
		xorMask = list.Header.XORMask
	}
	switch openOptions.TextDecoderOverride {
	case option.TextDecoderMacRoman:
		backend = textdecode.BackendMacRoman
	case option.TextDecoderWindows1252:
		backend = textdecode.BackendWindows1252
	case option.TextDecoderSCSU:
		backend = textdecode.BackendSCSU
	}

	h := &Handle{
		list:       list,
		decoder:    textdecode.NewDecoder(backend, xorMask),
		chunkCache: make(map[int][]*chunk.Chunk),
		logger:     openOptions.Logger,
	}
	if openOptions.MaxSectors > 0 && len(list.Sectors) > openOptions.MaxSectors {
		return nil, fmt.Errorf("%w: %d sectors exceeds configured maximum of %d",
			fmperrors.ErrBadSectorCount, len(list.Sectors), openOptions.MaxSectors)
	}
	h.logger.Debug("opened fmp file", "version", h.list.Header.Version, "sectors", len(list.Sectors))
	return h, nil
}

// OpenFile opens the file at path.
func OpenFile(path string, opts ...option.OpenOption) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fmperrors.ErrOpen, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", fmperrors.ErrOpen, err)
	}
	h, err := Open(f, info.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	h.filename = filepath.Base(path)
	h.closer = f
	return h, nil
}

// OpenBuffer opens an in-memory copy of a file's bytes.
func OpenBuffer(buf []byte, opts ...option.OpenOption) (*Handle, error) {
	return Open(bytes.NewReader(buf), int64(len(buf)), opts...)
}

// Close releases any OS resources this handle owns. It is always safe to
// call, including on handles opened via OpenBuffer.
func (h *Handle) Close() error {
	if h.closer != nil {
		return h.closer.Close()
	}
	return nil
}
