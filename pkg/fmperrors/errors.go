// Package fmperrors defines the closed set of tagged errors the decoder can
// return. Internal code wraps these with fmt.Errorf("%w: ...", ...) for
// context, so callers can still errors.Is against the sentinel.
package fmperrors

import "errors"

var (
	// ErrOpen covers failures opening the underlying byte source.
	ErrOpen = errors.New("fmp: open failed")
	// ErrSeek covers failed seeks on the underlying byte source.
	ErrSeek = errors.New("fmp: seek failed")
	// ErrRead covers short or failed reads of sector data.
	ErrRead = errors.New("fmp: read failed")
	// ErrNoBufferOpen is returned when an operation needs an open handle that isn't one.
	ErrNoBufferOpen = errors.New("fmp: no buffer open")

	// ErrMalloc mirrors the original's allocation-failure tag. Nothing in
	// this module returns it: Go allocations do not report failure, and
	// length fields are bounded by the sector size before any slice is made.
	ErrMalloc = errors.New("fmp: allocation failed")

	// ErrBadMagicNumber is returned when the file does not start with the
	// fixed 15-byte FMP signature.
	ErrBadMagicNumber = errors.New("fmp: bad magic number")
	// ErrBadSector is returned when a sector's declared payload length
	// doesn't fit, or a v3 sector's opcode stream didn't consume exactly
	// payload_len bytes.
	ErrBadSector = errors.New("fmp: bad sector")
	// ErrBadSectorCount is returned when the file size is inconsistent
	// with the sector count implied by the first sector's next_id.
	ErrBadSectorCount = errors.New("fmp: bad sector count")
	// ErrDataExceedsSectorSize is returned when decoding an opcode would
	// read past the end of the sector's payload.
	ErrDataExceedsSectorSize = errors.New("fmp: data exceeds sector size")
	// ErrIncompleteSector is returned when fewer sectors could be read
	// than the header promised.
	ErrIncompleteSector = errors.New("fmp: incomplete sector")
	// ErrUnrecognizedCode is returned when the chunk decoder encounters
	// an opcode byte with no defined meaning for the active variant.
	ErrUnrecognizedCode = errors.New("fmp: unrecognized opcode")
	// ErrUnsupportedCharacterSet is returned when the detected variant's
	// text decoder cannot be constructed.
	ErrUnsupportedCharacterSet = errors.New("fmp: unsupported character set")

	// ErrUserAborted is returned when a caller's value handler returns Abort.
	ErrUserAborted = errors.New("fmp: user aborted")
)
