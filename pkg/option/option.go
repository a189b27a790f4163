// Package option implements the functional-options pattern used to
// configure an open FMP file handle.
package option

import (
	"github.com/bgrewell/fmpkit/pkg/logging"
)

// TextDecoder names a text back-end a caller can force, overriding the
// variant-implied default.
type TextDecoder int

const (
	// TextDecoderAuto selects Mac Roman for v3 files and SCSU for v7+.
	TextDecoderAuto TextDecoder = iota
	TextDecoderMacRoman
	TextDecoderWindows1252
	TextDecoderSCSU
)

// OpenOptions holds the resolved configuration for Open/OpenFile/OpenBuffer.
type OpenOptions struct {
	Logger             *logging.Logger
	TextDecoderOverride TextDecoder
	MaxSectors         int
}

// OpenOption mutates an OpenOptions under construction.
type OpenOption func(*OpenOptions)

// DefaultOpenOptions returns the options Open uses absent any overrides.
func DefaultOpenOptions() *OpenOptions {
	return &OpenOptions{
		Logger:              logging.DefaultLogger(),
		TextDecoderOverride: TextDecoderAuto,
		MaxSectors:          0, // 0 means unbounded (cycle defence still applies)
	}
}

// WithLogger attaches a logger the decoder will emit trace/debug/error events to.
func WithLogger(logger *logging.Logger) OpenOption {
	return func(o *OpenOptions) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithTextDecoderOverride forces a specific text back-end regardless of the
// variant the header implies. Useful for recovering data from a file whose
// header is damaged but whose sector payloads are otherwise intact.
func WithTextDecoderOverride(decoder TextDecoder) OpenOption {
	return func(o *OpenOptions) {
		o.TextDecoderOverride = decoder
	}
}

// WithMaxSectors makes Open reject, with ErrBadSectorCount, a file that has
// more than max sectors. It does not limit how many sectors a traversal
// visits; that is bounded by the file's sector count and the cycle defence.
// Zero (the default) means no limit.
func WithMaxSectors(max int) OpenOption {
	return func(o *OpenOptions) {
		o.MaxSectors = max
	}
}
