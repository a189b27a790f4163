// Package consts holds the bit-exact file format constants required for
// compatibility with the FMP (FileMaker Pro) on-disk formats.
package consts

// Magic is the fixed 15-byte signature every FMP file begins with.
var Magic = [15]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0x00, 0x05, 0x00, 0x02, 0x00, 0x02, 0xC0}

const (
	// HBAM7Signature is the ASCII marker at offset 15 that identifies the v7+ family.
	HBAM7Signature = "HBAM7"

	// HeaderSize is the length of the file header, which doubles as the first sector.
	HeaderSize = 1024

	// V12VersionByteOffset holds 0x1E when the file is specifically v12.
	V12VersionByteOffset = 521
	V12VersionByte       = 0x1E

	// V3SectorSize is the sector size used by legacy (HBAM) files.
	V3SectorSize = 1024
	// V7SectorSize is the sector size used by modern (HBAM7) files.
	V7SectorSize = 4096

	// V3HeaderLen/V7HeaderLen are the per-sector header lengths.
	V3HeaderLen = 14
	V7HeaderLen = 20

	// Offsets of the prev/next sector id fields within a sector header.
	V3PrevIDOffset = 2
	V3NextIDOffset = 6
	V7PrevIDOffset = 4
	V7NextIDOffset = 8

	// V3PayloadLenOffset is the offset of the explicit big-endian u16 payload
	// length field in a v3 sector header. v7 has no such field: payload
	// length is implicit (sector size minus header length).
	V3PayloadLenOffset = 12

	// V7XORMask obfuscates v7 sector payloads prior to text decoding.
	V7XORMask = 0x5A

	// V3SectorIndexShift is the v3 sector index shift of the format. No code
	// in this module applies it; traversal follows NextID directly.
	V3SectorIndexShift = 1

	// ReleaseDateOffset/ReleaseDateLen locate the 6-byte DDMMMYY release date (v7 only).
	ReleaseDateOffset = 531
	ReleaseDateLen    = 6

	// ReleaseVersionOffset locates the Pascal string release version, both variants.
	ReleaseVersionOffset = 541

	// MaxNameLen is the maximum length (in bytes) of a table or column UTF-8 name.
	MaxNameLen = 63
)

// ColumnType enumerates the kinds of columns a table can have.
type ColumnType int

const (
	ColumnTypeUnknown ColumnType = iota
	ColumnTypeText
	ColumnTypeNumber
	ColumnTypeDate
	ColumnTypeTime
	ColumnTypeContainer
	ColumnTypeCalc
	ColumnTypeSummary
	ColumnTypeGlobal
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeText:
		return "Text"
	case ColumnTypeNumber:
		return "Number"
	case ColumnTypeDate:
		return "Date"
	case ColumnTypeTime:
		return "Time"
	case ColumnTypeContainer:
		return "Container"
	case ColumnTypeCalc:
		return "Calc"
	case ColumnTypeSummary:
		return "Summary"
	case ColumnTypeGlobal:
		return "Global"
	default:
		return "Unknown"
	}
}

// collationTags maps the raw FileMaker collation byte to a short ISO-like tag.
var collationTags = map[byte]string{
	0x00: "en",
	0x01: "fr",
	0x03: "de",
	0x04: "it",
	0x05: "nl",
	0x07: "sv",
	0x08: "es",
	0x09: "da",
	0x0A: "pt",
	0x0C: "no",
	0x11: "fi",
	0x14: "el",
	0x15: "is",
	0x18: "tr",
	0x27: "ro",
	0x2a: "pl",
	0x2b: "hu",
	0x31: "ru",
	0x38: "cs",
	0x3e: "uk",
	0x42: "hr",
	0x49: "ca",
	0x62: "fi",
	0x63: "sv",
	0x64: "de",
	0x65: "es",
	0x66: "en",
}

// CollationTag returns the short language tag for a raw FileMaker collation
// byte, or "" if the byte is not one of the known collations.
func CollationTag(raw byte) string {
	return collationTags[raw]
}
