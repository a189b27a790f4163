package textdecode

// SCSU decodes the Standard Compression Scheme for Unicode (Unicode
// Technical Report #6), the text encoding used by FMP v7+ files.
//
// Eight static windows are fixed at construction; eight dynamic windows
// start at the offsets below and can be redirected by SDn/SDX. Mode is
// either single-byte (the default) or Unicode (entered via SCU, exited via
// any UCn).
type SCSU struct {
	dynamicWindows [8]uint32
	activeWindow   uint8
	shift          uint8 // 0 = no pending single-quote window, else SQ0..SQ7
	unicodeMode    bool
	highSurrogate  uint16
	haveSurrogate  bool
}

// NewSCSU returns a decoder with the eight dynamic windows at their TR6
// default offsets.
func NewSCSU() *SCSU {
	return &SCSU{
		dynamicWindows: [8]uint32{
			0x0080, // Latin-1 Supplement
			0x00C0, // partial Latin-1 Supplement + Latin Extended-A
			0x0400, // Cyrillic
			0x0600, // Arabic
			0x0900, // Devanagari
			0x3040, // Hiragana
			0x30A0, // Katakana
			0xFF00, // Fullwidth ASCII
		},
	}
}

var staticWindowOffsets = [8]uint32{
	0x0000, // Quoting tags
	0x0080, // Latin-1 Supplement
	0x0100, // Latin Extended-A
	0x0300, // Combining Diacritical Marks
	0x2000, // General Punctuation
	0x2080, // Currency Symbols
	0x2100, // Letterlike Symbols and Number Forms
	0x3000, // CJK Symbols and Punctuation
}

const (
	scSQ0 = 0x01
	scSQ7 = 0x08
	scSDX = 0x0B
	scSQU = 0x0E
	scSCU = 0x0F
	scSC0 = 0x10
	scSC7 = 0x17
	scSD0 = 0x18
	scSD7 = 0x1F

	ucUC0 = 0xE0
	ucUC7 = 0xE7
	ucUD0 = 0xE8
	ucUD7 = 0xEF
	ucUQU = 0xF0
	ucUDX = 0xF1
)

// windowOffsetFromByte maps a single define-window byte to the Unicode
// block offset it selects, per TR6's fixed table of reserved windows.
func windowOffsetFromByte(x byte) uint32 {
	switch {
	case x > 0 && x < 0x68:
		return uint32(x) * 0x80
	case x >= 0x68 && x < 0xA8:
		return uint32(x)*0x80 + 0xAC00
	case x == 0xF9:
		return 0xC0
	case x == 0xFA:
		return 0x0250
	case x == 0xFB:
		return 0x0370
	case x == 0xFC:
		return 0x0530
	case x == 0xFD:
		return 0x3040
	case x == 0xFE:
		return 0x30A0
	case x == 0xFF:
		return 0xFF60
	default:
		return 0
	}
}

func extendedWindowOffset(hi, lo byte) uint32 {
	return 0x10000 + 0x80*(uint32(hi&0x1F)<<8|uint32(lo))
}

// DecodeSCSU decodes src (already de-obfuscated) into a UTF-8 string. Control
// bytes \n \r \t are intentionally flattened to a space: they carry in-cell
// layout, not semantic content, in single-line text cells.
func (s *SCSU) DecodeSCSU(src []byte) string {
	var out []rune
	i := 0
	n := len(src)

	emit := func(u uint32) {
		if u >= 0xDC00 && u <= 0xDFFF && s.haveSurrogate {
			u = 0x10000 + (uint32(s.highSurrogate)-0xD800)<<10 + (u - 0xDC00)
			s.haveSurrogate = false
		} else if u >= 0xD800 && u <= 0xDBFF {
			s.highSurrogate = uint16(u)
			s.haveSurrogate = true
			return
		} else {
			s.haveSurrogate = false
		}
		if u > 0 {
			out = append(out, rune(u))
		}
	}

	for i < n {
		c := src[i]
		i++

		if s.unicodeMode {
			switch {
			case c == ucUQU:
				if i+2 > n {
					break
				}
				u := uint32(src[i])<<8 | uint32(src[i+1])
				i += 2
				emit(u)
			case c >= ucUC0 && c <= ucUC7:
				s.activeWindow = c - ucUC0
				s.unicodeMode = false
			case c >= ucUD0 && c <= ucUD7:
				if i+1 > n {
					break
				}
				win := c - ucUD0
				s.dynamicWindows[win] = windowOffsetFromByte(src[i])
				s.activeWindow = win
				i++
				s.unicodeMode = false
			case c == ucUDX:
				if i+2 > n {
					break
				}
				win := (src[i] & 0xE0) >> 5
				s.dynamicWindows[win] = extendedWindowOffset(src[i], src[i+1])
				s.activeWindow = win
				i += 2
				s.unicodeMode = false
			default:
				if i+1 > n {
					break
				}
				u := uint32(c)<<8 | uint32(src[i])
				i++
				emit(u)
			}
			continue
		}

		switch {
		case s.shift != 0:
			emit(staticWindowOffsets[s.shift-scSQ0] + uint32(c))
			s.shift = 0
		case c == scSCU:
			s.unicodeMode = true
		case c == scSQU:
			if i+2 > n {
				break
			}
			u := uint32(src[i])<<8 | uint32(src[i+1])
			i += 2
			emit(u)
		case c >= scSQ0 && c <= scSQ7:
			s.shift = c
		case c >= scSC0 && c <= scSC7:
			s.activeWindow = c - scSC0
		case c >= scSD0 && c <= scSD7:
			if i+1 > n {
				break
			}
			win := c - scSD0
			s.dynamicWindows[win] = windowOffsetFromByte(src[i])
			s.activeWindow = win
			i++
		case c == scSDX:
			if i+2 > n {
				break
			}
			win := (src[i] & 0xE0) >> 5
			s.dynamicWindows[win] = extendedWindowOffset(src[i], src[i+1])
			s.activeWindow = win
			i += 2
		case c == 0x0A || c == 0x0D || c == 0x09:
			emit(' ')
		case c >= 0x20 && c <= 0x7F:
			emit(uint32(c))
		case c >= 0x80:
			emit(s.dynamicWindows[s.activeWindow] + uint32(c-0x80))
		default:
			emit(0xFFFD)
		}
	}

	return string(out)
}
