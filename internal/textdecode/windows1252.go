package textdecode

// windows1252ToRune maps each Windows-1252 byte in [0x80, 0x9F] to its
// Unicode code point; bytes 0xA0-0xFF coincide with Latin-1 (same as the
// byte value itself) and 0x00-0x7F are ASCII. Reserved for callers that
// force this back-end via option.WithTextDecoderOverride; no FMP variant
// the header can detect selects it automatically (see §4.8).
var windows1252ToRune = [32]rune{
	'€', '', '‚', 'ƒ', '„', '…', '†', '‡',
	'ˆ', '‰', 'Š', '‹', 'Œ', '', 'Ž', '',
	'', '‘', '’', '“', '”', '•', '–', '—',
	'˜', '™', 'š', '›', 'œ', '', 'ž', 'Ÿ',
}

// DecodeWindows1252 converts Windows-1252 bytes to a UTF-8 string, with the
// same \t \n \r -> space flattening as the other back-ends.
func DecodeWindows1252(src []byte) string {
	buf := make([]rune, 0, len(src))
	for _, b := range src {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			buf = append(buf, ' ')
		case b >= 0x80 && b <= 0x9F:
			buf = append(buf, windows1252ToRune[b-0x80])
		default:
			buf = append(buf, rune(b))
		}
	}
	return string(buf)
}
