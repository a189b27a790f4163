package textdecode

// macRomanToRune maps each Mac OS Roman byte in [0x80, 0xFF] to its Unicode
// code point. Bytes below 0x80 are plain ASCII and are passed through
// unchanged.
var macRomanToRune = [128]rune{
	'Ä', 'Å', 'Ç', 'É', 'Ñ', 'Ö', 'Ü', 'á',
	'à', 'â', 'ä', 'ã', 'å', 'ç', 'é', 'è',
	'ê', 'ë', 'í', 'ì', 'î', 'ï', 'ñ', 'ó',
	'ò', 'ô', 'ö', 'õ', 'ú', 'ù', 'û', 'ü',
	'†', '°', '¢', '£', '§', '•', '¶', 'ß',
	'®', '©', '™', '´', '¨', '≠', 'Æ', 'Ø',
	'∞', '±', '≤', '≥', '¥', 'µ', '∂', '∑',
	'∏', 'π', '∫', 'ª', 'º', 'Ω', 'æ', 'ø',
	'¿', '¡', '¬', '√', 'ƒ', '≈', '∆', '«',
	'»', '…', ' ', 'À', 'Ã', 'Õ', 'Œ', 'œ',
	'–', '—', '“', '”', '‘', '’', '÷', '◊',
	'ÿ', 'Ÿ', '⁄', '€', '‹', '›', 'ﬁ', 'ﬂ',
	'‡', '·', '‚', '„', '‰', 'Â', 'Ê', 'Á',
	'Ë', 'È', 'Í', 'Î', 'Ï', 'Ì', 'Ó', 'Ô',
	'', 'Ò', 'Ú', 'Û', 'Ù', 'ı', 'ˆ', '˜',
	'¯', '˘', '˙', '˚', '¸', '˝', '˛', 'ˇ',
}

// DecodeMacRoman converts Mac OS Roman bytes to a UTF-8 string. Control
// characters \t \n \r are intentionally flattened to spaces, matching the
// behavior FileMaker relies on for single-line text cells (see SCSU's
// identical treatment of the same three bytes).
func DecodeMacRoman(src []byte) string {
	buf := make([]rune, 0, len(src))
	for _, b := range src {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			buf = append(buf, ' ')
		case b < 0x80:
			buf = append(buf, rune(b))
		default:
			buf = append(buf, macRomanToRune[b-0x80])
		}
	}
	return string(buf)
}
