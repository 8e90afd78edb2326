// Package textenc converts Unicode text to printer-native CP858 bytes and
// lays text into fixed-width columns. All layout math counts runes, never
// bytes, so accented characters occupy one column.
package textenc

// cp858 maps the accented characters and the Euro sign covered by
// Code Page 858. Anything not in the table falls back to its low byte.
var cp858 = map[rune]byte{
	// Lowercase accented
	'à': 0x85, 'â': 0x83, 'ä': 0x84,
	'é': 0x82, 'è': 0x8A, 'ê': 0x88, 'ë': 0x89,
	'î': 0x8C, 'ï': 0x8B,
	'ô': 0x93, 'ö': 0x94,
	'ù': 0x97, 'û': 0x96, 'ü': 0x81,
	'ç': 0x87,
	'ñ': 0xA4,
	// Uppercase accented
	'À': 0xB7, 'Â': 0xB6,
	'É': 0x90, 'È': 0xD4, 'Ê': 0xD2,
	'Î': 0xD7,
	'Ô': 0xE4,
	'Ù': 0xEB, 'Û': 0xEA,
	'Ç': 0x80,
	'Ñ': 0xA5,
	// Currency
	'€': 0xD5,
}

// Encode maps text to CP858 bytes. Characters outside the table are
// passed through as their low byte, a lossy best-effort fallback that
// keeps ASCII intact.
func Encode(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if b, ok := cp858[r]; ok {
			out = append(out, b)
		} else {
			out = append(out, byte(r))
		}
	}
	return out
}
