// Package charset converts between the console's 8-bit character set
// and UTF-8. Text containers store glyphs (arrows, buttons, shapes) as
// Unicode characters while the runtime expects single bytes.
//
// Codes 0-127 are plain ASCII. The table below covers the documented
// glyph range; unmapped high codes are carried as the corresponding
// U+0080-U+00FF runes so unknown content survives a round trip.
package charset

var glyphs = map[byte]rune{
	0x80: '█',
	0x81: '▒',
	0x82: '🐱',
	0x83: '⬇',
	0x84: '░',
	0x85: '✽',
	0x86: '●',
	0x87: '♥',
	0x88: '☉',
	0x89: '웃',
	0x8a: '⌂',
	0x8b: '⬅',
	0x8c: '😐',
	0x8d: '♪',
	0x8e: '🅾',
	0x8f: '◆',
	0x90: '…',
	0x91: '➡',
	0x92: '★',
	0x93: '⧗',
	0x94: '⬆',
	0x95: 'ˇ',
	0x96: '∧',
	0x97: '❎',
	0x98: '▤',
	0x99: '▥',
}

var runes map[rune]byte

func init() {
	runes = make(map[rune]byte, len(glyphs))
	for b, r := range glyphs {
		runes[r] = b
	}
}

// variation selector 16; emoji-style tools append it to glyphs
const vs16 = '️'

// ToConsole maps UTF-8 text to the console's 8-bit character set.
// Glyph runes collapse to their single-byte codes, ASCII and
// U+0080-U+00FF runes pass through as single bytes, and anything else
// keeps its raw UTF-8 bytes.
func ToConsole(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r == vs16 {
			continue
		}
		if b, ok := runes[r]; ok {
			out = append(out, b)
			continue
		}
		if r < 0x100 {
			out = append(out, byte(r))
			continue
		}
		out = append(out, string(r)...)
	}
	return string(out)
}

// ToUTF8 maps console text back to UTF-8, expanding glyph codes.
func ToUTF8(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if r, ok := glyphs[s[i]]; ok {
			out = append(out, string(r)...)
			continue
		}
		if s[i] >= 0x80 {
			out = append(out, string(rune(s[i]))...)
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
