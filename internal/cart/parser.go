package cart

import (
	"fmt"
	"log"
	"strings"
)

// section identifies which part of the memory map a text-container
// block belongs to.
type section int

const (
	secNone    section = iota // prelude, before the first marker
	secDiscard                // unknown marker, data dropped
	secLua
	secGfx
	secGff
	secMap
	secSfx
	secMusic
	secLabel
)

// document is the result of parsing a text container: the declared
// format version, the verbatim script text, and one decoded byte
// buffer per known section.
type document struct {
	version int
	script  string
	data    map[section][]byte
}

// parseP8 parses the text container format:
//
//	pico-8 cartridge // <free text>
//	version <decimal>
//	__gfx__
//	<data lines...>
//
// An optional BOM precedes the header. Text between the header and the
// first section marker is ignored. Sections may appear in any order,
// repeat (their data concatenates), or be absent. Unknown __tag__
// markers are tolerated; their data never surfaces in the result.
func parseP8(text string) (*document, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	finalNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if finalNewline {
		lines = lines[:len(lines)-1]
	}

	if len(lines) < 2 ||
		!strings.HasPrefix(lines[0], "pico-8 cartridge") ||
		!strings.HasPrefix(lines[1], "version ") {
		return nil, fmt.Errorf("cart: %w", ErrMissingHeader)
	}
	version := 0
	for _, ch := range lines[1][len("version "):] {
		if ch < '0' || ch > '9' {
			break
		}
		version = version*10 + int(ch-'0')
	}

	cur := secNone
	var script strings.Builder
	raw := make(map[section]*strings.Builder)

	for i := 2; i < len(lines); i++ {
		line := lines[i]
		if tag, ok := sectionMarker(line); ok {
			cur = tag
			continue
		}
		switch cur {
		case secNone, secDiscard:
			// prelude or unknown section, dropped
		case secLua:
			script.WriteString(line)
			if i < len(lines)-1 || finalNewline {
				script.WriteByte('\n')
			}
		default:
			b := raw[cur]
			if b == nil {
				b = &strings.Builder{}
				raw[cur] = b
			}
			b.WriteString(line)
		}
	}

	d := &document{
		version: version,
		script:  script.String(),
		data:    make(map[section][]byte, len(raw)),
	}
	for sec, b := range raw {
		switch sec {
		case secLabel:
			d.data[sec] = decodeBase32(b.String())
		case secGfx:
			d.data[sec] = decodeHex(b.String(), true)
		default:
			d.data[sec] = decodeHex(b.String(), false)
		}
	}
	return d, nil
}

// sectionMarker reports whether line is a __<alnum>+__ marker, and if
// so which section it selects. Matching is by substring containment in
// a fixed priority order, so variants like __luax__ still land in the
// lua section.
func sectionMarker(line string) (section, bool) {
	if len(line) < 5 || !strings.HasPrefix(line, "__") || !strings.HasSuffix(line, "__") {
		return secNone, false
	}
	for _, ch := range line[2 : len(line)-2] {
		if !isAlnum(ch) {
			return secNone, false
		}
	}
	switch {
	case strings.Contains(line, "lua"):
		return secLua, true
	case strings.Contains(line, "gfx"):
		return secGfx, true
	case strings.Contains(line, "gff"):
		return secGff, true
	case strings.Contains(line, "map"):
		return secMap, true
	case strings.Contains(line, "sfx"):
		return secSfx, true
	case strings.Contains(line, "music"):
		return secMusic, true
	case strings.Contains(line, "label"):
		return secLabel, true
	}
	log.Printf("cart: unknown section name %q", line)
	return secDiscard, true
}

func isAlnum(ch rune) bool {
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

// decodeHex consumes hex digits two at a time, skipping any other
// character without disturbing the pairing. When swapped is set the
// two digits of each pair are reversed before parsing, the legacy
// nibble order of the gfx section.
func decodeHex(s string, swapped bool) []byte {
	out := make([]byte, 0, len(s)/2)
	var pending byte
	have := false
	for i := 0; i < len(s); i++ {
		v, ok := hexDigit(s[i])
		if !ok {
			continue
		}
		if !have {
			pending = v
			have = true
			continue
		}
		if swapped {
			out = append(out, v<<4|pending)
		} else {
			out = append(out, pending<<4|v)
		}
		have = false
	}
	return out
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// decodeBase32 decodes the label alphabet: 0-9 and a-v in either
// case, one pixel per character. Anything else is skipped.
func decodeBase32(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			out = append(out, ch-'0')
		case ch >= 'a' && ch <= 'v':
			out = append(out, ch-'a'+10)
		case ch >= 'A' && ch <= 'V':
			out = append(out, ch-'A'+10)
		}
	}
	return out
}
