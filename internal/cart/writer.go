package cart

import (
	"fmt"
	"strings"

	"github.com/smallcaps/picocart/internal/charset"
	"github.com/smallcaps/picocart/internal/rom"
)

const base32Alphabet = "0123456789abcdefghijklmnopqrstuv"

// encodeP8 renders the cartridge as a text container. Data sections
// are trimmed to their last line holding a non-zero byte and omitted
// entirely when empty; the script section is never trimmed and is
// omitted only when the script text is empty. The map-overflow bytes
// are serialized once, as graphics, since they share storage with the
// upper half of the gfx region.
func (c *Cartridge) encodeP8() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pico-8 cartridge // http://www.pico-8.com\nversion %d\n", Version)

	if c.script != "" {
		b.WriteString("__lua__\n")
		text := charset.ToUTF8(c.script)
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteByte('\n')
		}
	}

	// gfx: 64 bytes (128 pixels) per line, nibble order swapped back
	gfx := c.mem.Gfx()
	for line := 0; line < trimLines(gfx, 64); line++ {
		if line == 0 {
			b.WriteString("__gfx__\n")
		}
		for _, v := range gfx[line*64 : (line+1)*64] {
			fmt.Fprintf(&b, "%02x", v<<4|v>>4)
		}
		b.WriteByte('\n')
	}

	if len(c.label) >= LabelWidth*LabelHeight {
		b.WriteString("__label__\n")
		for i := 0; i < LabelWidth*LabelHeight; i++ {
			b.WriteByte(base32Alphabet[c.label[i]&0x1f])
			if (i+1)%LabelWidth == 0 {
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}

	gff := c.mem.GfxFlags()
	for line := 0; line < trimLines(gff, 128); line++ {
		if line == 0 {
			b.WriteString("__gff__\n")
		}
		for _, v := range gff[line*128 : (line+1)*128] {
			fmt.Fprintf(&b, "%02x", v)
		}
		b.WriteByte('\n')
	}

	mapData := c.mem.Map()
	for line := 0; line < trimLines(mapData, 128); line++ {
		if line == 0 {
			b.WriteString("__map__\n")
		}
		for _, v := range mapData[line*128 : (line+1)*128] {
			fmt.Fprintf(&b, "%02x", v)
		}
		b.WriteByte('\n')
	}

	// sfx: one entry per line, control bytes first, then 32 notes of
	// 5 hex digits each
	for i := 0; i < trimLines(c.mem.SfxData(), rom.SfxEntrySize); i++ {
		if i == 0 {
			b.WriteString("__sfx__\n")
		}
		mode, speed, loopStart, loopEnd := c.mem.SfxControl(i)
		fmt.Fprintf(&b, "%02x%02x%02x%02x", mode, speed, loopStart, loopEnd)
		for j := 0; j < 32; j++ {
			b.WriteString(fmt.Sprintf("%05x", c.mem.SfxNote(i, j).TextValue()))
		}
		b.WriteByte('\n')
	}

	// music: one entry per line, flags then the four 7-bit sfx indices
	for i := 0; i < trimLines(c.mem.SongData(), rom.SongEntrySize); i++ {
		if i == 0 {
			b.WriteString("__music__\n")
		}
		s := c.mem.Song(i)
		fmt.Fprintf(&b, "%02x %02x%02x%02x%02x\n",
			s.Flags(), s.Sfx(0), s.Sfx(1), s.Sfx(2), s.Sfx(3))
	}

	b.WriteByte('\n')
	return b.String()
}

// trimLines returns the number of stride-sized lines up to and
// including the last one containing a non-zero byte.
func trimLines(region []byte, stride int) int {
	lines := 0
	for i, v := range region {
		if v != 0 {
			lines = i/stride + 1
		}
	}
	return lines
}
