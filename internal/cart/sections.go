package cart

import (
	"github.com/smallcaps/picocart/internal/rom"
)

// Size of one sfx entry in the text container: 4 control bytes plus 32
// notes at 2.5 bytes each.
const sfxTextEntrySize = 4 + 32*5/2

// applyDocument packs the decoded section buffers into the memory
// layout. Buffers shorter than their destination leave the remainder
// zeroed; longer buffers are truncated.
func (c *Cartridge) applyDocument(d *document) {
	copy(c.mem.Gfx(), d.data[secGfx])
	copy(c.mem.GfxFlags(), d.data[secGff])

	// Map data, plus the optional legacy second block that shares its
	// bytes with the gfx region. Old authoring tools could emit both a
	// full gfx section and a full map section over the shared bytes,
	// so the overflow is OR-merged, never overwritten.
	mapData := d.data[secMap]
	copy(c.mem.Map(), mapData)
	if len(mapData) > rom.MapSize {
		c.mem.MergeMapOverflow(mapData[rom.MapSize:])
	}

	// Song entries: 5 text bytes become 4, the leading flags byte
	// scattered over the top bits of the channel bytes.
	mus := d.data[secMusic]
	for i := 0; i < min(rom.NumSongs, len(mus)/5); i++ {
		var sfx [4]byte
		copy(sfx[:], mus[i*5+1:i*5+5])
		c.mem.SetSong(i, rom.SongFromText(mus[i*5], sfx))
	}

	// Sfx entries: 84 text bytes become 68. Each pair of notes shares
	// 5 bytes; a note is read through a 3-byte window as a 20-bit
	// value, realigned by 4 bits for even slots.
	sfxData := d.data[secSfx]
	for i := 0; i < min(rom.NumSfx, len(sfxData)/sfxTextEntrySize); i++ {
		e := sfxData[i*sfxTextEntrySize : (i+1)*sfxTextEntrySize]
		c.mem.SetSfxControl(i, e[0], e[1], e[2], e[3])
		for j := 0; j < 32; j++ {
			off := 4 + j*5/2
			w := uint32(e[off])<<16 | uint32(e[off+1])<<8 | uint32(e[off+2])
			if j&1 == 1 {
				w &= 0xfffff
			} else {
				w >>= 4
			}
			c.mem.SetSfxNote(i, j, rom.NoteFromText(w))
		}
	}

	if lab := d.data[secLabel]; len(lab) > 0 {
		n := min(len(lab), LabelWidth*LabelHeight)
		c.label = append([]byte(nil), lab[:n]...)
	}
}
