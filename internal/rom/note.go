package rom

// Note is one sound-effect note slot: 16 bits packed as key (6 bits),
// instrument (3 bits), volume (3 bits), effect (4 bits).
type Note struct {
	Key        byte // pitch, 0-63
	Instrument byte // 0-7
	Volume     byte // 0-7
	Effect     byte // 0-15
}

// Pack encodes the note into its two-byte in-memory form. The layout
// is little-endian bit order: key occupies the low 6 bits of the first
// byte, the instrument straddles the byte boundary.
func (n Note) Pack() (lo, hi byte) {
	lo = n.Key&0x3f | n.Instrument<<6
	hi = n.Instrument>>2&0x01 | n.Volume<<1&0x0e | n.Effect<<4
	return lo, hi
}

// UnpackNote decodes the two-byte in-memory form.
func UnpackNote(lo, hi byte) Note {
	return Note{
		Key:        lo & 0x3f,
		Instrument: hi&0x01<<2 | lo>>6,
		Volume:     hi >> 1 & 0x07,
		Effect:     hi >> 4 & 0x0f,
	}
}

// NoteFromText decodes the 20-bit value a note occupies in the text
// container: key in bits 12-17, instrument in 8-10, volume in 4-6,
// effect in 0-3.
func NoteFromText(v uint32) Note {
	return Note{
		Key:        byte(v >> 12 & 0x3f),
		Instrument: byte(v >> 8 & 0x07),
		Volume:     byte(v >> 4 & 0x07),
		Effect:     byte(v & 0x0f),
	}
}

// TextValue encodes the note as its 20-bit text-container value.
func (n Note) TextValue() uint32 {
	return uint32(n.Key&0x3f)<<12 | uint32(n.Instrument&0x07)<<8 |
		uint32(n.Volume&0x07)<<4 | uint32(n.Effect&0x0f)
}

// Song is one music-sequencer row: four channel bytes, each a 7-bit
// sound-effect index with a flag in the top bit (start, loop, stop,
// mode for channels 0-3 respectively).
type Song [SongEntrySize]byte

// Sfx returns the sound-effect index for channel n.
func (s Song) Sfx(n int) byte { return s[n] & 0x7f }

func (s Song) Start() bool { return s[0]&0x80 != 0 }
func (s Song) Loop() bool  { return s[1]&0x80 != 0 }
func (s Song) Stop() bool  { return s[2]&0x80 != 0 }
func (s Song) Mode() bool  { return s[3]&0x80 != 0 }

// Flags gathers the four channel flags into the low nibble used by the
// text container: start=bit 0, loop=bit 1, stop=bit 2, mode=bit 3.
func (s Song) Flags() byte {
	var f byte
	for k := 0; k < SongEntrySize; k++ {
		f |= s[k] >> 7 << k
	}
	return f
}

// SongFromText decodes the 5-byte text-container form: a flags byte
// followed by four sound-effect indices. Flag bit k becomes the top
// bit of channel byte k.
func SongFromText(flags byte, sfx [4]byte) Song {
	var s Song
	for k := 0; k < SongEntrySize; k++ {
		s[k] = sfx[k] | flags<<(7-k)&0x80
	}
	return s
}
