package rom

import "fmt"

// Region offsets and sizes of the console's fixed memory map. A loaded
// cartridge occupies one Memory; addresses below CodeOffset hold the
// cartridge data sections, the rest is runtime state.
const (
	GfxOffset         = 0x0000
	GfxSize           = 0x2000
	MapOverflowOffset = 0x1000 // aliases the upper half of the gfx region
	MapOverflowSize   = 0x1000
	MapOffset         = 0x2000
	MapSize           = 0x1000
	GfxFlagsOffset    = 0x3000
	GfxFlagsSize      = 0x100
	SongOffset        = 0x3100
	SongSize          = 0x100
	SfxOffset         = 0x3200
	SfxSize           = 0x1100
	CodeOffset        = 0x4300
	CodeSize          = 0x1b00
	PersistentOffset  = 0x5e00
	PersistentSize    = 0x100
	DrawStateOffset   = 0x5f00
	DrawStateSize     = 0x40
	HwStateOffset     = 0x5f40
	HwStateSize       = 0x40
	GpioOffset        = 0x5f80
	GpioSize          = 0x80
	ScreenOffset      = 0x6000
	ScreenSize        = 0x2000

	MemorySize = 0x8000
)

// Hardware registers referenced by the pixel read path.
const (
	ScreenPaletteOffset = 0x5f10 // 16 bytes, draw-state
	ScreenModeReg       = 0x5f2c
	RasterModeReg       = 0x5f5f
	RasterPaletteOffset = 0x5f60 // 16 bytes
	RasterBitsOffset    = 0x5f70 // 128-bit scanline mask
)

// Sizes of the packed sound structures.
const (
	SfxEntrySize  = 68 // 32 notes of 2 bytes plus 4 control bytes
	SongEntrySize = 4
	NumSfx        = 64
	NumSongs      = 64
)

// Memory is the canonical 0x8000-byte address space of a loaded
// cartridge. The zero value is a zeroed memory map, ready for use.
//
// The map-overflow region shares its bytes with the upper half of the
// gfx region. That aliasing is intentional legacy behavior; writes that
// can see both interpretations must go through MergeMapOverflow.
type Memory struct {
	data [MemorySize]byte
}

func (m *Memory) check(addr int) {
	if addr < 0 || addr >= MemorySize {
		panic(fmt.Sprintf("rom: address %#x out of range", addr))
	}
}

// Peek returns the byte at addr. Out-of-range addresses are a
// programming error and panic.
func (m *Memory) Peek(addr int) byte {
	m.check(addr)
	return m.data[addr]
}

// Poke sets the byte at addr. Out-of-range addresses panic.
func (m *Memory) Poke(addr int, v byte) {
	m.check(addr)
	m.data[addr] = v
}

// Bytes returns the full address space as a slice aliasing the backing
// array.
func (m *Memory) Bytes() []byte { return m.data[:] }

// SetBytes replaces the full address space. Input shorter than the
// memory is zero-padded, longer input is truncated.
func (m *Memory) SetBytes(b []byte) {
	n := copy(m.data[:], b)
	for i := n; i < MemorySize; i++ {
		m.data[i] = 0
	}
}

// Region slice accessors. Each aliases the backing array.

func (m *Memory) Gfx() []byte         { return m.data[GfxOffset : GfxOffset+GfxSize] }
func (m *Memory) MapOverflow() []byte { return m.data[MapOverflowOffset : MapOverflowOffset+MapOverflowSize] }
func (m *Memory) Map() []byte         { return m.data[MapOffset : MapOffset+MapSize] }
func (m *Memory) GfxFlags() []byte    { return m.data[GfxFlagsOffset : GfxFlagsOffset+GfxFlagsSize] }
func (m *Memory) SongData() []byte    { return m.data[SongOffset : SongOffset+SongSize] }
func (m *Memory) SfxData() []byte     { return m.data[SfxOffset : SfxOffset+SfxSize] }
func (m *Memory) Code() []byte        { return m.data[CodeOffset : CodeOffset+CodeSize] }
func (m *Memory) Persistent() []byte  { return m.data[PersistentOffset : PersistentOffset+PersistentSize] }
func (m *Memory) Gpio() []byte        { return m.data[GpioOffset : GpioOffset+GpioSize] }
func (m *Memory) Screen() []byte      { return m.data[ScreenOffset : ScreenOffset+ScreenSize] }

// MergeMapOverflow ORs src into the map-overflow region. Some legacy
// authoring tools wrote a full gfx section AND a full map section over
// the shared bytes; neither interpretation can be recovered, so
// overlapping content is merged rather than overwritten.
func (m *Memory) MergeMapOverflow(src []byte) {
	n := min(len(src), MapOverflowSize)
	for i := 0; i < n; i++ {
		m.data[MapOverflowOffset+i] |= src[i]
	}
}

// MapAt reads the map as the contiguous 128x64 grid the runtime sees:
// rows 0-31 from the map region, rows 32-63 from the overflow region.
func (m *Memory) MapAt(x, y int) byte {
	if x < 0 || x >= 128 || y < 0 || y >= 64 {
		panic(fmt.Sprintf("rom: map cell (%d,%d) out of range", x, y))
	}
	if y < 32 {
		return m.data[MapOffset+y*128+x]
	}
	return m.data[MapOverflowOffset+(y-32)*128+x]
}

// Song returns song entry i.
func (m *Memory) Song(i int) Song {
	if i < 0 || i >= NumSongs {
		panic(fmt.Sprintf("rom: song %d out of range", i))
	}
	var s Song
	copy(s[:], m.data[SongOffset+i*SongEntrySize:])
	return s
}

// SetSong stores song entry i.
func (m *Memory) SetSong(i int, s Song) {
	if i < 0 || i >= NumSongs {
		panic(fmt.Sprintf("rom: song %d out of range", i))
	}
	copy(m.data[SongOffset+i*SongEntrySize:], s[:])
}

func (m *Memory) sfxEntry(i int) []byte {
	if i < 0 || i >= NumSfx {
		panic(fmt.Sprintf("rom: sfx %d out of range", i))
	}
	off := SfxOffset + i*SfxEntrySize
	return m.data[off : off+SfxEntrySize]
}

// SfxNote returns note slot j of sfx entry i.
func (m *Memory) SfxNote(i, j int) Note {
	if j < 0 || j >= 32 {
		panic(fmt.Sprintf("rom: note slot %d out of range", j))
	}
	e := m.sfxEntry(i)
	return UnpackNote(e[j*2], e[j*2+1])
}

// SetSfxNote stores note slot j of sfx entry i.
func (m *Memory) SetSfxNote(i, j int, n Note) {
	if j < 0 || j >= 32 {
		panic(fmt.Sprintf("rom: note slot %d out of range", j))
	}
	e := m.sfxEntry(i)
	e[j*2], e[j*2+1] = n.Pack()
}

// SfxControl returns the 4 trailing control bytes of sfx entry i:
// editor mode, speed, loop start, loop end.
func (m *Memory) SfxControl(i int) (mode, speed, loopStart, loopEnd byte) {
	e := m.sfxEntry(i)
	return e[64], e[65], e[66], e[67]
}

// SetSfxControl stores the control bytes of sfx entry i.
func (m *Memory) SetSfxControl(i int, mode, speed, loopStart, loopEnd byte) {
	e := m.sfxEntry(i)
	e[64], e[65], e[66], e[67] = mode, speed, loopStart, loopEnd
}

// GfxPixel reads the 4-bit color of the 128x128 sprite sheet at (x, y).
func (m *Memory) GfxPixel(x, y int) byte {
	return getPix4(m.Gfx(), x, y)
}

// SetGfxPixel sets the 4-bit color of the sprite sheet at (x, y).
func (m *Memory) SetGfxPixel(x, y int, c byte) {
	setPix4(m.Gfx(), x, y, c)
}

// ScreenPixel reads the raw 4-bit framebuffer color at (x, y), before
// any screen-mode or palette transform. See Pixel for the transformed
// read.
func (m *Memory) ScreenPixel(x, y int) byte {
	return getPix4(m.Screen(), x, y)
}

// SetScreenPixel sets the raw framebuffer color at (x, y).
func (m *Memory) SetScreenPixel(x, y int, c byte) {
	setPix4(m.Screen(), x, y, c)
}

// getPix4 reads a 4-bit pixel from a 128x128 bitmap. Even x is the low
// nibble of its byte.
func getPix4(buf []byte, x, y int) byte {
	if x < 0 || x >= 128 || y < 0 || y >= 128 {
		panic(fmt.Sprintf("rom: pixel (%d,%d) out of range", x, y))
	}
	b := buf[y*64+x/2]
	if x&1 == 1 {
		return b >> 4
	}
	return b & 0x0f
}

func setPix4(buf []byte, x, y int, c byte) {
	if x < 0 || x >= 128 || y < 0 || y >= 128 {
		panic(fmt.Sprintf("rom: pixel (%d,%d) out of range", x, y))
	}
	i := y*64 + x/2
	if x&1 == 1 {
		buf[i] = buf[i]&0x0f | c<<4
	} else {
		buf[i] = buf[i]&0xf0 | c&0x0f
	}
}
