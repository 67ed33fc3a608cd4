package cart

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallcaps/picocart/internal/rom"
)

// buildCart populates every emittable section with non-trivial data.
func buildCart(t *testing.T) *Cartridge {
	t.Helper()
	var c Cartridge
	m := c.Memory()

	for i := 0; i < 512; i++ {
		m.Gfx()[i] = byte(i)
	}
	for i := 0; i < 64; i++ {
		m.GfxFlags()[i] = byte(i * 3)
	}
	for i := 0; i < 256; i++ {
		m.Map()[i] = byte(255 - i)
	}
	for i := 0; i < 8; i++ {
		m.SetSong(i, rom.SongFromText(byte(i%16), [4]byte{byte(i), byte(i + 1), byte(i + 2), byte(i + 3)}))
	}
	for i := 0; i < 4; i++ {
		m.SetSfxControl(i, 0, byte(8+i), 0, 31)
		for j := 0; j < 32; j++ {
			m.SetSfxNote(i, j, rom.Note{
				Key:        byte((i*32 + j) % 64),
				Instrument: byte(j % 8),
				Volume:     byte(j % 8),
				Effect:     byte(j % 16),
			})
		}
	}

	label := make([]byte, LabelWidth*LabelHeight)
	for i := range label {
		label[i] = byte(i % 32)
	}
	c.SetLabel(label)
	c.SetScript("x=0\nfunction _update()\n x+=1\nend\n")
	return &c
}

func TestSaveLoadRoundTripText(t *testing.T) {
	c := buildCart(t)
	path := filepath.Join(t.TempDir(), "out.p8")
	if err := c.SaveP8(path); err != nil {
		t.Fatalf("SaveP8: %v", err)
	}

	var got Cartridge
	if err := got.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// the text format carries everything below the code region
	a := c.Memory().Bytes()[:rom.CodeOffset]
	b := got.Memory().Bytes()[:rom.CodeOffset]
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("memory mismatch at %#x: %02x != %02x", i, a[i], b[i])
		}
	}
	if got.Script() != c.Script() {
		t.Fatalf("script got %q want %q", got.Script(), c.Script())
	}
	if len(got.Label()) != LabelWidth*LabelHeight {
		t.Fatalf("label lost: %d pixels", len(got.Label()))
	}
	for i := range c.Label() {
		if got.Label()[i] != c.Label()[i] {
			t.Fatalf("label mismatch at %d", i)
		}
	}
}

func TestEncodeEmptyCartridge(t *testing.T) {
	var c Cartridge
	out := c.encodeP8()
	if !strings.HasPrefix(out, "pico-8 cartridge // ") {
		t.Fatalf("missing header: %q", out)
	}
	for _, marker := range []string{"__lua__", "__gfx__", "__gff__", "__map__", "__sfx__", "__music__", "__label__"} {
		if strings.Contains(out, marker) {
			t.Fatalf("empty cartridge emitted %s", marker)
		}
	}
}

func TestEncodeTrimsTrailingZeroLines(t *testing.T) {
	var c Cartridge
	c.Memory().Gfx()[70] = 0x01 // second 64-byte line
	out := c.encodeP8()

	gfxAt := strings.Index(out, "__gfx__\n")
	if gfxAt < 0 {
		t.Fatalf("gfx section missing")
	}
	body := out[gfxAt+len("__gfx__\n"):]
	if end := strings.Index(body, "__"); end >= 0 {
		body = body[:end]
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("gfx emitted %d lines want 2", len(lines))
	}
	for _, l := range lines {
		if len(l) != 128 {
			t.Fatalf("gfx line length %d want 128", len(l))
		}
	}
}

// A trimmed region must reload as all zeros, not leftover data.
func TestTrimmedRegionsReloadAsZero(t *testing.T) {
	var c Cartridge
	c.Memory().Gfx()[0] = 0x5a
	path := filepath.Join(t.TempDir(), "out.p8")
	if err := c.SaveP8(path); err != nil {
		t.Fatalf("SaveP8: %v", err)
	}
	var got Cartridge
	if err := got.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Memory().Gfx()[0] != 0x5a {
		t.Fatalf("kept byte lost")
	}
	for i, v := range got.Memory().Map() {
		if v != 0 {
			t.Fatalf("trimmed map region has %02x at %d", v, i)
		}
	}
	for i, v := range got.Memory().SfxData() {
		if v != 0 {
			t.Fatalf("trimmed sfx region has %02x at %d", v, i)
		}
	}
}

func TestLuaOmittedOnlyWhenEmpty(t *testing.T) {
	var c Cartridge
	if strings.Contains(c.encodeP8(), "__lua__") {
		t.Fatalf("empty script emitted __lua__")
	}
	c.SetScript("print(1)")
	out := c.encodeP8()
	if !strings.Contains(out, "__lua__\nprint(1)\n") {
		t.Fatalf("script section wrong: %q", out)
	}
}
