package cart

import (
	"errors"
	"testing"
)

func TestParseHeaderOnly(t *testing.T) {
	d, err := parseP8("pico-8 cartridge // http://www.pico-8.com\nversion 41\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.version != 41 {
		t.Fatalf("version got %d want 41", d.version)
	}
	if d.script != "" || len(d.data) != 0 {
		t.Fatalf("expected empty document, got script=%q sections=%d", d.script, len(d.data))
	}
}

func TestParseMissingHeader(t *testing.T) {
	for _, doc := range []string{
		"",
		"__gfx__\n00ff\n",
		"pico-8 cartridge\n", // no version line
		"version 8\n",
	} {
		if _, err := parseP8(doc); !errors.Is(err, ErrMissingHeader) {
			t.Fatalf("doc %q: got %v want ErrMissingHeader", doc, err)
		}
	}
}

func TestParseBOMAndPrelude(t *testing.T) {
	d, err := parseP8("\uFEFFpico-8 cartridge // x\nversion 8\nstray text\n__gff__\n01\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := d.data[secGff]; len(got) != 1 || got[0] != 0x01 {
		t.Fatalf("gff got %v want [01]", got)
	}
}

func TestParseVersionZeroDigits(t *testing.T) {
	// "version " with no digits parses as version 0, which is valid
	d, err := parseP8("pico-8 cartridge // x\nversion \n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.version != 0 {
		t.Fatalf("version got %d want 0", d.version)
	}
}

func TestParseLuaVerbatim(t *testing.T) {
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__lua__\nprint(1)\r\n\nprint(2)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.script != "print(1)\n\nprint(2)" {
		t.Fatalf("script got %q", d.script)
	}
}

func TestParseHexSkipsStrayCharacters(t *testing.T) {
	// non-hex characters are skipped without breaking the pairing:
	// "a b" pairs as "ab"
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__map__\na b\ncd|ef\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := d.data[secMap]
	want := []byte{0xab, 0xcd, 0xef}
	if len(got) != len(want) {
		t.Fatalf("map got %x want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("map got %x want %x", got, want)
		}
	}
}

func TestParseGfxNibbleSwap(t *testing.T) {
	// the gfx section reverses each hex pair: "1a" parses as a1
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__gfx__\n1a00ff\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := d.data[secGfx]
	want := []byte{0xa1, 0x00, 0xff}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gfx got %x want %x", got, want)
		}
	}
}

func TestParseBase32Label(t *testing.T) {
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__label__\n09avAV\nwz!.\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := d.data[secLabel]
	want := []byte{0, 9, 10, 31, 10, 31}
	if len(got) != len(want) {
		t.Fatalf("label got %v want %v (w-z and punctuation skipped)", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label got %v want %v", got, want)
		}
	}
}

func TestParseUnknownSectionDiscarded(t *testing.T) {
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__meta__\nffff\n__gff__\n01\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(d.data) != 1 {
		t.Fatalf("unknown section data leaked: %v", d.data)
	}
	if got := d.data[secGff]; len(got) != 1 || got[0] != 0x01 {
		t.Fatalf("gff got %v want [01]", got)
	}
}

func TestParseMarkerSubstringPriority(t *testing.T) {
	// tag matching is by containment: a __luax__ marker still selects
	// the script section
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__luax__\nhi\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.script != "hi\n" {
		t.Fatalf("script got %q want %q", d.script, "hi\n")
	}
}

func TestParseRepeatedSectionsConcatenate(t *testing.T) {
	d, err := parseP8("pico-8 cartridge // x\nversion 8\n__gff__\n01\n__map__\n99\n__gff__\n02\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := d.data[secGff]
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("gff got %v want [1 2]", got)
	}
}

func TestSectionMarkerShape(t *testing.T) {
	for line, want := range map[string]bool{
		"__gfx__":      true,
		"__meta2__":    true,
		"__gfx__ ":     false, // trailing content makes it a data line
		"__a_b__":      false,
		"____":         false,
		"data __gfx__": false,
	} {
		if _, ok := sectionMarker(line); ok != want {
			t.Fatalf("marker %q got %v want %v", line, ok, want)
		}
	}
}
