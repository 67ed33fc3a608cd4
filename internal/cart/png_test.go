package cart

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/smallcaps/picocart/internal/rom"
)

func encodeToPNG(t *testing.T, c *Cartridge) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := c.writePNG(&buf); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	return buf.Bytes()
}

func TestPNGRoundTrip(t *testing.T) {
	c := buildCart(t)
	data := encodeToPNG(t, c)

	var got Cartridge
	if err := got.loadPNG(data); err != nil {
		t.Fatalf("loadPNG: %v", err)
	}

	// everything below the code region is carried bit-exactly
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

	// the visible label survives through nearest-palette matching
	if len(got.Label()) != LabelWidth*LabelHeight {
		t.Fatalf("label missing")
	}
	for i := range c.Label() {
		if got.Label()[i] != c.Label()[i] {
			t.Fatalf("label mismatch at %d: %d != %d", i, got.Label()[i], c.Label()[i])
		}
	}
}

func TestPNGBinaryTrailer(t *testing.T) {
	var c Cartridge
	data := encodeToPNG(t, &c)

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pix := toNRGBA(img)
	// version byte rides pixel MemorySize; the carrier's clean low
	// bits make the 4 minor-version bytes decode as zero
	n := rom.MemorySize
	p := pix.Pix[n*4 : n*4+4]
	major := (p[3]&3)<<6 | (p[0]&3)<<4 | (p[1]&3)<<2 | p[2]&3
	if major != Version {
		t.Fatalf("trailer version got %d want %d", major, Version)
	}
	for n := rom.MemorySize + 1; n < rom.MemorySize+binTrailerSize; n++ {
		p := pix.Pix[n*4 : n*4+4]
		if v := (p[3]&3)<<6 | (p[0]&3)<<4 | (p[1]&3)<<2 | p[2]&3; v != 0 {
			t.Fatalf("minor trailer byte %d got %02x want 0", n-rom.MemorySize, v)
		}
	}
}

func TestPNGWrongDimensions(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 100, 100))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var c Cartridge
	if err := c.loadPNG(buf.Bytes()); !errors.Is(err, ErrBadDimensions) {
		t.Fatalf("got %v want ErrBadDimensions", err)
	}
}

func TestPNGNotAnImage(t *testing.T) {
	var c Cartridge
	if err := c.loadPNG([]byte("not a png")); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestBlankCarrierCleanLowBits(t *testing.T) {
	img := blankCarrier()
	for i, v := range img.Pix {
		if v&3 != 0 {
			t.Fatalf("carrier channel %d has low bits set: %02x", i, v)
		}
	}
}
