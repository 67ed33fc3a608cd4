// Package cart imports and exports cartridges for the fantasy console.
// The four container formats (text, raw script, steganographic image,
// embedded script literal) all decode to the same canonical memory
// layout and re-encode losslessly, modulo the documented trimming
// rules of the text format.
package cart

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/smallcaps/picocart/internal/charset"
	"github.com/smallcaps/picocart/internal/code"
	"github.com/smallcaps/picocart/internal/rom"
)

// Version is the container format version written to saved cartridges.
const Version = 8

// A binary container carries the full memory layout plus a version
// trailer: 5 bytes are consumed on decode (major, 4-byte big-endian
// minor) but only the major byte is produced on encode. The asymmetry
// is legacy behavior and is preserved.
const binTrailerSize = 5

// Cartridge is one loaded console program: a memory layout, the
// decoded (never compressed) script text in the console's character
// set, and an optional label image of palette indices.
//
// A Cartridge is populated atomically by one load and serialized by
// one save. It is not safe for concurrent use during either.
type Cartridge struct {
	mem    rom.Memory
	script string
	label  []byte
}

// Memory returns the cartridge's memory layout.
func (c *Cartridge) Memory() *rom.Memory { return &c.mem }

// Script returns the decoded script text in the console charset.
func (c *Cartridge) Script() string { return c.script }

// SetScript replaces the script text.
func (c *Cartridge) SetScript(s string) { c.script = s }

// Label returns the label pixels, LabelWidth*LabelHeight palette
// indices, or nil when the cartridge has no label.
func (c *Cartridge) Label() []byte { return c.label }

// SetLabel replaces the label pixels.
func (c *Cartridge) SetLabel(pix []byte) { c.label = pix }

// Load reads the cartridge at path, dispatching on the file extension
// (case-insensitive, no fallback across formats): .p8 text, .lua raw
// script, .png carrier image, .js script literal. On failure the
// cartridge is left untouched.
func (c *Cartridge) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}

	var loaded Cartridge
	switch strings.ToLower(filepath.Ext(path)) {
	case ".p8":
		err = loaded.loadP8(data)
	case ".lua":
		err = loaded.loadLua(data)
	case ".png":
		err = loaded.loadPNG(data)
	case ".js":
		err = loaded.loadJS(data)
	default:
		return fmt.Errorf("cart: %q: %w", filepath.Ext(path), ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}
	*c = loaded
	return nil
}

// SaveP8 writes the cartridge in the text container format.
func (c *Cartridge) SaveP8(path string) error {
	return os.WriteFile(path, []byte(c.encodeP8()), 0644)
}

// SavePNG writes the cartridge as a steganographic carrier image.
func (c *Cartridge) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	if err := c.writePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Binary returns the binary container: the memory layout with the
// code region replaced by the compressed script, followed by the
// version byte. Code that cannot fit the region is an ErrCodeOverflow
// failure, never a truncation.
func (c *Cartridge) Binary() ([]byte, error) {
	comp, err := code.Compress(c.script)
	if err != nil {
		return nil, fmt.Errorf("cart: %w", err)
	}
	if len(comp) > rom.CodeSize {
		return nil, fmt.Errorf("cart: code is %d bytes, capacity %d: %w",
			len(comp), rom.CodeSize, ErrCodeOverflow)
	}
	log.Printf("cart: compressed code length: %d/%d", len(comp), rom.CodeSize)

	bin := make([]byte, rom.MemorySize, rom.MemorySize+1)
	copy(bin, c.mem.Bytes()[:rom.CodeOffset])
	copy(bin[rom.CodeOffset:], comp)
	return append(bin, Version), nil
}

// loadP8 decodes the text container.
func (c *Cartridge) loadP8(data []byte) error {
	d, err := parseP8(string(data))
	if err != nil {
		return err
	}
	c.script = charset.ToConsole(d.script)
	c.applyDocument(d)
	log.Printf("cart: version=%d code=%d gfx=%d gff=%d map=%d sfx=%d music=%d label=%d",
		d.version, len(c.script),
		len(d.data[secGfx]), len(d.data[secGff]), len(d.data[secMap]),
		len(d.data[secSfx]), len(d.data[secMusic]), len(d.data[secLabel]))
	return nil
}

// loadLua loads a bare script file: the memory layout stays zeroed.
func (c *Cartridge) loadLua(data []byte) error {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	c.script = charset.ToConsole(text)
	return nil
}

// setBinary populates the cartridge from a binary container. The
// script text is decompressed out of the code region; it is never kept
// compressed in the live cartridge.
func (c *Cartridge) setBinary(bin []byte) error {
	full := make([]byte, rom.MemorySize+binTrailerSize)
	copy(full, bin)
	c.mem.SetBytes(full[:rom.MemorySize])

	script, err := code.Decompress(c.mem.Code())
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	c.script = script

	major := full[rom.MemorySize]
	minor := binary.BigEndian.Uint32(full[rom.MemorySize+1:])
	log.Printf("cart: version=%d.%d code=%d chars", major, minor, len(c.script))
	return nil
}
