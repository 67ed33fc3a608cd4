// Package code compresses and decompresses the script text stored in a
// cartridge's code region. The two operations round-trip exactly for
// any text the console's character set can produce.
//
// Storage picks the shorter of two forms: plain zero-terminated text,
// or a magic header followed by a deflate stream. The caller is
// responsible for checking the result against the code region's
// capacity.
package code

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// magic marks a deflate-compressed code region. The leading zero byte
// keeps it distinct from plain text, which never starts with NUL.
var magic = []byte{0x00, 'c', 'z', 0x00}

// Compress encodes script text into its code-region byte form.
func Compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic)
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}

	// Plain text wins when it is no larger. The terminator is implicit
	// in the zero-filled region unless the text fills it exactly, so
	// plain form needs len(text) bytes, not len(text)+1.
	if !strings.ContainsRune(text, 0) && len(text) <= buf.Len() {
		return []byte(text), nil
	}
	return buf.Bytes(), nil
}

// Decompress decodes a code region back into script text. The region
// is the full fixed-size slice; plain text ends at the first NUL or at
// the end of the region.
func Decompress(region []byte) (string, error) {
	if bytes.HasPrefix(region, magic) {
		r := flate.NewReader(bytes.NewReader(region[len(magic):]))
		defer r.Close()
		text, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("code: corrupt compressed region: %w", err)
		}
		return string(text), nil
	}
	if i := bytes.IndexByte(region, 0); i >= 0 {
		return string(region[:i]), nil
	}
	return string(region), nil
}
