package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smallcaps/picocart/internal/rom"
)

// loadJS extracts a cartridge from a script container: a web export
// holding the binary container as a JSON-style array of byte values,
// `var <name>=[..]`, somewhere in the text.
func (c *Cartridge) loadJS(data []byte) error {
	text := string(data)

	at := strings.Index(text, "var ")
	if at < 0 {
		return fmt.Errorf("cart: %w", ErrNoCartData)
	}
	open := strings.Index(text[at:], "[")
	if open < 0 {
		return fmt.Errorf("cart: %w", ErrNoCartData)
	}
	open += at
	end := strings.Index(text[open:], "]")
	if end < 0 {
		return fmt.Errorf("cart: %w", ErrNoCartData)
	}
	end += open

	dec := json.NewDecoder(strings.NewReader(text[open : end+1]))
	dec.UseNumber()
	var values []any
	if err := dec.Decode(&values); err != nil {
		return fmt.Errorf("cart: cart data array: %w", ErrNoCartData)
	}

	// Values are collected until the array runs out or an element
	// stops converting; bytes past that point stay zero.
	bin := make([]byte, rom.MemorySize+binTrailerSize)
	for i, v := range values {
		if i >= len(bin) {
			break
		}
		num, ok := v.(json.Number)
		if !ok {
			break
		}
		x, err := num.Int64()
		if err != nil || x < 0 {
			break
		}
		bin[i] = byte(x)
	}
	return c.setBinary(bin)
}
