package cart

import "errors"

// Structural load/save failures. Callers test with errors.Is; anything
// else wrapping a file error is an I/O failure. Recoverable content
// anomalies (unknown sections, stray characters, short sections) are
// not errors at all.
var (
	// ErrUnsupportedFormat is returned for file extensions no decoder
	// claims. There is no fallback across formats.
	ErrUnsupportedFormat = errors.New("unsupported cartridge format")

	// ErrMissingHeader is returned when a text container lacks the
	// two-line cartridge header.
	ErrMissingHeader = errors.New("missing cartridge header")

	// ErrBadDimensions is returned when a carrier image is not the
	// exact cartridge size.
	ErrBadDimensions = errors.New("carrier image is not 160x205")

	// ErrNoCartData is returned when a script container holds no
	// parseable data array.
	ErrNoCartData = errors.New("no cartridge data literal found")

	// ErrCodeOverflow is returned when compressed code does not fit
	// the code region. Truncating would corrupt the script on the
	// next load, so the save fails instead.
	ErrCodeOverflow = errors.New("compressed code exceeds code region")
)
