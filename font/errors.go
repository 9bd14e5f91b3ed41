package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyData is returned when font data is empty.
	ErrEmptyData = errors.New("font: empty font data")

	// ErrFaceIndex is returned when a collection has no face at the
	// requested index.
	ErrFaceIndex = errors.New("font: face index out of range")

	// ErrUnsupportedBitmap is returned when an embedded bitmap uses a
	// format that cannot be decoded.
	ErrUnsupportedBitmap = errors.New("font: unsupported bitmap format")
)

// ParseError is returned when font data cannot be parsed.
type ParseError struct {
	ID  ID
	Err error
}

func (e *ParseError) Error() string {
	return "font: parse " + string(e.ID) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
