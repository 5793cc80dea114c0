package processor

import "errors"

// Sentinel errors for per-item failures. Callers match with errors.Is.
var (
	// ErrInputNotFound means the source path does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrUnsupportedFormat means the input extension is outside the
	// supported set (.jpg, .jpeg, .png, .webp).
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrDecode means the file exists but could not be decoded.
	ErrDecode = errors.New("image decode failed")
)
