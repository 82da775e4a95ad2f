package source

import "errors"

// ErrTooLarge is returned if decompressed data exceeds a configured
// limit.
var ErrTooLarge = errors.New("decompressed data exceeds size limit")

// SourceAccessError means that path exists but cannot be opened or
// read.
type SourceAccessError struct {
	Path string
	Err  error
}

func (s *SourceAccessError) Error() string {
	return "cannot access " + s.Path + ": " + s.Err.Error()
}

func (s *SourceAccessError) Unwrap() error {
	return s.Err
}

// DecodeError means that data is not a valid gzip stream or not a
// valid UTF-8 text.
type DecodeError struct {
	Err error
}

func (d *DecodeError) Error() string {
	return "cannot decode data: " + d.Err.Error()
}

func (d *DecodeError) Unwrap() error {
	return d.Err
}
