package cmsgpack

import (
	"errors"
	"fmt"
)

// Sentinel decode errors, per the reference cursor's error taxonomy:
// MP_CUR_ERROR_EOF and MP_CUR_ERROR_BADFMT.
var (
	// ErrEOF means fewer bytes remained than the format in progress required.
	ErrEOF = errors.New("cmsgpack: unexpected end of input")
	// ErrBadFormat means a tag byte matched no recognized format family.
	ErrBadFormat = errors.New("cmsgpack: unrecognized tag byte")
	// ErrTooLarge names a length or size prefix that would overflow a Go
	// int on this platform. Decode does not return it: length prefixes are
	// converted to int without an overflow check.
	ErrTooLarge = errors.New("cmsgpack: length exceeds maximum representable size")
)

// DecodeError reports where in the input a decode failed.
type DecodeError struct {
	Offset int   // byte offset of the tag that triggered the failure
	Tag    byte  // the tag byte being processed, if any was read
	Err    error // ErrEOF or ErrBadFormat
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cmsgpack: decode failed at offset %d (tag 0x%02x): %v", e.Offset, e.Tag, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
