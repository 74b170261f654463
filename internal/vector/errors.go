package vector

import (
	"errors"
	"fmt"
)

// Causes wrapped by LoadError.
var (
	ErrMalformedLine     = errors.New("malformed line")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrBadHeader         = errors.New("invalid header")
	ErrTruncated         = errors.New("entry count does not match header")
	ErrEmpty             = errors.New("no vectors in file")
	ErrUnknownFormat     = errors.New("unknown vector file format")
)

// LoadError reports why a vector file could not be turned into a Space.
// Line is the 1-based line (text) or entry (binary) number, 0 when the
// failure is not tied to a position.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// UnknownTokenError is returned by queries naming a token the space does not contain.
type UnknownTokenError struct {
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q", e.Token)
}
