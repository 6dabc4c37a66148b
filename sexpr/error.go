package sexpr

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF        = errors.New("unexpected end of input")
	ErrUnmatchedParen       = errors.New("unmatched parenthesis")
	ErrUnexpectedCloseParen = errors.New("unexpected closing parenthesis")
	ErrTrailingInput        = errors.New("trailing input")
	ErrTooDeep              = errors.New("expression nested too deeply")
)

// Error represents a reader error with the byte offset of the token
// where it was detected.
type Error struct {
	Err        error
	Offset     int
	Incomplete bool
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(err error, offset int) error {
	return &Error{Err: err, Offset: offset}
}

func newIncompleteError(err error, offset int) error {
	return &Error{
		Err:        err,
		Offset:     offset,
		Incomplete: true,
	}
}

// IsIncomplete reports whether the supplied error means more input could
// complete the expression.
func IsIncomplete(err error) bool {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Incomplete
	}
	return false
}
