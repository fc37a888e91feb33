package session

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every ParseError.
	ErrParse = errors.New("parse error")
	// ErrInvalidWindow matches every WindowError.
	ErrInvalidWindow = errors.New("invalid window")
)

// ParseError reports a buffer that could not be converted to its typed value.
type ParseError struct {
	Field Field
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// WindowError reports a committed window edit that would leave an axis empty.
type WindowError struct {
	Field Field
	Min   float64
	Max   float64
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: minimum %g must be below maximum %g", e.Field, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrInvalidWindow) true for any WindowError.
func (e *WindowError) Is(target error) bool {
	return target == ErrInvalidWindow
}
