package svgicon

import (
	"errors"
	"fmt"
)

// ErrorMode is the for setting how the parser reacts to unsupported
// elements and malformed path data
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements, logging a warning
	WarnErrorMode
	// StrictErrorMode aborts the parsing on unsupported elements
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", m)
	}
}

// ParseErrorMode is the inverse of ErrorMode.String
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("invalid error mode %q", s)
}

var (
	// ErrInvalidThreshold is returned when the sampling density is not strictly positive.
	ErrInvalidThreshold = errors.New("threshold must be strictly positive")

	errParamMismatch = errors.New("param mismatch")
)

// InvalidInputError is returned when the document is not an SVG image.
// The whole compilation is aborted.
type InvalidInputError struct {
	Reason string
	Err    error // underlying decoding error, if any
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid svg input: %s: %s", e.Reason, e.Err)
	}
	return "invalid svg input: " + e.Reason
}

func (e *InvalidInputError) Unwrap() error { return e.Err }
