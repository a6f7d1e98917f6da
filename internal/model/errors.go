package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the print pipeline can produce.
type ErrorKind string

const (
	ErrSizeOutOfRange      ErrorKind = "SIZE_OUT_OF_RANGE"
	ErrUnsupportedDPI      ErrorKind = "UNSUPPORTED_DPI"
	ErrCanvasTooSmall      ErrorKind = "CANVAS_TOO_SMALL"
	ErrLayoutDoesNotFit    ErrorKind = "LAYOUT_DOES_NOT_FIT"
	ErrArtifactWriteFailed ErrorKind = "ARTIFACT_WRITE_FAILED"
	ErrPrinterUnavailable  ErrorKind = "PRINTER_UNAVAILABLE"
	ErrSubmissionFailed    ErrorKind = "SUBMISSION_FAILED"
	ErrDispatchTimeout     ErrorKind = "DISPATCH_TIMEOUT"
)

// PrintError carries an ErrorKind alongside a human-readable message.
type PrintError struct {
	Kind    ErrorKind
	Message string
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a PrintError with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *PrintError {
	return &PrintError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or "" if err is not a PrintError.
func KindOf(err error) ErrorKind {
	var pe *PrintError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
