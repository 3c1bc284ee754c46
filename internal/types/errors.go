package types

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedHeader indicates fewer than 8 bytes remained for a box header.
	ErrTruncatedHeader = errors.New("box: truncated header")
	// ErrBoxTooSmall indicates a declared box size below the 8-byte header.
	ErrBoxTooSmall = errors.New("box: declared size smaller than header")
	// ErrPayloadOverrun indicates a leaf decoder read would pass the box payload.
	ErrPayloadOverrun = errors.New("box: read past payload")
	// ErrDepthExceeded indicates container nesting beyond the configured limit.
	ErrDepthExceeded = errors.New("box: nesting too deep")
	// ErrExtentOverrun indicates a box whose declared size passes its enclosing extent.
	ErrExtentOverrun = errors.New("box: extends past enclosing extent")
)

// BoxError ties an error kind to the box and offset where it happened.
// It unwraps to the kind, so callers match it with errors.Is.
type BoxError struct {
	Err    error
	Type   BoxType // TypeNone when the header itself could not be read
	Offset int64
	Detail string
}

func (e *BoxError) Error() string {
	msg := fmt.Sprintf("offset %d", e.Offset)
	if e.Type != TypeNone {
		msg += fmt.Sprintf(" (%s)", e.Type)
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *BoxError) Unwrap() error {
	return e.Err
}

// OutOfBoundsError is returned when attempting to read beyond the buffer.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when input is declined by the format sniff
// or no dissector is registered for a media type.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered during dissection.
//
// Dissection is best-effort: a malformed box stops traversal of its
// enclosing scope, and everything reported before it stands. Each such stop
// is recorded as a Warning.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "ftyp", "mvhd", "mfhd", "walk"

	// Warning message
	Message string

	// Buffer offset where the issue occurred
	Offset int64

	// Underlying error kind, if any
	Err error
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
}
