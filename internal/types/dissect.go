package types

import "github.com/rs/zerolog"

// DefaultMaxDepth bounds container nesting when no limit is configured.
const DefaultMaxDepth = 32

// DissectOptions configures one dissection.
type DissectOptions struct {
	Path     string // label used in error messages
	MaxDepth int    // nested box levels; 0 means DefaultMaxDepth
	Logger   zerolog.Logger
}

// Result summarises one dissection.
type Result struct {
	// Accepted is false when the input did not pass the format sniff.
	// Nothing is reported for declined input.
	Accepted bool

	// Consumed is the number of bytes covered by successfully read
	// top-level boxes, never more than the buffer size.
	Consumed int64

	// Boxes counts every box header read, at all depths.
	Boxes int

	// FileType is the first ftyp box decoded, if any.
	FileType *FileType

	// Warnings records every point where traversal of a scope stopped early
	// or a leaf payload could not be fully decoded.
	Warnings []Warning
}
