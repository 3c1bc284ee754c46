package isobox

import (
	"github.com/simonhull/isobox/internal/types"
)

// Error kinds recorded in Warning.Err. Match them with errors.Is.
var (
	ErrTruncatedHeader = types.ErrTruncatedHeader
	ErrBoxTooSmall     = types.ErrBoxTooSmall
	ErrPayloadOverrun  = types.ErrPayloadOverrun
	ErrDepthExceeded   = types.ErrDepthExceeded
	ErrExtentOverrun   = types.ErrExtentOverrun
)

// BoxError is an alias to types.BoxError.
// Re-exporting from internal/types to maintain public API.
type BoxError = types.BoxError

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning
