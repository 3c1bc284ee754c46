// Package mp4 decodes ISO base media file format (ISOBMFF/MP4) box trees.
//
// Only compact 32-bit box headers are understood. Extended 64-bit sizes,
// size 0 ("to end of file") and uuid box types are not; a size below the
// 8-byte header, including 0 and 1, is rejected as malformed.
package mp4

import (
	"fmt"

	"github.com/simonhull/isobox/internal/binary"
	"github.com/simonhull/isobox/internal/types"
)

// readBoxHeader reads the 8-byte header at off.
//
// The header must lie inside [off, limit); limit is the end of the enclosing
// extent, clipped to the buffer. The declared extent off+size is not checked
// against limit here; the walker owns that decision.
func readBoxHeader(sr *binary.SafeReader, off, limit int64) (types.Box, error) {
	if limit > sr.Size() {
		limit = sr.Size()
	}
	if off < 0 || limit-off < types.HeaderSize {
		return types.Box{}, &types.BoxError{
			Err:    types.ErrTruncatedHeader,
			Offset: off,
			Detail: fmt.Sprintf("%d bytes left", max(limit-off, 0)),
		}
	}

	size, err := binary.Read[uint32](sr, off, "box size")
	if err != nil {
		return types.Box{}, &types.BoxError{Err: types.ErrTruncatedHeader, Offset: off, Detail: err.Error()}
	}

	boxType, err := binary.ReadTag(sr, off+4, "box type")
	if err != nil {
		return types.Box{}, &types.BoxError{Err: types.ErrTruncatedHeader, Offset: off, Detail: err.Error()}
	}

	box := types.Box{
		Offset: off,
		Size:   size,
		Type:   boxType,
	}

	if size < types.HeaderSize {
		return box, &types.BoxError{
			Err:    types.ErrBoxTooSmall,
			Type:   boxType,
			Offset: off,
			Detail: fmt.Sprintf("declared size %d", size),
		}
	}

	return box, nil
}
