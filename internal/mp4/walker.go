package mp4

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simonhull/isobox/internal/binary"
	"github.com/simonhull/isobox/internal/types"
)

// walker holds the state of one dissection. It is not shared between calls.
type walker struct {
	sr       *binary.SafeReader
	maxDepth int
	log      zerolog.Logger

	boxes    int
	fileType *types.FileType
	warnings []types.Warning
}

func newWalker(sr *binary.SafeReader, opts types.DissectOptions) *walker {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = types.DefaultMaxDepth
	}
	return &walker{
		sr:       sr,
		maxDepth: maxDepth,
		log:      opts.Logger,
	}
}

func (w *walker) warn(stage string, err error) {
	var off int64
	var be *types.BoxError
	if errors.As(err, &be) {
		off = be.Offset
	}
	w.warnings = append(w.warnings, types.Warning{
		Stage:   stage,
		Message: err.Error(),
		Offset:  off,
		Err:     err,
	})
	w.log.Debug().
		Str("path", w.sr.Path()).
		Str("stage", stage).
		Int64("offset", off).
		Err(err).
		Msg("box decode stopped")
}

// walk traverses the sibling boxes in [start, end) and returns the offset
// where traversal stopped.
//
// A header that cannot be read ends the scope: boxes already reported stand
// and nothing propagates to the caller. Siblings are always positioned by
// the declared size of the previous box.
//
// parent is the type of the enclosing box, TypeNone at top level. No
// behaviour is keyed on it yet; it is carried for logging.
func (w *walker) walk(parent types.BoxType, start, end int64, node types.Node, depth int) int64 {
	off := start
	for off < end {
		box, err := w.box(off, end, node, depth)
		if err != nil {
			w.warn("header", err)
			break
		}
		w.log.Trace().
			Stringer("parent", parent).
			Stringer("type", box.Type).
			Int64("offset", off).
			Uint32("size", box.Size).
			Int("depth", depth).
			Msg("box")
		off = box.End()
	}
	return off
}

// box reads and reports the box at off, decoding or descending into its
// payload according to the Box Type Registry.
func (w *walker) box(off, end int64, node types.Node, depth int) (types.Box, error) {
	box, err := readBoxHeader(w.sr, off, end)
	if err != nil {
		return box, err
	}
	w.boxes++

	child := node.AddBox(box)
	child.AddUint(types.FieldBoxSize, off, 4, uint64(box.Size))
	child.AddString(types.FieldBoxType, off+4, 4, box.Type.String())

	// The payload never extends past the enclosing extent, whatever the
	// declared size says. The declared size still positions the next sibling.
	payloadEnd := box.End()
	if payloadEnd > end {
		w.warn("walk", &types.BoxError{
			Err:    types.ErrExtentOverrun,
			Type:   box.Type,
			Offset: off,
			Detail: fmt.Sprintf("declared end %d, enclosing end %d", payloadEnd, end),
		})
		payloadEnd = end
	}
	payloadLen := payloadEnd - box.PayloadOffset()

	switch box.Type.Kind() {
	case types.KindContainer:
		if depth+1 >= w.maxDepth {
			w.warn("walk", &types.BoxError{
				Err:    types.ErrDepthExceeded,
				Type:   box.Type,
				Offset: off,
				Detail: fmt.Sprintf("limit %d", w.maxDepth),
			})
			child.AddText("[Nesting limit reached]", box.PayloadOffset(), payloadLen)
			break
		}
		w.walk(box.Type, box.PayloadOffset(), payloadEnd, child, depth+1)

	case types.KindLeaf:
		decode, ok := leafDecoders[box.Type]
		if !ok {
			break
		}
		n, err := decode(w, box.PayloadOffset(), payloadLen, child)
		if err != nil {
			err = &types.BoxError{Err: err, Type: box.Type, Offset: box.PayloadOffset() + n}
			w.warn(box.Type.String(), err)
			child.AddText("[Malformed: "+err.Error()+"]", box.PayloadOffset()+n, payloadLen-n)
		}

	default:
		// Opaque: reported as an unparsed span.
	}

	return box, nil
}
