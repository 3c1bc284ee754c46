package mp4

import (
	"io"

	"github.com/simonhull/isobox/internal/binary"
	"github.com/simonhull/isobox/internal/registry"
	"github.com/simonhull/isobox/internal/types"
)

// MediaType is the content type this dissector is registered for.
const MediaType = "video/mp4"

// ProtocolName is the protocol label set on the reporter.
const ProtocolName = "MP4"

// Dissector decodes MP4 box trees. The zero value is ready to use.
type Dissector struct{}

// Sniff reports whether the buffer starts with a box header whose type is
// in the Box Type Registry. Only the first 8 bytes are examined.
func (Dissector) Sniff(r io.ReaderAt, size int64) bool {
	if size < types.HeaderSize {
		return false
	}
	// The declared size is not part of the gate: a known first type with a
	// malformed size is accepted and its header recorded as a warning.
	t, err := binary.ReadTag(binary.NewSafeReader(r, size, ""), 4, "box type")
	return err == nil && t.IsKnown()
}

// Dissect walks the top-level boxes of the buffer and reports them to rep.
//
// Input that fails Sniff is declined: nothing is reported and the result
// has Accepted false and Consumed 0. Malformed boxes never produce an error;
// they stop traversal of their scope and are recorded as warnings.
func (d Dissector) Dissect(r io.ReaderAt, size int64, rep types.Reporter, opts types.DissectOptions) *types.Result {
	if !d.Sniff(r, size) {
		return &types.Result{}
	}

	w := newWalker(binary.NewSafeReader(r, size, opts.Path), opts)

	rep.SetProtocol(ProtocolName, "")
	root := rep.Root(ProtocolName, 0, size)

	consumed := min(w.walk(types.TypeNone, 0, size, root, 0), size)

	return &types.Result{
		Accepted: true,
		Consumed: consumed,
		Boxes:    w.boxes,
		FileType: w.fileType,
		Warnings: w.warnings,
	}
}

func init() {
	registry.Register(MediaType, Dissector{})
}
