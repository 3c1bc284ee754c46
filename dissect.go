package isobox

import (
	"bytes"
	"fmt"

	"github.com/simonhull/isobox/internal/mp4"
	"github.com/simonhull/isobox/internal/registry"
	"github.com/simonhull/isobox/internal/types"
)

// MediaType is the content type the MP4 decoder is registered for.
const MediaType = mp4.MediaType

// Sniff reports whether buf starts with a box header of a known box type.
// It is the same gate Dissect applies before reporting anything.
func Sniff(buf []byte) bool {
	return mp4.Dissector{}.Sniff(bytes.NewReader(buf), int64(len(buf)))
}

// Dissect walks the boxes of buf and reports them to rep.
//
// Dissect never fails. Input that does not pass Sniff yields a Result with
// Accepted false and nothing reported. Malformed boxes are recorded in
// Result.Warnings; WithStrictParsing has no effect here, callers inspect
// the warnings themselves.
//
// Example:
//
//	tree := isobox.NewTree()
//	res := isobox.Dissect(buf, tree)
//	fmt.Printf("%d of %d bytes in %d boxes\n", res.Consumed, len(buf), res.Boxes)
func Dissect(buf []byte, rep Reporter, opts ...Option) *Result {
	options := applyOptions(opts)
	res := mp4.Dissector{}.Dissect(bytes.NewReader(buf), int64(len(buf)), rep, options.dissect())
	if options.ignoreWarnings {
		res.Warnings = nil
	}
	return res
}

// DissectMediaType dispatches buf to the decoder registered for mediaType.
//
// Media types are matched case-insensitively with parameters stripped.
// An *UnsupportedFormatError is returned when no decoder is registered.
func DissectMediaType(mediaType string, buf []byte, rep Reporter, opts ...Option) (*Result, error) {
	options := applyOptions(opts)
	d := registry.Get(mediaType)
	if d == nil {
		return nil, &types.UnsupportedFormatError{
			Path:   options.path,
			Reason: fmt.Sprintf("no decoder registered for media type %q", mediaType),
		}
	}
	res := d.Dissect(bytes.NewReader(buf), int64(len(buf)), rep, options.dissect())
	if options.ignoreWarnings {
		res.Warnings = nil
	}
	return res, nil
}

// MediaTypes returns the media types DissectMediaType accepts.
func MediaTypes() []string {
	return registry.MediaTypes()
}
