// Package registry maps media types to dissectors. It is the format-dispatch
// boundary: a host picks a dissector by the content type it has already
// classified a payload as.
package registry

import (
	"io"
	"mime"
	"slices"
	"strings"

	"github.com/simonhull/isobox/internal/types"
)

// Dissector is the interface every format dissector implements.
type Dissector interface {
	// Sniff reports whether the buffer looks like this format.
	Sniff(r io.ReaderAt, size int64) bool

	// Dissect decodes the buffer and reports its structure to rep.
	// Declined input yields a Result with Accepted false.
	Dissect(r io.ReaderAt, size int64, rep types.Reporter, opts types.DissectOptions) *types.Result
}

// dissectors maps normalized media types to their dissectors.
// It is only written from init functions.
var dissectors = make(map[string]Dissector)

// Normalize lowercases a media type and strips any parameters, so
// "Video/MP4; codecs=avc1" and "video/mp4" select the same dissector.
func Normalize(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// Register registers a dissector for a media type.
// This is called by format packages during initialization (init functions).
func Register(mediaType string, d Dissector) {
	dissectors[Normalize(mediaType)] = d
}

// Get returns the dissector for a media type.
// Returns nil if no dissector is registered for it.
func Get(mediaType string) Dissector {
	return dissectors[Normalize(mediaType)]
}

// MediaTypes returns every registered media type, sorted.
func MediaTypes() []string {
	out := make([]string, 0, len(dissectors))
	for mt := range dissectors {
		out = append(out, mt)
	}
	slices.Sort(out)
	return out
}
