package mp4

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	boxbinary "github.com/simonhull/isobox/internal/binary"
	"github.com/simonhull/isobox/internal/report"
	"github.com/simonhull/isobox/internal/types"
)

// strictReader fails the test on any read outside its data.
type strictReader struct {
	t    testing.TB
	data []byte
}

func (s *strictReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(s.data)) {
		s.t.Fatalf("read of %d bytes at offset %d escapes %d-byte buffer", len(p), off, len(s.data))
	}
	return copy(p, s.data[off:]), nil
}

// mkbox builds a well-formed box around the payload parts.
func mkbox(t types.BoxType, payload ...[]byte) []byte {
	buf := &bytes.Buffer{}
	if err := boxbinary.NewSafeWriter(buf).WriteBox(t, payload...); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// header builds a bare header with an arbitrary declared size.
func header(size uint32, t types.BoxType) []byte {
	buf := &bytes.Buffer{}
	if err := boxbinary.NewSafeWriter(buf).WriteHeader(size, t); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func u32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func cat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func dissect(t testing.TB, data []byte, opts types.DissectOptions) (*report.Tree, *types.Result) {
	t.Helper()
	tree := report.New()
	res := Dissector{}.Dissect(&strictReader{t: t, data: data}, int64(len(data)), tree, opts)
	require.NotNil(t, res)
	return tree, res
}

// boxLabels lists the box items below the protocol root, indented by
// depth, e.g. "Movie Box (moov)", "  Movie Header Box (mvhd)". Annotations
// such as "[Nesting limit reached]" are not boxes and are left out.
func boxLabels(tree *report.Tree) []string {
	var out []string
	tree.Walk(func(it *report.Item, depth int) bool {
		if it.Field != "" || strings.HasPrefix(it.Text, "[") {
			return false
		}
		if depth > 0 {
			label := it.Text
			for i := 1; i < depth; i++ {
				label = "  " + label
			}
			out = append(out, label)
		}
		return true
	})
	return out
}

func fieldValues(tree *report.Tree, f types.Field) []any {
	var out []any
	for _, it := range tree.Find(f.Abbrev) {
		out = append(out, it.Value)
	}
	return out
}

func warningKinds(res *types.Result) []error {
	var out []error
	for _, w := range res.Warnings {
		out = append(out, w.Err)
	}
	return out
}
