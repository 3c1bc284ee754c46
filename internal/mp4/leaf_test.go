package mp4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/isobox/internal/report"
	"github.com/simonhull/isobox/internal/types"
)

// decodeLeaf runs a leaf decoder over the whole buffer.
func decodeLeaf(t *testing.T, dec leafDecoder, payload []byte) (*report.Item, *walker, int64, error) {
	t.Helper()
	w := newWalker(newSafeReader(t, payload), types.DissectOptions{})
	node := &report.Item{Text: "leaf"}
	n, err := dec(w, 0, int64(len(payload)), node)
	return node, w, n, err
}

func fields(it *report.Item) map[string][]any {
	out := map[string][]any{}
	for _, c := range it.Children {
		out[c.Field] = append(out[c.Field], c.Value)
	}
	return out
}

func TestDecodeFtyp(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		consumed int64
		compat   []any
	}{
		{"no compatible brands", ftypPayload("mp42", 1), 8, nil},
		{"two compatible brands", ftypPayload("isom", 512, "isom", "avc1"), 16, []any{"isom", "avc1"}},
		{"short remainder ignored", cat(ftypPayload("M4A ", 0, "M4A "), []byte{'m', 'p'}), 12, []any{"M4A "}},
		{"three-byte remainder ignored", cat(ftypPayload("qt  ", 0), []byte("qt ")), 8, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, w, n, err := decodeLeaf(t, decodeFtyp, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.consumed, n)
			assert.Equal(t, tt.compat, fields(node)[types.FieldFtypAddBrand.Abbrev])
			require.NotNil(t, w.fileType)
			assert.Len(t, w.fileType.Compatible, len(tt.compat))
		})
	}
}

func TestDecodeFtyp_Offsets(t *testing.T) {
	node, _, _, err := decodeLeaf(t, decodeFtyp, ftypPayload("isom", 512, "iso2", "mp41"))
	require.NoError(t, err)

	var offsets []int64
	for _, c := range node.Children {
		offsets = append(offsets, c.Offset)
		assert.Equal(t, int64(4), c.Length)
	}
	assert.Equal(t, []int64{0, 4, 8, 12}, offsets)
}

func TestDecodeFtyp_Overrun(t *testing.T) {
	node, w, n, err := decodeLeaf(t, decodeFtyp, []byte("isom\x00\x00"))

	require.ErrorIs(t, err, types.ErrPayloadOverrun)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, []any{"isom"}, fields(node)[types.FieldFtypBrand.Abbrev])
	assert.Nil(t, w.fileType, "partial ftyp is not recorded")
}

func TestDecodeFtyp_FirstOneWins(t *testing.T) {
	w := newWalker(newSafeReader(t, cat(ftypPayload("aaaa", 1), ftypPayload("bbbb", 2))), types.DissectOptions{})

	_, err := decodeFtyp(w, 0, 8, &report.Item{})
	require.NoError(t, err)
	_, err = decodeFtyp(w, 8, 8, &report.Item{})
	require.NoError(t, err)

	assert.Equal(t, "aaaa", w.fileType.MajorBrand.String())
}

func TestDecodeMvhd(t *testing.T) {
	payload := cat([]byte{0x01, 0x00, 0x00, 0x03}, make([]byte, 104))

	node, _, n, err := decodeLeaf(t, decodeMvhd, payload)

	require.NoError(t, err)
	assert.Equal(t, int64(4), n, "only the full box prefix is consumed")
	f := fields(node)
	assert.Equal(t, []any{uint64(1)}, f[types.FieldFullBoxVersion.Abbrev])
	assert.Equal(t, []any{uint64(3)}, f[types.FieldFullBoxFlags.Abbrev])
}

func TestDecodeMvhd_Overrun(t *testing.T) {
	node, _, n, err := decodeLeaf(t, decodeMvhd, []byte{0x00, 0x00})

	require.ErrorIs(t, err, types.ErrPayloadOverrun)
	assert.Equal(t, int64(1), n)
	assert.Len(t, node.Children, 1, "version is reported before flags fail")
}

func TestDecodeMvhd_Empty(t *testing.T) {
	node, _, n, err := decodeLeaf(t, decodeMvhd, nil)

	require.ErrorIs(t, err, types.ErrPayloadOverrun)
	assert.Equal(t, int64(0), n)
	assert.Empty(t, node.Children)
}

func TestDecodeMfhd(t *testing.T) {
	node, _, n, err := decodeLeaf(t, decodeMfhd, cat([]byte{0, 0, 0, 0}, u32(0xCAFEBABE)))

	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, []any{uint64(0xCAFEBABE)}, fields(node)[types.FieldMfhdSequenceNum.Abbrev])
}

func TestDecodeMfhd_Overrun(t *testing.T) {
	node, _, n, err := decodeLeaf(t, decodeMfhd, []byte{0, 0, 0, 0, 0, 1})

	require.ErrorIs(t, err, types.ErrPayloadOverrun)
	assert.Equal(t, int64(4), n)
	assert.NotContains(t, fields(node), types.FieldMfhdSequenceNum.Abbrev)
}

func TestLeafOverrunBecomesWarning(t *testing.T) {
	data := cat(
		mkbox(types.TypeMoof, mkbox(types.TypeMfhd, []byte{0, 0, 0, 0, 0, 1})),
		mkbox(types.TypeMoof, mkbox(types.TypeMfhd, make([]byte, 4), u32(2))),
	)

	tree, res := dissect(t, data, types.DissectOptions{})

	assert.Equal(t, int64(len(data)), res.Consumed)
	assert.Equal(t, 4, res.Boxes)
	assert.Equal(t, []any{uint64(2)}, fieldValues(tree, types.FieldMfhdSequenceNum))

	require.Len(t, res.Warnings, 1)
	warn := res.Warnings[0]
	assert.Equal(t, "mfhd", warn.Stage)
	assert.ErrorIs(t, warn.Err, types.ErrPayloadOverrun)
	assert.Equal(t, int64(20), warn.Offset)

	mfhd := tree.Roots[0].Children[0].Children[2]
	last := mfhd.Children[len(mfhd.Children)-1]
	assert.Contains(t, last.Text, "[Malformed:")
	assert.Equal(t, int64(20), last.Offset)
	assert.Equal(t, int64(2), last.Length)
}
