package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/isobox/internal/types"
)

func TestSafeWriter_Offset(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)
	assert.Equal(t, int64(0), sw.Offset())

	require.NoError(t, Write[uint8](sw, 0x01))
	require.NoError(t, Write[uint16](sw, 0x0203))
	require.NoError(t, Write[uint32](sw, 0x04050607))
	require.NoError(t, Write[uint64](sw, 0x08090A0B0C0D0E0F))

	assert.Equal(t, int64(15), sw.Offset())
	assert.Equal(t, []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	}, buf.Bytes())
}

func TestSafeWriter_WriteBox(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, sw.WriteBox(types.TypeFtyp, []byte("isom"), []byte{0, 0, 2, 0}))

	want := append([]byte{0, 0, 0, 16}, "ftypisom\x00\x00\x02\x00"...)
	assert.Equal(t, want, buf.Bytes())
}

func TestSafeWriter_WriteHeader_Malformed(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, sw.WriteHeader(5, types.TypeFtyp))
	assert.Equal(t, []byte{0, 0, 0, 5, 'f', 't', 'y', 'p'}, buf.Bytes())
}
