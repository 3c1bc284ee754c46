package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/isobox/internal/types"
)

// mockReader implements io.ReaderAt and fails the test on any read outside data.
type mockReader struct {
	t    *testing.T
	data []byte
}

func (m *mockReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		m.t.Errorf("read of %d bytes at offset %d escapes %d-byte buffer", len(p), off, len(m.data))
		return 0, io.EOF
	}
	return copy(p, m.data[off:]), nil
}

func newTestReader(t *testing.T, data []byte) *SafeReader {
	return NewSafeReader(&mockReader{t: t, data: data}, int64(len(data)), "test.mp4")
}

func TestSafeReader_ReadAt_Success(t *testing.T) {
	sr := newTestReader(t, []byte{0x01, 0x02, 0x03, 0x04})

	buf := make([]byte, 2)
	require.NoError(t, sr.ReadAt(buf, 0, "test read"))
	assert.Equal(t, []byte{0x01, 0x02}, buf)
}

func TestSafeReader_ReadAt_OutOfBounds(t *testing.T) {
	sr := newTestReader(t, []byte{0x01, 0x02, 0x03, 0x04})

	err := sr.ReadAt(make([]byte, 2), 10, "out of bounds read")
	require.Error(t, err)

	var oob *types.OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Equal(t, int64(10), oob.Offset)
	assert.Contains(t, err.Error(), "test.mp4")
	assert.Contains(t, err.Error(), "out of bounds read")
}

func TestSafeReader_ReadAt_Straddle(t *testing.T) {
	sr := newTestReader(t, []byte{0x01, 0x02, 0x03, 0x04})

	err := sr.ReadAt(make([]byte, 4), 2, "straddling read")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would exceed")
}

func TestSafeReader_Contains(t *testing.T) {
	sr := newTestReader(t, make([]byte, 16))

	tests := []struct {
		name string
		off  int64
		n    int64
		want bool
	}{
		{"whole buffer", 0, 16, true},
		{"empty at end", 16, 0, true},
		{"past end", 12, 8, false},
		{"negative offset", -1, 4, false},
		{"negative length", 0, -1, false},
		{"overflowing length", 8, 1<<63 - 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sr.Contains(tt.off, tt.n))
		})
	}
}

func TestRead_Widths(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, 0x123456789ABCDEF0)
	sr := newTestReader(t, data)

	v8, err := Read[uint8](sr, 0, "uint8")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x12), v8)

	v16, err := Read[uint16](sr, 0, "uint16")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v16)

	v32, err := Read[uint32](sr, 4, "uint32")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x9ABCDEF0), v32)

	v64, err := Read[uint64](sr, 0, "uint64")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x123456789ABCDEF0), v64)

	_, err = Read[uint64](sr, 1, "uint64 past end")
	require.Error(t, err)
}

func TestReadTag(t *testing.T) {
	sr := newTestReader(t, []byte("xxxxmoov"))

	tag, err := ReadTag(sr, 4, "box type")
	require.NoError(t, err)
	assert.Equal(t, types.TypeMoov, tag)

	_, err = ReadTag(sr, 6, "box type")
	require.Error(t, err)
}

func TestReader_Sequential(t *testing.T) {
	sr := newTestReader(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	r := NewReader(sr, 0, 8)

	v1, err := ReadValue[uint8](r, "first byte")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), v1)

	v2, err := ReadValue[uint16](r, "second word")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), v2)

	assert.Equal(t, int64(3), r.Offset())
	assert.Equal(t, int64(5), r.Remaining())
}

func TestReader_Limit(t *testing.T) {
	// The buffer has room, but the window ends at 6.
	sr := newTestReader(t, make([]byte, 16))
	r := NewReader(sr, 4, 6)

	_, err := ReadValue[uint32](r, "sequence number")
	require.ErrorIs(t, err, types.ErrPayloadOverrun)
	assert.Equal(t, int64(4), r.Offset(), "failed read must not advance")

	v, err := ReadValue[uint16](r, "flags")
	require.NoError(t, err)
	assert.Equal(t, uint16(0), v)
	assert.Equal(t, int64(0), r.Remaining())
}

func TestReader_ReadTag(t *testing.T) {
	sr := newTestReader(t, []byte("isomiso"))
	r := NewReader(sr, 0, 7)

	tag, err := r.ReadTag("brand")
	require.NoError(t, err)
	assert.Equal(t, "isom", tag.String())

	_, err = r.ReadTag("brand")
	require.ErrorIs(t, err, types.ErrPayloadOverrun)
}

func TestReader_ReadUint24(t *testing.T) {
	sr := newTestReader(t, []byte{0x01, 0x0A, 0x0B, 0x0C})
	r := NewReader(sr, 1, 4)

	flags, err := r.ReadUint24("flags")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0A0B0C), flags)

	_, err = r.ReadUint24("flags")
	require.ErrorIs(t, err, types.ErrPayloadOverrun)
}

func BenchmarkRead_Uint32(b *testing.B) {
	data := make([]byte, 1024*1024)
	for i := 0; i < len(data); i += 4 {
		binary.BigEndian.PutUint32(data[i:], uint32(i))
	}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "bench.mp4")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		offset := int64((i % (len(data) / 4)) * 4)
		_, _ = Read[uint32](sr, offset, "benchmark")
	}
}
