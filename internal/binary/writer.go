package binary

import (
	"encoding/binary"
	"io"

	"github.com/simonhull/isobox/internal/types"
)

// SafeWriter wraps io.Writer with position tracking.
//
// The decoder never writes; SafeWriter builds well-formed and deliberately
// malformed boxes for tests and fuzz seeds.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteTag writes a four-byte type tag.
func (sw *SafeWriter) WriteTag(t types.BoxType) error {
	tag := t.Bytes()
	return sw.WriteBytes(tag[:])
}

// WriteHeader writes a compact box header with an explicit declared size.
// The size is written as given, so malformed headers can be produced too.
func (sw *SafeWriter) WriteHeader(size uint32, t types.BoxType) error {
	if err := Write(sw, size); err != nil {
		return err
	}
	return sw.WriteTag(t)
}

// WriteBox writes a complete box whose declared size covers the header and
// the concatenated payload parts.
func (sw *SafeWriter) WriteBox(t types.BoxType, payload ...[]byte) error {
	size := types.HeaderSize
	for _, p := range payload {
		size += len(p)
	}
	if err := sw.WriteHeader(uint32(size), t); err != nil {
		return err
	}
	for _, p := range payload {
		if err := sw.WriteBytes(p); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a value of type T in big-endian byte order.
func Write[T Unsigned](sw *SafeWriter, val T) error {
	var buf [8]byte
	b := buf[:sizeOf[T]()]

	switch len(b) {
	case 1:
		b[0] = byte(val)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(val))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(val))
	default:
		binary.BigEndian.PutUint64(b, uint64(val))
	}

	return sw.WriteBytes(b)
}
