// Package binary provides bounds-checked big-endian reading primitives for
// box-structured buffers.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/simonhull/isobox/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
// No read through a SafeReader ever touches bytes outside [0, size).
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	if size < 0 {
		size = 0
	}
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the path or label associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of addressable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// Contains reports whether n bytes starting at off lie inside the buffer.
func (sr *SafeReader) Contains(off, n int64) bool {
	if off < 0 || n < 0 || off > sr.size {
		return false
	}
	if n > math.MaxInt64-off {
		return false
	}
	return off+n <= sr.size
}

// ReadAt reads len(b) bytes at off with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if !sr.Contains(off, int64(len(b))) {
		return &types.OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Unsigned is the set of integer widths Read understands.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

func sizeOf[T Unsigned]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// Read reads a big-endian value of type T from the given offset.
func Read[T Unsigned](sr *SafeReader, off int64, what string) (T, error) {
	var buf [8]byte
	b := buf[:sizeOf[T]()]
	if err := sr.ReadAt(b, off, what); err != nil {
		var zero T
		return zero, err
	}

	var val T
	switch len(b) {
	case 1:
		val = T(b[0])
	case 2:
		val = T(binary.BigEndian.Uint16(b))
	case 4:
		val = T(binary.BigEndian.Uint32(b))
	default:
		val = T(binary.BigEndian.Uint64(b))
	}
	return val, nil
}

// ReadTag reads a four-byte type tag at off.
func ReadTag(sr *SafeReader, off int64, what string) (types.BoxType, error) {
	var tag [4]byte
	if err := sr.ReadAt(tag[:], off, what); err != nil {
		return types.TypeNone, err
	}
	return types.BoxTypeOf(tag), nil
}

// Reader provides sequential reading with automatic offset tracking,
// confined to the window [offset, limit).
//
// A read that would cross limit fails with types.ErrPayloadOverrun without
// touching the underlying buffer.
type Reader struct {
	*SafeReader
	offset int64
	limit  int64
}

// NewReader creates a new Reader over [offset, limit).
func NewReader(sr *SafeReader, offset, limit int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
		limit:      limit,
	}
}

// Remaining returns the bytes left before limit.
func (r *Reader) Remaining() int64 {
	if r.offset >= r.limit {
		return 0
	}
	return r.limit - r.offset
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) check(n int64, what string) error {
	if n > r.Remaining() {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left",
			types.ErrPayloadOverrun, what, n, r.offset, r.Remaining())
	}
	return nil
}

// ReadValue reads a numeric value and advances the offset.
func ReadValue[T Unsigned](r *Reader, what string) (T, error) {
	n := int64(sizeOf[T]())
	if err := r.check(n, what); err != nil {
		var zero T
		return zero, err
	}

	val, err := Read[T](r.SafeReader, r.offset, what)
	if err != nil {
		var zero T
		return zero, err
	}

	r.offset += n
	return val, nil
}

// ReadTag reads a four-byte tag and advances the offset.
func (r *Reader) ReadTag(what string) (types.BoxType, error) {
	if err := r.check(4, what); err != nil {
		return types.TypeNone, err
	}
	t, err := ReadTag(r.SafeReader, r.offset, what)
	if err != nil {
		return types.TypeNone, err
	}
	r.offset += 4
	return t, nil
}

// ReadUint24 reads a big-endian 24-bit value, such as full box flags,
// and advances the offset.
func (r *Reader) ReadUint24(what string) (uint32, error) {
	if err := r.check(3, what); err != nil {
		return 0, err
	}
	var b [3]byte
	if err := r.SafeReader.ReadAt(b[:], r.offset, what); err != nil {
		return 0, err
	}
	r.offset += 3
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}
