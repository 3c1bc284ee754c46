package mp4

import (
	"github.com/simonhull/isobox/internal/binary"
	"github.com/simonhull/isobox/internal/types"
)

// leafDecoder decodes the payload [start, start+length) of a leaf box into
// fields on node and returns the number of bytes it consumed. The walker
// does not use the count to position the next box.
type leafDecoder func(w *walker, start, length int64, node types.Node) (int64, error)

var leafDecoders = map[types.BoxType]leafDecoder{
	types.TypeFtyp: decodeFtyp,
	types.TypeMvhd: decodeMvhd,
	types.TypeMfhd: decodeMfhd,
}

// decodeFtyp decodes a File Type Box: major brand, minor version, then
// compatible brands until fewer than four bytes remain.
func decodeFtyp(w *walker, start, length int64, node types.Node) (int64, error) {
	r := binary.NewReader(w.sr, start, start+length)
	var ft types.FileType

	off := r.Offset()
	brand, err := r.ReadTag("major brand")
	if err != nil {
		return r.Offset() - start, err
	}
	ft.MajorBrand = brand
	node.AddString(types.FieldFtypBrand, off, 4, brand.String())

	off = r.Offset()
	version, err := binary.ReadValue[uint32](r, "minor version")
	if err != nil {
		return r.Offset() - start, err
	}
	ft.MinorVersion = version
	node.AddUint(types.FieldFtypVersion, off, 4, uint64(version))

	// A trailing remainder shorter than a brand is not an error.
	for r.Remaining() >= 4 {
		off = r.Offset()
		compat, err := r.ReadTag("compatible brand")
		if err != nil {
			return r.Offset() - start, err
		}
		ft.Compatible = append(ft.Compatible, compat)
		node.AddString(types.FieldFtypAddBrand, off, 4, compat.String())
	}

	if w.fileType == nil {
		w.fileType = &ft
	}
	return r.Offset() - start, nil
}

// decodeFullBoxHeader decodes the 1-byte version and 24-bit flags that
// start every full box.
func decodeFullBoxHeader(r *binary.Reader, node types.Node) (types.FullBoxHeader, error) {
	var h types.FullBoxHeader

	off := r.Offset()
	version, err := binary.ReadValue[uint8](r, "full box version")
	if err != nil {
		return h, err
	}
	h.Version = version
	node.AddUint(types.FieldFullBoxVersion, off, 1, uint64(version))

	off = r.Offset()
	flags, err := r.ReadUint24("full box flags")
	if err != nil {
		return h, err
	}
	h.Flags = flags
	node.AddUint(types.FieldFullBoxFlags, off, 3, uint64(flags))

	return h, nil
}

// decodeMvhd decodes the full box prefix of a Movie Header Box. The
// version-dependent body (times, rate, matrix) is left undecoded.
func decodeMvhd(w *walker, start, length int64, node types.Node) (int64, error) {
	r := binary.NewReader(w.sr, start, start+length)
	_, err := decodeFullBoxHeader(r, node)
	return r.Offset() - start, err
}

// decodeMfhd decodes a Movie Fragment Header Box: full box prefix and
// sequence number.
func decodeMfhd(w *walker, start, length int64, node types.Node) (int64, error) {
	r := binary.NewReader(w.sr, start, start+length)
	if _, err := decodeFullBoxHeader(r, node); err != nil {
		return r.Offset() - start, err
	}

	off := r.Offset()
	seq, err := binary.ReadValue[uint32](r, "sequence number")
	if err != nil {
		return r.Offset() - start, err
	}
	node.AddUint(types.FieldMfhdSequenceNum, off, 4, uint64(seq))

	return r.Offset() - start, nil
}
