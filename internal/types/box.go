// Package types provides the core data structures shared by the box decoder:
// box type codes and their registry, boxes, field descriptors, the reporter
// interfaces, and error kinds.
package types

// HeaderSize is the size of a compact box header: 32-bit size and 32-bit type.
const HeaderSize = 8

// Box is one decoded box header.
type Box struct {
	Offset int64   // Position of the header in the buffer
	Size   uint32  // Declared size including the header
	Type   BoxType // Type code
}

// PayloadOffset returns the offset of the first byte after the header.
func (b Box) PayloadOffset() int64 {
	return b.Offset + HeaderSize
}

// PayloadSize returns the declared payload length.
func (b Box) PayloadSize() int64 {
	if b.Size < HeaderSize {
		return 0
	}
	return int64(b.Size) - HeaderSize
}

// End returns the offset just past the declared extent of the box.
func (b Box) End() int64 {
	return b.Offset + int64(b.Size)
}

// Text returns the label used for the box in a report, e.g. "Movie Box (moov)".
func (b Box) Text() string {
	return b.Type.Name() + " (" + b.Type.String() + ")"
}

// FileType holds the decoded payload of an ftyp box.
type FileType struct {
	MajorBrand   BoxType
	MinorVersion uint32
	Compatible   []BoxType
}

// FullBoxHeader is the version and flags prefix of a full box.
type FullBoxHeader struct {
	Version uint8
	Flags   uint32 // 24 bits
}
