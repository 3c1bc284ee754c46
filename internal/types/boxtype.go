package types

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// BoxType is a four-character box type code packed big-endian into 32 bits.
//
// The packed code is what the walker dispatches on. String returns a display
// form for reporting only; the raw bytes are never assumed to be valid text.
type BoxType uint32

// TypeNone is the parent type of a top-level box.
const TypeNone BoxType = 0

// Known box types.
const (
	TypeFtyp BoxType = 'f'<<24 | 't'<<16 | 'y'<<8 | 'p'
	TypeMfhd BoxType = 'm'<<24 | 'f'<<16 | 'h'<<8 | 'd'
	TypeMvhd BoxType = 'm'<<24 | 'v'<<16 | 'h'<<8 | 'd'
	TypeMoov BoxType = 'm'<<24 | 'o'<<16 | 'o'<<8 | 'v'
	TypeMoof BoxType = 'm'<<24 | 'o'<<16 | 'o'<<8 | 'f'
	TypeStbl BoxType = 's'<<24 | 't'<<16 | 'b'<<8 | 'l'
	TypeMdia BoxType = 'm'<<24 | 'd'<<16 | 'i'<<8 | 'a'
	TypeTrak BoxType = 't'<<24 | 'r'<<16 | 'a'<<8 | 'k'
	TypeTraf BoxType = 't'<<24 | 'r'<<16 | 'a'<<8 | 'f'
	TypeMinf BoxType = 'm'<<24 | 'i'<<16 | 'n'<<8 | 'f'
	TypeMvex BoxType = 'm'<<24 | 'v'<<16 | 'e'<<8 | 'x'
	TypeMehd BoxType = 'm'<<24 | 'e'<<16 | 'h'<<8 | 'd'
	TypeTrex BoxType = 't'<<24 | 'r'<<16 | 'e'<<8 | 'x'
)

// BoxTypeOf packs a four-byte tag into a BoxType.
func BoxTypeOf(tag [4]byte) BoxType {
	return BoxType(uint32(tag[0])<<24 | uint32(tag[1])<<16 | uint32(tag[2])<<8 | uint32(tag[3]))
}

// ParseBoxType packs the first four bytes of s. Shorter strings are padded
// with spaces, the way ISOBMFF writers pad short brand names.
func ParseBoxType(s string) BoxType {
	tag := [4]byte{' ', ' ', ' ', ' '}
	copy(tag[:], s)
	return BoxTypeOf(tag)
}

// Bytes returns the raw tag bytes.
func (t BoxType) Bytes() [4]byte {
	return [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
}

// String returns the display form of the tag.
//
// Printable ASCII is kept as is, bytes in the Latin-1 upper half are decoded
// through ISO-8859-1 (QuickTime uses 0xA9 for "©"), everything else is
// escaped as \xNN.
func (t BoxType) String() string {
	tag := t.Bytes()
	return DisplayTag(tag[:])
}

// DisplayTag renders raw tag bytes the same way BoxType.String does.
// It is also used for brand fields inside ftyp.
func DisplayTag(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c >= 0x20 && c < 0x7f:
			if c == '\\' {
				sb.WriteString(`\\`)
				continue
			}
			sb.WriteByte(c)
		case c >= 0xa0:
			sb.WriteRune(charmap.ISO8859_1.DecodeByte(c))
		default:
			sb.WriteString(`\x`)
			if c < 0x10 {
				sb.WriteByte('0')
			}
			sb.WriteString(strconv.FormatUint(uint64(c), 16))
		}
	}
	return sb.String()
}

// Kind classifies how the walker treats a box type.
type Kind int

const (
	// KindOpaque boxes are reported as unparsed spans.
	KindOpaque Kind = iota
	// KindContainer boxes hold a sequence of child boxes.
	KindContainer
	// KindLeaf boxes have a payload decoded into fields.
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLeaf:
		return "leaf"
	default:
		return "opaque"
	}
}

// BoxInfo is a Box Type Registry entry.
type BoxInfo struct {
	Name string
	Kind Kind
}

// boxTypes is the Box Type Registry. It is never written after init.
var boxTypes = map[BoxType]BoxInfo{
	TypeFtyp: {"File Type Box", KindLeaf},
	TypeMfhd: {"Movie Fragment Header Box", KindLeaf},
	TypeMvhd: {"Movie Header Box", KindLeaf},
	TypeMoov: {"Movie Box", KindContainer},
	TypeMoof: {"Movie Fragment Box", KindContainer},
	TypeStbl: {"Sample Table Box", KindContainer},
	TypeMdia: {"Media Box", KindContainer},
	TypeTrak: {"Track Box", KindContainer},
	TypeTraf: {"Track Fragment Box", KindContainer},
	TypeMinf: {"Media Information Box", KindContainer},
	TypeMvex: {"Movie Extends Box", KindContainer},
	TypeMehd: {"Movie Extends Header Box", KindOpaque},
	TypeTrex: {"Track Extends Box", KindOpaque},
}

// LookupBoxType returns the registry entry for t.
func LookupBoxType(t BoxType) (BoxInfo, bool) {
	info, ok := boxTypes[t]
	return info, ok
}

// IsKnown reports whether t is in the registry.
func (t BoxType) IsKnown() bool {
	_, ok := boxTypes[t]
	return ok
}

// Kind returns the decode classification of t. Unregistered types are opaque.
func (t BoxType) Kind() Kind {
	return boxTypes[t].Kind
}

// Name returns the human-readable name of t, or "unknown".
func (t BoxType) Name() string {
	if info, ok := boxTypes[t]; ok {
		return info.Name
	}
	return "unknown"
}

// KnownBoxTypes returns every registered type in ascending code order.
func KnownBoxTypes() []BoxType {
	out := make([]BoxType, 0, len(boxTypes))
	for t := range boxTypes {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
