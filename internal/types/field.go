package types

// FieldKind is the value type carried by a Field.
type FieldKind int

const (
	FieldUint8 FieldKind = iota
	FieldUint24
	FieldUint32
	FieldString
)

func (k FieldKind) String() string {
	switch k {
	case FieldUint8:
		return "uint8"
	case FieldUint24:
		return "uint24"
	case FieldUint32:
		return "uint32"
	case FieldString:
		return "string"
	default:
		return "unknown"
	}
}

// Field describes a named value a decoder records in a report.
//
// Abbrev is the dotted filter name a host analysis framework would register
// the field under.
type Field struct {
	Name   string
	Abbrev string
	Kind   FieldKind
}

// Fields recorded by the decoder.
var (
	FieldBoxSize         = Field{"Box size", "mp4.box.size", FieldUint32}
	FieldBoxType         = Field{"Box type", "mp4.box.type_str", FieldString}
	FieldFullBoxVersion  = Field{"Box version", "mp4.full_box.version", FieldUint8}
	FieldFullBoxFlags    = Field{"Box flags", "mp4.full_box.flags", FieldUint24}
	FieldFtypBrand       = Field{"Brand", "mp4.ftyp.brand", FieldString}
	FieldFtypVersion     = Field{"Version", "mp4.ftyp.version", FieldUint32}
	FieldFtypAddBrand    = Field{"Additional brand", "mp4.ftyp.additional_brand", FieldString}
	FieldMfhdSequenceNum = Field{"Sequence number", "mp4.mfhd.sequence_number", FieldUint32}
)

// Fields returns every field descriptor, in registration order.
func Fields() []Field {
	return []Field{
		FieldBoxSize,
		FieldBoxType,
		FieldFullBoxVersion,
		FieldFullBoxFlags,
		FieldFtypBrand,
		FieldFtypVersion,
		FieldFtypAddBrand,
		FieldMfhdSequenceNum,
	}
}
