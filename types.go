package isobox

import (
	"github.com/simonhull/isobox/internal/report"
	"github.com/simonhull/isobox/internal/types"
)

// HeaderSize is the size of a compact box header.
const HeaderSize = types.HeaderSize

// BoxType is a four-character box type code.
type BoxType = types.BoxType

// Box is one decoded box header.
type Box = types.Box

// Kind classifies how a box type is decoded.
type Kind = types.Kind

// BoxInfo is a Box Type Registry entry.
type BoxInfo = types.BoxInfo

// Field describes a named value recorded in a report.
type Field = types.Field

// FileType holds the decoded payload of an ftyp box.
type FileType = types.FileType

// Reporter receives decoded structure.
type Reporter = types.Reporter

// Node is a structural node in a report.
type Node = types.Node

// Result summarises one dissection.
type Result = types.Result

// NopReporter discards everything reported to it.
type NopReporter = types.NopReporter

// Tree is the bundled in-memory Reporter.
type Tree = report.Tree

// Item is one node of a Tree.
type Item = report.Item

// TextOptions configures Tree.WriteText.
type TextOptions = report.TextOptions

// Re-export decode classifications.
const (
	KindOpaque    = types.KindOpaque
	KindContainer = types.KindContainer
	KindLeaf      = types.KindLeaf
)

// Re-export known box types.
const (
	TypeNone = types.TypeNone
	TypeFtyp = types.TypeFtyp
	TypeMfhd = types.TypeMfhd
	TypeMvhd = types.TypeMvhd
	TypeMoov = types.TypeMoov
	TypeMoof = types.TypeMoof
	TypeStbl = types.TypeStbl
	TypeMdia = types.TypeMdia
	TypeTrak = types.TypeTrak
	TypeTraf = types.TypeTraf
	TypeMinf = types.TypeMinf
	TypeMvex = types.TypeMvex
	TypeMehd = types.TypeMehd
	TypeTrex = types.TypeTrex
)

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return report.New()
}

// DefaultTextOptions returns the default Tree.WriteText options.
func DefaultTextOptions() TextOptions {
	return report.DefaultTextOptions()
}

// ParseBoxType packs a four-character string into a BoxType.
func ParseBoxType(s string) BoxType {
	return types.ParseBoxType(s)
}

// LookupBoxType returns the registry entry for t.
func LookupBoxType(t BoxType) (BoxInfo, bool) {
	return types.LookupBoxType(t)
}

// KnownBoxTypes returns every box type in the registry.
func KnownBoxTypes() []BoxType {
	return types.KnownBoxTypes()
}

// Fields returns the descriptors of every field the decoder records.
func Fields() []Field {
	return types.Fields()
}
