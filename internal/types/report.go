package types

// Reporter receives the structure decoded from one buffer.
//
// The decoder writes to a Reporter in strict pre-order (a box before its
// children, siblings in buffer order) and never reads from it.
type Reporter interface {
	// SetProtocol sets the protocol name and summary text.
	SetProtocol(name, info string)

	// Root opens the top-level node spanning [off, off+length).
	Root(text string, off, length int64) Node
}

// Node is a structural node in a report. Children opened through AddBox are
// nested inside it.
type Node interface {
	// AddBox opens a child node for box and returns it.
	AddBox(box Box) Node

	// AddUint records an unsigned integer field at [off, off+length).
	AddUint(f Field, off, length int64, v uint64)

	// AddString records a fixed-length string field at [off, off+length).
	AddString(f Field, off, length int64, v string)

	// AddText records free-form annotation text at [off, off+length).
	AddText(text string, off, length int64)
}

// NopReporter discards everything. Callers that only need the Result
// (box counts, ftyp, warnings) pass it to skip building a tree.
type NopReporter struct{}

func (NopReporter) SetProtocol(string, string) {}

func (NopReporter) Root(string, int64, int64) Node {
	return nopNode{}
}

type nopNode struct{}

func (nopNode) AddBox(Box) Node {
	return nopNode{}
}

func (nopNode) AddUint(Field, int64, int64, uint64) {}

func (nopNode) AddString(Field, int64, int64, string) {}

func (nopNode) AddText(string, int64, int64) {}
