// Package report provides Tree, an in-memory Reporter that records the
// decoded box structure and renders it as text or JSON.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/simonhull/isobox/internal/types"
)

// Item is one node of a report tree: a structural node (a box or the
// protocol root) or a leaf field value.
type Item struct {
	Text     string  `json:"text"`
	Field    string  `json:"field,omitempty"` // field abbrev, empty for structural nodes
	Offset   int64   `json:"offset"`
	Length   int64   `json:"length"`
	Value    any     `json:"value,omitempty"`
	Children []*Item `json:"children,omitempty"`
}

// AddBox implements types.Node.
func (it *Item) AddBox(box types.Box) types.Node {
	child := &Item{
		Text:   box.Text(),
		Offset: box.Offset,
		Length: int64(box.Size),
	}
	it.Children = append(it.Children, child)
	return child
}

// AddUint implements types.Node.
func (it *Item) AddUint(f types.Field, off, length int64, v uint64) {
	it.Children = append(it.Children, &Item{
		Text:   f.Name + ": " + strconv.FormatUint(v, 10),
		Field:  f.Abbrev,
		Offset: off,
		Length: length,
		Value:  v,
	})
}

// AddString implements types.Node.
func (it *Item) AddString(f types.Field, off, length int64, v string) {
	it.Children = append(it.Children, &Item{
		Text:   f.Name + ": " + v,
		Field:  f.Abbrev,
		Offset: off,
		Length: length,
		Value:  v,
	})
}

// AddText implements types.Node.
func (it *Item) AddText(text string, off, length int64) {
	it.Children = append(it.Children, &Item{
		Text:   text,
		Offset: off,
		Length: length,
	})
}

// Tree records everything a dissector reports. The zero value is ready to use.
type Tree struct {
	Protocol string  `json:"protocol,omitempty"`
	Info     string  `json:"info,omitempty"`
	Roots    []*Item `json:"roots,omitempty"`
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{}
}

// SetProtocol implements types.Reporter.
func (t *Tree) SetProtocol(name, info string) {
	t.Protocol = name
	t.Info = info
}

// Root implements types.Reporter.
func (t *Tree) Root(text string, off, length int64) types.Node {
	it := &Item{Text: text, Offset: off, Length: length}
	t.Roots = append(t.Roots, it)
	return it
}

// Empty reports whether nothing was recorded.
func (t *Tree) Empty() bool {
	return t.Protocol == "" && len(t.Roots) == 0
}

// Walk visits every item in pre-order. Returning false from fn skips the
// item's children.
func (t *Tree) Walk(fn func(it *Item, depth int) bool) {
	var visit func(items []*Item, depth int)
	visit = func(items []*Item, depth int) {
		for _, it := range items {
			if fn(it, depth) {
				visit(it.Children, depth+1)
			}
		}
	}
	visit(t.Roots, 0)
}

// Find returns every field item recorded under abbrev, in pre-order.
func (t *Tree) Find(abbrev string) []*Item {
	var out []*Item
	t.Walk(func(it *Item, _ int) bool {
		if it.Field == abbrev {
			out = append(out, it)
		}
		return true
	})
	return out
}

// TextOptions configures WriteText.
type TextOptions struct {
	MaxDepth   int  // 0 means unlimited
	ShowFields bool // include field items, not only structure
	ShowRanges bool // append [offset, end) to each line
	IndentSize int
}

// DefaultTextOptions returns the options the CLI uses by default.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		ShowFields: true,
		ShowRanges: true,
		IndentSize: 2,
	}
}

// WriteText renders the tree as indented text.
func (t *Tree) WriteText(w io.Writer, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	if t.Protocol != "" {
		fmt.Fprintf(bw, "Protocol: %s", t.Protocol)
		if t.Info != "" {
			fmt.Fprintf(bw, " (%s)", t.Info)
		}
		bw.WriteByte('\n')
	}
	t.Walk(func(it *Item, depth int) bool {
		if it.Field != "" && !opts.ShowFields {
			return false
		}
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return false
		}
		bw.WriteString(strings.Repeat(" ", depth*opts.IndentSize))
		bw.WriteString(it.Text)
		if opts.ShowRanges && it.Field == "" {
			fmt.Fprintf(bw, " [%d, %d)", it.Offset, it.Offset+it.Length)
		}
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

// WriteJSON renders the tree as indented JSON.
func (t *Tree) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

var (
	_ types.Reporter = (*Tree)(nil)
	_ types.Node     = (*Item)(nil)
)
