package valtree

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a field name or an item index.
type Segment struct {
	name    string
	index   int
	isIndex bool
}

// Name returns a field-name segment.
func Name(name string) Segment { return Segment{name: name} }

// Index returns an item-index segment.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether s is an item index.
func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the field name of a name segment.
func (s Segment) Name() string { return s.name }

// Index returns the index of an index segment.
func (s Segment) Index() int { return s.index }

// Path locates a position in a tree, from the root down. It is computed while
// walking and never stored in the tree.
type Path []Segment

// String renders p with jq syntax: "." for the root, ".name" for fields and
// "[i]" for items (".[i]" when the path starts with an item). Field names
// other than [A-Za-z0-9_]+ are double-quoted.
func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	var b strings.Builder
	for i, s := range p {
		if s.isIndex {
			if i == 0 {
				b.WriteByte('.')
			}
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		b.WriteByte('.')
		writeName(&b, s.name)
	}
	return b.String()
}

func writeName(b *strings.Builder, name string) {
	if isPlainName(name) {
		b.WriteString(name)
		return
	}
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(name, `"`, `\"`))
	b.WriteByte('"')
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
