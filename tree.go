package valtree

import (
	"errors"
	"maps"
	"slices"
)

// Tree is the validation outcome for one value and everything below it: the
// errors attached directly to the value plus the trees of its fields (by name)
// and items (by index).
//
// Trees are immutable. Every combinator returns a new Tree and leaves its
// inputs untouched; unchanged subtrees are shared, so a Tree may be read from
// many goroutines without locking. The zero Tree is valid.
//
// Valid children are never stored: a Tree either holds at least one Error
// somewhere below it or it is the single valid value.
type Tree struct {
	n *node
}

type node struct {
	errors []Error
	fields map[string]*node
	items  map[int]*node
	// count is the number of errors in the subtree, fixed at construction.
	count int
}

// Validator is implemented by values that validate themselves.
type Validator interface {
	Validate() Tree
}

// IsErr reports whether the tree holds at least one error anywhere.
func (t Tree) IsErr() bool { return t.n != nil }

// IsValid reports whether the tree holds no errors at all.
func (t Tree) IsValid() bool { return t.n == nil }

// Len returns the number of errors in the tree.
func (t Tree) Len() int {
	if t.n == nil {
		return 0
	}
	return t.n.count
}

// DirectErrors returns the errors attached to the root position, in attachment order.
func (t Tree) DirectErrors() []Error {
	if t.n == nil {
		return nil
	}
	return slices.Clone(t.n.errors)
}

// FieldNames returns the names of fields that have errors, sorted.
func (t Tree) FieldNames() []string {
	if t.n == nil || len(t.n.fields) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(t.n.fields))
}

// Indices returns the indices of items that have errors, ascending.
func (t Tree) Indices() []int {
	if t.n == nil || len(t.n.items) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(t.n.items))
}

// Child returns the tree of the named field. A field without errors yields a valid tree.
func (t Tree) Child(name string) Tree {
	if t.n == nil {
		return Tree{}
	}
	return Tree{t.n.fields[name]}
}

// ChildItem returns the tree of the item at index. An item without errors yields a valid tree.
func (t Tree) ChildItem(index int) Tree {
	if t.n == nil {
		return Tree{}
	}
	return Tree{t.n.items[index]}
}

// Err returns nil for a valid tree and the tree itself otherwise. Use it when
// a validation result has to travel through an error return.
func (t Tree) Err() error {
	if t.n == nil {
		return nil
	}
	return t
}

// Error implements the error interface. It returns the rendered lines.
func (t Tree) Error() string {
	return t.String()
}

// AsTree recovers a Tree from err. A bare Error becomes a single-leaf tree.
func AsTree(err error) (Tree, bool) {
	if err == nil {
		return Tree{}, false
	}
	var t Tree
	if errors.As(err, &t) {
		return t, true
	}
	var e Error
	if errors.As(err, &e) {
		return Leaf(e), true
	}
	return Tree{}, false
}

// Equal reports whether two trees hold the same errors, in the same order, at the same positions.
func (t Tree) Equal(o Tree) bool {
	return equalNodes(t.n, o.n)
}

func equalNodes(a, b *node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.count != b.count {
		return false
	}
	if !slices.EqualFunc(a.errors, b.errors, Error.equal) {
		return false
	}
	return maps.EqualFunc(a.fields, b.fields, equalNodes) &&
		maps.EqualFunc(a.items, b.items, equalNodes)
}

// mergeNodes never modifies a or b.
func mergeNodes(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := &node{count: a.count + b.count}
	if len(a.errors)+len(b.errors) > 0 {
		out.errors = make([]Error, 0, len(a.errors)+len(b.errors))
		out.errors = append(out.errors, a.errors...)
		out.errors = append(out.errors, b.errors...)
	}
	out.fields = mergeChildren(a.fields, b.fields)
	out.items = mergeChildren(a.items, b.items)
	return out
}

func mergeChildren[K comparable](a, b map[K]*node) map[K]*node {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := maps.Clone(a)
	for k, bn := range b {
		out[k] = mergeNodes(out[k], bn)
	}
	return out
}
