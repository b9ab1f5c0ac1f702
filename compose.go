package valtree

import (
	"cmp"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Valid returns the tree with no errors. It is the identity of Merge.
func Valid() Tree {
	return Tree{}
}

// Leaf returns a tree with err attached at the root.
func Leaf(err Error) Tree {
	return Tree{&node{errors: []Error{err}, count: 1}}
}

// Errors returns a tree with all errs attached at the root, in order.
// With no errs it returns a valid tree.
func Errors(errs ...Error) Tree {
	if len(errs) == 0 {
		return Tree{}
	}
	return Tree{&node{errors: slices.Clone(errs), count: len(errs)}}
}

// ErrorIf returns Leaf(f()) when condition holds and a valid tree otherwise.
// f is not called when condition is false.
//
//	valtree.ErrorIf(age > 150, func() valtree.Error {
//	    return valtree.NewError("range").WithParam("max", 150).WithParam("value", age)
//	})
func ErrorIf(condition bool, f func() Error) Tree {
	if !condition {
		return Tree{}
	}
	return Leaf(f())
}

// TreeIf is ErrorIf for producers that build a whole tree.
func TreeIf(condition bool, f func() Tree) Tree {
	if !condition {
		return Tree{}
	}
	return f()
}

// Field places child under the field name. A valid child yields a valid tree.
func Field(name string, child Tree) Tree {
	if child.n == nil {
		return Tree{}
	}
	return Tree{&node{fields: map[string]*node{name: child.n}, count: child.n.count}}
}

// Item places child under the item index. Indices need not be contiguous.
// A valid child yields a valid tree.
func Item(index int, child Tree) Tree {
	if child.n == nil {
		return Tree{}
	}
	return Tree{&node{items: map[int]*node{index: child.n}, count: child.n.count}}
}

// At places child under every segment of p, outermost first.
func At(p Path, child Tree) Tree {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].IsIndex() {
			child = Item(p[i].Index(), child)
		} else {
			child = Field(p[i].Name(), child)
		}
	}
	return child
}

// Merge combines trees left to right. Root errors are concatenated in
// argument order; fields and items with the same key are merged recursively,
// others are unioned.
func Merge(trees ...Tree) Tree {
	var n *node
	for _, t := range trees {
		n = mergeNodes(n, t.n)
	}
	return Tree{n}
}

// Merge returns the combination of t and o, with t's root errors first.
func (t Tree) Merge(o Tree) Tree {
	return Tree{mergeNodes(t.n, o.n)}
}

// And returns t with err attached at the root after the existing errors.
func (t Tree) And(err Error) Tree {
	return t.Merge(Leaf(err))
}

// AndErrors returns t with errs attached at the root.
func (t Tree) AndErrors(errs ...Error) Tree {
	return t.Merge(Errors(errs...))
}

// AndErrorIf returns t with f() attached at the root when condition holds.
// f is not called otherwise.
func (t Tree) AndErrorIf(condition bool, f func() Error) Tree {
	if !condition {
		return t
	}
	return t.And(f())
}

// AndField returns t merged with Field(name, child).
func (t Tree) AndField(name string, child Tree) Tree {
	return t.Merge(Field(name, child))
}

// AndItem returns t merged with Item(index, child).
func (t Tree) AndItem(index int, child Tree) Tree {
	return t.Merge(Item(index, child))
}

// Items validates every element of s with f and places each result under
// its index.
func Items[T any](s []T, f func(index int, item T) Tree) Tree {
	var out Tree
	for i, v := range s {
		out = out.AndItem(i, f(i, v))
	}
	return out
}

// Fields validates every entry of m with f and places each result under the
// key rendered with fmt.Sprint. Keys are visited in sorted order, so results
// are deterministic.
func Fields[K cmp.Ordered, V any](m map[K]V, f func(key K, value V) Tree) Tree {
	var out Tree
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res := f(k, m[k])
		if res.IsValid() {
			continue
		}
		out = out.AndField(fmt.Sprint(k), res)
	}
	return out
}

// Some validates *p with f when p is not nil. An absent value is valid.
func Some[T any](p *T, f func(value T) Tree) Tree {
	if p == nil {
		return Tree{}
	}
	return f(*p)
}

// Nested returns v.Validate(), or a valid tree when v is nil or a nil pointer.
func Nested(v Validator) Tree {
	if v == nil {
		return Tree{}
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return Tree{}
	}
	return v.Validate()
}

// First returns a tree holding only the first error in render order, at its
// original position. A valid tree stays valid.
func (t Tree) First() Tree {
	var out Tree
	t.Walk(func(p Path, err Error) bool {
		out = At(p, Leaf(err))
		return false
	})
	return out
}
