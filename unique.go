package valtree

import (
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

type uniqueRule struct {
	f    func(i int) any
	desc string
}

func (r uniqueRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.UniqueItems = true
	appendDescription(ref, r.desc)
	return nil
}

// Unique returns a validation rule that checks if all elements in a slice are
// unique according to f, which maps an element index to a key. A key that is
// not comparable, such as a slice, is reported as a type error.
//
//	valtree.Bind(&o.Lines, valtree.Unique(func(i int) any { return o.Lines[i].SKU }, "by SKU"))
func Unique(f func(i int) any, desc string) Rule {
	return uniqueRule{
		desc: desc,
		f:    f,
	}
}

// Validate reports one unique error with the index of the first duplicate.
func (r uniqueRule) Validate(value any) Tree {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return Tree{}
	}

	rv = reflect.Indirect(rv)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seen := make(map[any]struct{}, rv.Len())
		for i := range rv.Len() {
			k := r.f(i)
			if kv := reflect.ValueOf(k); kv.IsValid() && !kv.Comparable() {
				return Leaf(typeError("comparable key", k).WithParam("index", i))
			}
			if _, dup := seen[k]; dup {
				return Leaf(NewError("unique").WithMessage("Items are not unique").WithParam("index", i))
			}
			seen[k] = struct{}{}
		}
	default:
		return Leaf(typeError("slice or array", value))
	}
	return Tree{}
}
