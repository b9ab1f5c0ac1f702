package valtree

import (
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

type custom[T any] struct {
	f    func(T) Tree
	desc string
}

// Custom returns a validation rule that passes the value to f when it has
// type T, or points to a T. Any other value yields a type error. A nil value
// is valid. desc documents the rule in the schema.
//
//	valtree.Custom(func(nick string) valtree.Tree {
//	    return valtree.ErrorIf(!isAlpha(nick), func() valtree.Error { return valtree.NewError("alpha_only") })
//	}, "letters only")
func Custom[T any](f func(T) Tree, desc string) Rule {
	return custom[T]{
		f:    f,
		desc: desc,
	}
}

func (r custom[T]) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

func (r custom[T]) Validate(value any) Tree {
	if value == nil {
		return Tree{}
	}
	if v, ok := value.(T); ok {
		return r.f(v)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Tree{}
		}
		if v, ok := rv.Elem().Interface().(T); ok {
			return r.f(v)
		}
	}
	return Leaf(typeError(reflect.TypeFor[T]().String(), value))
}

// By wraps an error-returning function into a Rule. Errors are converted
// with [FromError], except that plain errors get the code "custom".
func By(f func(value any) error, desc string) Rule {
	return &inlineRule{f, desc}
}

type inlineRule struct {
	f    func(any) error
	desc string
}

func (r *inlineRule) Validate(value any) Tree {
	return fromError(r.f(value), "custom")
}

func (r *inlineRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

// typeError reports a value that a rule cannot check.
func typeError(expected string, value any) Error {
	return NewError("type").
		WithMessage("Unexpected type").
		WithParam("expected", expected).
		WithParam("got", fmt.Sprintf("%T", value))
}
