package valtree

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
)

// Each returns a validation rule that applies the given rules to each element
// of a slice or array and places every result under the element's index.
func Each(rules ...Rule) Rule {
	return &eachRule{rules}
}

type eachRule struct {
	rules []Rule
}

func (r *eachRule) Validate(value any) Tree {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return Tree{}
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return Leaf(typeError("slice or array", value))
	}
	var out Tree
	for i := range rv.Len() {
		res, _ := applyRules(rv.Index(i).Interface(), r.rules)
		out = out.AndItem(i, res)
	}
	return out
}

func (r *eachRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	return describeNested(name, schema, ref, ref.Value.Items, r.rules)
}

// EachValue returns a validation rule that applies the given rules to each
// value of a map and places every result under the key rendered with fmt.Sprint.
func EachValue(rules ...Rule) Rule {
	return &eachValueRule{rules}
}

type eachValueRule struct {
	rules []Rule
}

func (r *eachValueRule) Validate(value any) Tree {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return Tree{}
	}
	if rv.Kind() != reflect.Map {
		return Leaf(typeError("map", value))
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})
	var out Tree
	for _, k := range keys {
		res, _ := applyRules(rv.MapIndex(k).Interface(), r.rules)
		out = out.AndField(fmt.Sprint(k.Interface()), res)
	}
	return out
}

func (r *eachValueRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	var values *openapi3.SchemaRef
	if ref.Value.AdditionalProperties.Schema != nil {
		values = ref.Value.AdditionalProperties.Schema
	}
	return describeNested(name, schema, ref, values, r.rules)
}

// Optional returns a validation rule that applies the given rules to the
// value a non-nil pointer or interface holds. Nil is valid.
func Optional(rules ...Rule) Rule {
	return &optionalRule{rules}
}

type optionalRule struct {
	rules []Rule
}

func (r *optionalRule) Validate(value any) Tree {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return Tree{}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Tree{}
	}
	res, _ := applyRules(rv.Interface(), r.rules)
	return res
}

func (r *optionalRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Nullable = true
	for _, rule := range r.rules {
		if err := rule.Describe(name, schema, ref); err != nil {
			return err
		}
	}
	return nil
}

// describeNested documents rules on the element schema when there is one,
// and on the field itself otherwise.
func describeNested(name string, schema *openapi3.Schema, ref, elem *openapi3.SchemaRef, rules []Rule) error {
	target := ref
	if elem != nil && elem.Ref == "" && elem.Value != nil {
		target = elem
	}
	for _, rule := range rules {
		if err := rule.Describe(name, schema, target); err != nil {
			return err
		}
	}
	return nil
}
