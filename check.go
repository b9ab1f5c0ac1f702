package valtree

import (
	"context"
	"reflect"
	"strings"
)

// MissingRules reports the exported fields of a Ruler that no Bind covers.
// Each one becomes a missing_rule error at the field's position, so the
// result renders like any other tree:
//
//	.email: missing_rule: Field has no rules: field="Email"
//
// Fields whose type is itself a Ruler struct (or a pointer to one) are checked
// too and their gaps appear below the field. Embedded Rulers are flattened the
// way Validate flattens them. Self bindings cover no field.
//
// A field is skipped when its json tag is "-", its docs tag is "skip", its
// validate tag is "-", or exclude names it by Go or json name. exclude only
// applies to the top-level struct.
//
// Use in tests to catch forgotten fields:
//
//	assert.True(t, valtree.MissingRules(&MyStruct{}).IsValid())
//	assert.True(t, valtree.MissingRules(&MyStruct{}, "OptionalField").IsValid())
func MissingRules(structPtr any, exclude ...string) Tree {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	return missingRules(context.Background(), structPtr, skip, map[reflect.Type]bool{})
}

func missingRules(ctx context.Context, structPtr any, skip map[string]bool, seen map[reflect.Type]bool) Tree {
	fields, ok := rulesOf(ctx, structPtr)
	if !ok {
		return Tree{}
	}
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	seen[structVal.Type()] = true
	defer delete(seen, structVal.Type())

	covered := map[string]bool{}
	for _, fr := range ExpandFields(ctx, structPtr, fields) {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fr.self || fv.Kind() != reflect.Ptr {
			continue
		}
		if sf := FindStructField(structVal, fv); sf != nil {
			covered[fieldKey(*sf)] = true
		}
	}

	var out Tree
	for _, sf := range reflect.VisibleFields(structVal.Type()) {
		if sf.Anonymous || !sf.IsExported() || ignoredField(sf) {
			continue
		}
		key := fieldKey(sf)
		if skip[key] || skip[sf.Name] {
			continue
		}
		if !covered[key] {
			out = out.AndField(key, Leaf(NewError("missing_rule").
				WithMessage("Field has no rules").
				WithParam("field", sf.Name)))
		}
		if inner := nestedStruct(sf.Type, seen); inner != nil {
			out = out.AndField(key, missingRules(ctx, inner, nil, seen))
		}
	}
	return out
}

func rulesOf(ctx context.Context, structPtr any) ([]*FieldRules, bool) {
	switch r := structPtr.(type) {
	case Ruler:
		return r.Rules(), true
	case ContextRuler:
		return r.Rules(ctx), true
	}
	return nil, false
}

// nestedStruct returns a pointer to a new zero value of t when t is a struct
// or a pointer to one that is not already being checked.
func nestedStruct(t reflect.Type, seen map[reflect.Type]bool) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || seen[t] {
		return nil
	}
	return reflect.New(t).Interface()
}

func ignoredField(sf reflect.StructField) bool {
	return strings.Split(sf.Tag.Get("json"), ",")[0] == "-" ||
		strings.Split(sf.Tag.Get("docs"), ",")[0] == "skip" ||
		sf.Tag.Get("validate") == "-"
}

// fieldKey returns the json tag name if present, otherwise the Go field name.
func fieldKey(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag != "" && tag != "-" {
		return tag
	}
	return sf.Name
}
