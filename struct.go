package valtree

import (
	"context"
	"fmt"
	"reflect"
)

// Bind creates a FieldRules binding a struct field pointer to its validation rules.
// Errors are reported under the field's json name, or its Go name when it has none.
func Bind[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

// Self binds rules to the struct itself. Their errors are attached directly to
// the struct's position, next to its field errors, which suits invariants that
// span several fields. Rules receive structPtr as their value.
func Self(structPtr any, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: structPtr,
		self:     true,
		rules:    rules,
	}
}

// ExpandFields flattens embedded Ruler/ContextRuler field rules into the parent's rule set.
// Non-embedded fields are returned as-is. Embedded Ruler fields have their Rules() inlined
// recursively, so error paths and schema properties are flat (not nested under the embedded name).
func ExpandFields(ctx context.Context, structPtr any, fields []*FieldRules) []*FieldRules {
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	if !structVal.IsValid() || structVal.Kind() != reflect.Struct {
		return fields
	}

	result := make([]*FieldRules, 0, len(fields))
	for _, fr := range fields {
		if fr.self {
			result = append(result, fr)
			continue
		}
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() == reflect.Ptr {
			if sf := FindStructField(structVal, fv); sf != nil && sf.Anonymous {
				embeddedPtr := fv.Interface()
				if r, ok := embeddedPtr.(Ruler); ok {
					result = append(result, ExpandFields(ctx, embeddedPtr, r.Rules())...)
					continue
				}
				if r, ok := embeddedPtr.(ContextRuler); ok {
					result = append(result, ExpandFields(ctx, embeddedPtr, r.Rules(ctx))...)
					continue
				}
			}
		}
		result = append(result, fr)
	}
	return result
}

// FindStructField returns the field of structVal whose address is fieldPtr,
// searching promoted fields of embedded structs too. structVal must be addressable.
func FindStructField(structVal, fieldPtr reflect.Value) *reflect.StructField {
	if !structVal.CanAddr() || fieldPtr.IsNil() {
		return nil
	}
	addr := fieldPtr.Pointer()
	elemType := fieldPtr.Type().Elem()
	for i := range structVal.NumField() {
		fv := structVal.Field(i)
		sf := structVal.Type().Field(i)
		if fv.Addr().Pointer() == addr && fv.Type() == elemType {
			return &sf
		}
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if inner := FindStructField(fv, fieldPtr); inner != nil {
				return inner
			}
		}
	}
	return nil
}

// resolveNames sets the error key of every binding. A pointer that does not
// point into the struct is a programming error and panics.
func resolveNames(structVal reflect.Value, fields []*FieldRules) {
	for i, fr := range fields {
		if fr.self {
			continue
		}
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("valtree: rule target for field index %d must be a pointer, got %s", i, fv.Kind()))
		}
		sf := FindStructField(structVal, fv)
		if sf == nil {
			panic(fmt.Sprintf("valtree: rule target for field index %d not found in struct %s", i, structVal.Type()))
		}
		fr.tag = fieldKey(*sf)
	}
}
