package valtree

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
)

// Validate is the single entry point for rule-based validation.
// If value implements Ruler, its field rules are run and every field value is
// descended into. If value implements Validator its own Validate is used. If
// value implements ValueRuler its rules are applied to the value directly.
// Collection elements of those kinds are validated and placed under their
// index or key. Anything else, including a nil pointer, is valid.
func Validate(value any) Tree {
	return validateCore(context.Background(), value)
}

// ValidateCtx is like Validate but passes a context to ContextRuler.Rules().
func ValidateCtx(ctx context.Context, value any) Tree {
	return validateCore(ctx, value)
}

// ValidateStruct validates a struct with explicit field rules.
// Prefer Validate for types implementing Ruler.
func ValidateStruct(structPtr any, fields ...*FieldRules) Tree {
	return validateStruct(context.Background(), structPtr, fields)
}

// UnmarshalAndValidate decodes JSON from b into dst, then validates. A decode
// failure is returned as the error and the tree is valid.
func UnmarshalAndValidate(b []byte, dst any) (Tree, error) {
	return UnmarshalAndValidateCtx(context.Background(), b, dst)
}

// UnmarshalAndValidateCtx is like UnmarshalAndValidate but passes a context to
// ContextRuler.Rules.
func UnmarshalAndValidateCtx(ctx context.Context, b []byte, dst any) (Tree, error) {
	if err := json.Unmarshal(b, dst); err != nil {
		return Tree{}, fmt.Errorf("decode: %w", err)
	}
	return ValidateCtx(ctx, dst), nil
}

// DecodeAndValidate reads JSON from r into dst using a streaming decoder,
// then validates. Use this instead of [UnmarshalAndValidate] when reading
// directly from an [io.Reader] such as an HTTP request body.
func DecodeAndValidate(r io.Reader, dst any) (Tree, error) {
	return DecodeAndValidateCtx(context.Background(), r, dst)
}

// DecodeAndValidateCtx is like DecodeAndValidate but passes a context to
// ContextRuler.Rules.
func DecodeAndValidateCtx(ctx context.Context, r io.Reader, dst any) (Tree, error) {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return Tree{}, fmt.Errorf("decode: %w", err)
	}
	return ValidateCtx(ctx, dst), nil
}

func validateCore(ctx context.Context, value any) Tree {
	if value == nil {
		return Tree{}
	}
	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return Tree{}
	}

	if r, ok := value.(Ruler); ok {
		return validateStruct(ctx, value, r.Rules())
	}
	if r, ok := value.(ContextRuler); ok {
		return validateStruct(ctx, value, r.Rules(ctx))
	}
	// Non-pointer struct value: check if *T implements one of the interfaces.
	// This happens when a struct field value is descended into.
	if rv.Kind() == reflect.Struct {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		pi := ptr.Interface()
		if r, ok := pi.(Ruler); ok {
			return validateStruct(ctx, pi, r.Rules())
		}
		if r, ok := pi.(ContextRuler); ok {
			return validateStruct(ctx, pi, r.Rules(ctx))
		}
		if v, ok := pi.(Validator); ok {
			return v.Validate()
		}
	}
	if v, ok := value.(Validator); ok {
		return v.Validate()
	}

	// ValueRuler: non-struct types with their own validation rules.
	if vr, ok := value.(ValueRuler); ok {
		res, _ := applyRules(value, vr.ValueRules())
		return res
	}

	rv = reflect.Indirect(rv)

	switch rv.Kind() {
	case reflect.Map:
		if shouldAutoValidate(rv.Type().Elem()) {
			return validateMap(ctx, rv)
		}
	case reflect.Slice, reflect.Array:
		if shouldAutoValidate(rv.Type().Elem()) {
			return validateSlice(ctx, rv)
		}
	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			return validateCore(ctx, rv.Elem().Interface())
		}
	}

	return Tree{}
}

// validateStruct runs the bound rules of every field, descends into the field
// values and places each result under the field name. Self bindings land on
// the struct itself.
func validateStruct(ctx context.Context, structPtr any, fields []*FieldRules) Tree {
	structVal := reflect.ValueOf(structPtr)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("valtree: rules must be bound to a non-nil struct pointer, got %T", structPtr))
	}
	structVal = structVal.Elem()

	flat := ExpandFields(ctx, structPtr, fields)
	resolveNames(structVal, flat)

	var out Tree
	for _, fr := range flat {
		if fr.self {
			res, _ := applyRules(structPtr, fr.rules)
			out = out.Merge(res)
			continue
		}
		value := reflect.ValueOf(fr.fieldPtr).Elem().Interface()
		res, skipped := applyRules(value, fr.rules)
		if !skipped {
			res = res.Merge(validateCore(ctx, value))
		}
		out = out.AndField(fr.tag, res)
	}
	return out
}

var (
	validatorType  = reflect.TypeFor[Validator]()
	valueRulerType = reflect.TypeFor[ValueRuler]()
)

// shouldAutoValidate checks if elements of the given type can be auto-validated.
// Recurses into nested collections (e.g. map[string][]Ruler).
func shouldAutoValidate(elemType reflect.Type) bool {
	if elemType.Kind() == reflect.Ptr {
		return shouldAutoValidate(elemType.Elem())
	}
	if elemType.Kind() == reflect.Interface {
		return true
	}
	if elemType.Implements(validatorType) || elemType.Implements(valueRulerType) {
		return true
	}
	if elemType.Kind() == reflect.Struct {
		pi := reflect.New(elemType).Interface()
		if _, ok := pi.(Ruler); ok {
			return true
		}
		if _, ok := pi.(ContextRuler); ok {
			return true
		}
		if _, ok := pi.(Validator); ok {
			return true
		}
	}
	if elemType.Kind() == reflect.Slice || elemType.Kind() == reflect.Array || elemType.Kind() == reflect.Map {
		return shouldAutoValidate(elemType.Elem())
	}
	return false
}

// validateElement validates a single collection element.
func validateElement(ctx context.Context, v reflect.Value) Tree {
	if (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() {
		return Tree{}
	}
	// Get a pointer for pointer-receiver interfaces.
	if v.CanAddr() && v.Kind() == reflect.Struct {
		return validateCore(ctx, v.Addr().Interface())
	}
	return validateCore(ctx, v.Interface())
}

func validateSlice(ctx context.Context, rv reflect.Value) Tree {
	var out Tree
	for i := range rv.Len() {
		out = out.AndItem(i, validateElement(ctx, rv.Index(i)))
	}
	return out
}

func validateMap(ctx context.Context, rv reflect.Value) Tree {
	keys := rv.MapKeys()
	names := make(map[string]reflect.Value, len(keys))
	for _, key := range keys {
		names[fmt.Sprint(key.Interface())] = key
	}
	var out Tree
	for _, name := range slices.Sorted(maps.Keys(names)) {
		out = out.AndField(name, validateElement(ctx, rv.MapIndex(names[name])))
	}
	return out
}
