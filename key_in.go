package valtree

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// KeyIn ensures that the keys of a map are in the allowed values. Every
// offending key gets its own key_in error under that key. Structs are checked
// by their JSON keys.
func KeyIn(values ...string) Rule {
	valid := make(map[string]bool, len(values))
	for _, v := range values {
		valid[v] = true
	}
	return &keyInRule{values: values, valid: valid}
}

type keyInRule struct {
	values []string
	valid  map[string]bool
}

func (r *keyInRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, fmt.Sprintf("keys must be in (%s)", strings.Join(r.values, ",")))
	return nil
}

func (r *keyInRule) Validate(value any) Tree {
	keys, err := mapKeys(value)
	if err != nil {
		return Leaf(typeError("map", value))
	}
	var out Tree
	for _, k := range keys {
		out = out.AndField(k, ErrorIf(!r.valid[k], func() Error {
			return NewError("key_in").WithMessage("Key not allowed")
		}))
	}
	return out
}

// mapKeys returns the keys of a map rendered with fmt.Sprint, or the JSON keys
// of anything else that marshals to an object.
func mapKeys(value any) ([]string, error) {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() == reflect.Map {
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, fmt.Sprint(k.Interface()))
		}
		return keys, nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var jsonmap map[string]json.RawMessage
	if err := json.Unmarshal(b, &jsonmap); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(jsonmap))
	for k := range jsonmap {
		keys = append(keys, k)
	}
	return keys, nil
}
