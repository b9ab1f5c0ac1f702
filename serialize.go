package valtree

import (
	"encoding/json"
	"strings"
)

// Reserved keys used when a position has more than one kind of content.
const (
	ErrorsKey = "$errors"
	ItemsKey  = "$items"
)

// Record is the serialized form of one Error. Message is nil when no message
// was set and points to "" for an explicitly empty one.
type Record struct {
	Code    string  `json:"code" yaml:"code"`
	Message *string `json:"message,omitempty" yaml:"message,omitempty"`
	Params  Params  `json:"params,omitempty" yaml:"params,omitempty"`
}

// Record returns the serialized form of e.
func (e Error) Record() Record {
	r := Record{Code: e.code, Params: e.Params()}
	if e.hasMessage {
		msg := e.message
		r.Message = &msg
	}
	return r
}

// Serialize returns a value shaped like the validated data:
//
//   - a valid tree is nil
//   - a position with only its own errors is a []Record
//   - a position with only fields is a map[string]any keyed by field name
//   - a position with only items is a map[int]any keyed by index
//   - any other position is a map[string]any holding the field keys plus
//     ErrorsKey ([]Record) and ItemsKey (map[int]any) when present
//
// Fields and items without errors never appear. In every object keyed by
// field name, a field whose name starts with "$" gets one more "$" in front
// (a field "$errors" is written as "$$errors"), so field keys never collide
// with the reserved keys. See [FieldKey].
func (t Tree) Serialize() any {
	if t.n == nil {
		return nil
	}
	return serializeNode(t.n)
}

func serializeNode(n *node) any {
	kinds := 0
	for _, present := range []bool{len(n.errors) > 0, len(n.fields) > 0, len(n.items) > 0} {
		if present {
			kinds++
		}
	}

	if kinds == 1 {
		switch {
		case len(n.errors) > 0:
			return records(n.errors)
		case len(n.fields) > 0:
			return serializeFields(n.fields)
		default:
			return serializeItems(n.items)
		}
	}

	out := serializeFields(n.fields)
	if len(n.errors) > 0 {
		out[ErrorsKey] = records(n.errors)
	}
	if len(n.items) > 0 {
		out[ItemsKey] = serializeItems(n.items)
	}
	return out
}

func records(errs []Error) []Record {
	out := make([]Record, len(errs))
	for i, e := range errs {
		out[i] = e.Record()
	}
	return out
}

func serializeFields(fields map[string]*node) map[string]any {
	out := make(map[string]any, len(fields)+2)
	for name, child := range fields {
		out[FieldKey(name)] = serializeNode(child)
	}
	return out
}

// FieldKey returns the key a field is serialized under: the name itself, or
// the name with an extra leading "$" when it starts with "$".
func FieldKey(name string) string {
	if strings.HasPrefix(name, "$") {
		return "$" + name
	}
	return name
}

func serializeItems(items map[int]*node) map[int]any {
	out := make(map[int]any, len(items))
	for i, child := range items {
		out[i] = serializeNode(child)
	}
	return out
}

// MarshalJSON implements json.Marshaler using the Serialize shape. A valid
// tree marshals to null.
func (t Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Serialize())
}

// MarshalYAML implements yaml.Marshaler using the Serialize shape.
func (t Tree) MarshalYAML() (any, error) {
	return t.Serialize(), nil
}
