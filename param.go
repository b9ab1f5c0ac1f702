package valtree

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

type (
	// Param is one named error parameter.
	Param struct {
		Key   string
		Value any
	}

	// Params is an insertion-ordered list of params with unique keys.
	Params []Param

	// Char is a rune parameter. It renders single-quoted ('\n') instead of as a number.
	Char rune

	// Raw is a string parameter rendered verbatim, without quotes or escaping.
	Raw string
)

// Get returns the value stored under key.
func (ps Params) Get(key string) (any, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Len returns the number of params.
func (ps Params) Len() int { return len(ps) }

// Keys returns the param keys in insertion order.
func (ps Params) Keys() []string {
	keys := make([]string, len(ps))
	for i, p := range ps {
		keys[i] = p.Key
	}
	return keys
}

// with returns a new list; ps is never modified in place.
func (ps Params) with(key string, value any) Params {
	out := make(Params, len(ps), len(ps)+1)
	copy(out, ps)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

func (ps Params) sorted() Params {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Param) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

func (ps Params) equal(o Params) bool {
	return slices.EqualFunc(ps, o, func(a, b Param) bool {
		return a.Key == b.Key && reflect.DeepEqual(a.Value, b.Value)
	})
}

// MarshalJSON writes params as a JSON object in insertion order.
func (ps Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(jsonParam(p.Value))
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", p.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes params as a YAML mapping in insertion order.
func (ps Params) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range ps {
		var val yaml.Node
		if err := val.Encode(jsonParam(p.Value)); err != nil {
			return nil, fmt.Errorf("param %q: %w", p.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
			&val,
		)
	}
	return node, nil
}

// jsonParam maps param values onto plain serializable values.
func jsonParam(v any) any {
	switch v := v.(type) {
	case Char:
		return string(v)
	case Raw:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return v
}

// FormatParam renders a param value the way it appears in rendered error lines.
// Strings are double-quoted with Go escaping, Char values single-quoted, Raw
// values verbatim; numbers and booleans use their shortest natural form.
func FormatParam(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case Raw:
		return string(v)
	case Char:
		return strconv.QuoteRune(rune(v))
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	return fmt.Sprint(v)
}
