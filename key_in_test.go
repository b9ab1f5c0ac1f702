package valtree_test

import (
	"testing"

	"github.com/Gobd/valtree"
	"github.com/stretchr/testify/assert"
)

type KeyInTest struct {
	Map     any
	Allowed []string
}

func (f *KeyInTest) Rules() []*valtree.FieldRules {
	return []*valtree.FieldRules{
		valtree.Bind(&f.Map,
			valtree.Required,
			valtree.KeyIn(f.Allowed...),
		),
	}
}

type keyInType string

func TestKeyInt(t *testing.T) {
	tests := []struct {
		name        string
		in          any
		allowed     []string
		expectError bool
	}{
		{
			name:        "basic",
			in:          map[string]string{"a": "b"},
			allowed:     []string{"a"},
			expectError: false,
		},
		{
			name:        "basic failure",
			in:          map[string]string{"a": "b"},
			allowed:     []string{"c"},
			expectError: true,
		},
		{
			name:        "complex",
			in:          map[string]any{"a": struct{}{}},
			allowed:     []string{"a"},
			expectError: false,
		},
		{
			name:        "number",
			in:          map[string]int{"a": 1},
			allowed:     []string{"a"},
			expectError: false,
		},
		{
			name:        "alias type as key",
			in:          map[keyInType]any{"a": "b"},
			allowed:     []string{"a"},
			expectError: false,
		},
		{
			name:        "non map",
			in:          "a",
			allowed:     []string{"a"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := KeyInTest{Map: tt.in, Allowed: tt.allowed}
			tree := valtree.Validate(&v)
			if tree.IsErr() {
				t.Log(tree)
			}
			assert.Equal(t, tt.expectError, tree.IsErr())
		})
	}
}

func TestKeyIn_EveryOffendingKey(t *testing.T) {
	tree := valtree.KeyIn("a").Validate(map[string]int{"a": 1, "x": 2, "y": 3})
	assert.Equal(t, []string{
		".x: key_in: Key not allowed",
		".y: key_in: Key not allowed",
	}, tree.Lines())
}

func TestKeyIn_StructKeys(t *testing.T) {
	type body struct {
		Name  string `json:"name"`
		Extra string `json:"extra"`
	}
	tree := valtree.KeyIn("name").Validate(body{})
	assert.Equal(t, []string{"extra"}, tree.FieldNames())
}
