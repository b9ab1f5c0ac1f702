package valtree_test

import (
	"encoding/json"
	"strings"
	"testing"

	v "github.com/Gobd/valtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSerialize_Scenario(t *testing.T) {
	out, ok := scenarioTree().Serialize().(map[string]any)
	require.True(t, ok)
	assert.Len(t, out, 3)
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "cars")
	assert.Contains(t, out, "nick")

	cars, ok := out["cars"].(map[string]any)
	require.True(t, ok)
	items, ok := cars[v.ItemsKey].(map[int]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
	assert.Contains(t, items, 2)

	b, err := json.Marshal(scenarioTree())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"age": [{"code": "range", "message": "Number not in range", "params": {"min": 15, "max": 100, "value": 200}}],
		"cars": {
			"$errors": [{"code": "length", "message": "Invalid length", "params": {"max": 3, "value": 4}}],
			"$items": {"2": [{"code": "char_length", "message": "Invalid character length", "params": {"max": 50, "value": 55}}]}
		},
		"nick": [{"code": "alpha_only"}]
	}`, string(b))
}

func TestSerialize_Shapes(t *testing.T) {
	assert.Nil(t, v.Valid().Serialize())

	leaves := v.Errors(v.NewError("a"), v.NewError("b")).Serialize()
	assert.Equal(t, []v.Record{{Code: "a"}, {Code: "b"}}, leaves)

	items := v.Item(4, v.Leaf(v.NewError("a"))).AndItem(0, v.Leaf(v.NewError("b"))).Serialize()
	assert.Equal(t, map[int]any{
		0: []v.Record{{Code: "b"}},
		4: []v.Record{{Code: "a"}},
	}, items)

	mixed := v.Leaf(v.NewError("root")).
		AndField("name", v.Leaf(v.NewError("required"))).
		AndItem(1, v.Leaf(v.NewError("item"))).
		Serialize()
	assert.Equal(t, map[string]any{
		v.ErrorsKey: []v.Record{{Code: "root"}},
		"name":      []v.Record{{Code: "required"}},
		v.ItemsKey:  map[int]any{1: []v.Record{{Code: "item"}}},
	}, mixed)

	b, err := json.Marshal(v.Valid())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestSerialize_ReservedFieldNames(t *testing.T) {
	tree := v.Leaf(v.NewError("root")).
		AndField("$errors", v.Leaf(v.NewError("field_err"))).
		AndField("$$x", v.Item(0, v.Leaf(v.NewError("deep"))))

	b, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$errors": [{"code": "root"}],
		"$$errors": [{"code": "field_err"}],
		"$$$x": {"0": [{"code": "deep"}]}
	}`, string(b))

	fieldsOnly := v.Field("$items", v.Leaf(v.NewError("a"))).Serialize()
	assert.Equal(t, map[string]any{"$$items": []v.Record{{Code: "a"}}}, fieldsOnly)

	assert.Equal(t, "name", v.FieldKey("name"))
	assert.Equal(t, "$$errors", v.FieldKey("$errors"))
}

func TestSerialize_EmptyMessage(t *testing.T) {
	b, err := json.Marshal(v.Leaf(v.NewError("c")))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code": "c"}]`, string(b))

	b, err = json.Marshal(v.Leaf(v.NewError("c").WithMessage("")))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code": "c", "message": ""}]`, string(b))

	y, err := yaml.Marshal(v.Leaf(v.NewError("c").WithMessage("")))
	require.NoError(t, err)
	assert.Contains(t, string(y), `message: ""`)
}

func TestSerialize_ParamOrder(t *testing.T) {
	tree := v.Field("age", v.Leaf(rangeErr(15, 100, 200)))

	b, err := json.Marshal(tree)
	require.NoError(t, err)
	s := string(b)
	assert.Less(t, strings.Index(s, `"min"`), strings.Index(s, `"max"`))
	assert.Less(t, strings.Index(s, `"max"`), strings.Index(s, `"value"`))

	y, err := yaml.Marshal(tree)
	require.NoError(t, err)
	s = string(y)
	assert.Less(t, strings.Index(s, "min:"), strings.Index(s, "max:"))
	assert.Less(t, strings.Index(s, "max:"), strings.Index(s, "value:"))

	var decoded map[string][]struct {
		Code    string         `yaml:"code"`
		Message string         `yaml:"message"`
		Params  map[string]int `yaml:"params"`
	}
	require.NoError(t, yaml.Unmarshal(y, &decoded))
	require.Len(t, decoded["age"], 1)
	assert.Equal(t, "range", decoded["age"][0].Code)
	assert.Equal(t, map[string]int{"min": 15, "max": 100, "value": 200}, decoded["age"][0].Params)
}

func TestSerialize_SpecialParams(t *testing.T) {
	e := v.NewError("pattern").WithParam("char", v.Char('x')).WithParam("pattern", v.Raw("^a$"))
	b, err := json.Marshal(v.Leaf(e))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code": "pattern", "params": {"char": "x", "pattern": "^a$"}}]`, string(b))
}
