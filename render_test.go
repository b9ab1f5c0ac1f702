package valtree_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	v "github.com/Gobd/valtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioTree builds the user record result by hand.
func scenarioTree() v.Tree {
	nick := v.Leaf(v.NewError("alpha_only"))
	age := v.Leaf(rangeErr(15, 100, 200))
	cars := v.Leaf(v.NewError("length").WithMessage("Invalid length").WithParam("max", 3).WithParam("value", 4)).
		AndItem(2, v.Leaf(v.NewError("char_length").WithMessage("Invalid character length").WithParam("max", 50).WithParam("value", 55)))

	// Construction order differs from render order on purpose.
	return v.Field("nick", nick).AndField("cars", cars).AndField("age", age)
}

func TestRender_Scenario(t *testing.T) {
	tree := scenarioTree()
	require.True(t, tree.IsErr())
	assert.Equal(t, `.age: range: Number not in range: max=100, min=15, value=200
.cars: length: Invalid length: max=3, value=4
.cars[2]: char_length: Invalid character length: max=50, value=55
.nick: alpha_only`, tree.String())
}

func TestRender_Order(t *testing.T) {
	tree := v.Merge(
		v.Item(10, v.Leaf(v.NewError("ten"))),
		v.Field("b", v.Leaf(v.NewError("b"))),
		v.Item(2, v.Leaf(v.NewError("two"))),
		v.Leaf(v.NewError("root1")),
		v.Field("a", v.Item(1, v.Leaf(v.NewError("a1"))).And(v.NewError("a"))),
		v.Leaf(v.NewError("root2")),
	)
	assert.Equal(t, []string{
		".: root1",
		".: root2",
		".a: a",
		".a[1]: a1",
		".b: b",
		".[2]: two",
		".[10]: ten",
	}, tree.Lines())
}

func TestRender_Paths(t *testing.T) {
	tests := []struct {
		path v.Path
		want string
	}{
		{path: nil, want: "."},
		{path: v.Path{v.Name("age")}, want: ".age"},
		{path: v.Path{v.Index(0)}, want: ".[0]"},
		{path: v.Path{v.Name("cars"), v.Index(2), v.Index(3)}, want: ".cars[2][3]"},
		{path: v.Path{v.Name("first name")}, want: `."first name"`},
		{path: v.Path{v.Name(`say "hi"`)}, want: `."say \"hi\""`},
		{path: v.Path{v.Name("")}, want: `.""`},
		{path: v.Path{v.Name("snake_case_1")}, want: ".snake_case_1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestRender_Params(t *testing.T) {
	type currency string

	e := v.NewError("p").
		WithParam("str", "a\"b").
		WithParam("named", currency("EUR")).
		WithParam("char", v.Char('\n')).
		WithParam("raw", v.Raw("[a-z]+")).
		WithParam("float", 1.5).
		WithParam("bool", true).
		WithParam("nil", nil).
		WithParam("dur", 2*time.Second).
		WithParam("num", json.Number("12.50"))

	assert.Equal(t,
		`p: bool=true, char='\n', dur=2s, float=1.5, named="EUR", nil=null, num=12.50, raw=[a-z]+, str="a\"b"`,
		e.String())
}

func TestRender_Options(t *testing.T) {
	tree := v.Field("age", v.Leaf(rangeErr(15, 100, 200))).
		AndField("nick", v.Leaf(v.NewError("alpha_only")))

	messages := func(e v.Error) string {
		if e.Code() == "range" {
			return "Zahl außerhalb des Bereichs"
		}
		return ""
	}
	assert.Equal(t, []string{
		".age: range: Zahl außerhalb des Bereichs: max=100, min=15, value=200",
		".nick: alpha_only",
	}, tree.Lines(v.WithMessages(messages)))

	assert.Equal(t, []string{
		".age: range: Number not in range",
		".nick: alpha_only",
	}, tree.Lines(v.WithoutParams()))
}

func TestRender_Valid(t *testing.T) {
	assert.Empty(t, v.Valid().Lines())
	assert.Equal(t, "", v.Valid().String())
	assert.Empty(t, v.Valid().Pairs())
}

func TestPairs(t *testing.T) {
	b, err := json.Marshal(scenarioTree().Pairs(v.WithoutParams()))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		[".age", "range: Number not in range"],
		[".cars", "length: Invalid length"],
		[".cars[2]", "char_length: Invalid character length"],
		[".nick", "alpha_only"]
	]`, string(b))
}

func TestLogValue(t *testing.T) {
	tree := v.Field("nick", v.Errors(v.NewError("alpha_only"), v.NewError("length"))).
		AndField("age", v.Leaf(v.NewError("range")))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("rejected", "errors", tree)

	var entry map[string]any
	require.NoError(t, json.NewDecoder(strings.NewReader(buf.String())).Decode(&entry))
	assert.Equal(t, map[string]any{
		".age":  "range",
		".nick": "alpha_only; length",
	}, entry["errors"])
}
