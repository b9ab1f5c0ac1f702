package message_test

import (
	"bytes"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/Gobd/valtree"
	"github.com/Gobd/valtree/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messagesYAML = `
en:
  range: "Must be between %{min} and %{max}"
  required: "Is required"
  pattern: "Must match %{pattern} (%{unknown})"
de:
  range: "Muss zwischen %{min} und %{max} liegen"
`

func rangeError() valtree.Error {
	return valtree.NewError("range").
		WithMessage("Number not in range").
		WithParam("min", 15).
		WithParam("max", 100).
		WithParam("value", 200)
}

func TestParse(t *testing.T) {
	c, err := message.Parse([]byte(messagesYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de"}, c.Languages())
}

func TestParse_Errors(t *testing.T) {
	_, err := message.Parse([]byte("en: [not, a, map]"))
	require.ErrorIs(t, err, message.ErrFailedToParse)

	_, err = message.Parse([]byte(""))
	require.ErrorIs(t, err, message.ErrNoMessages)

	_, err = message.Parse([]byte("not_a-language!:\n  range: x\n"))
	require.ErrorIs(t, err, message.ErrInvalidLanguage)

	_, err = message.Parse([]byte(messagesYAML), message.WithDefaultLanguage("???"))
	require.ErrorIs(t, err, message.ErrInvalidLanguage)
}

func TestMatch(t *testing.T) {
	c, err := message.Parse([]byte(messagesYAML))
	require.NoError(t, err)

	tests := []struct {
		accept string
		want   string
	}{
		{accept: "de-CH, en;q=0.8", want: "de"},
		{accept: "de", want: "de"},
		{accept: "en-US", want: "en"},
		{accept: "ja", want: "en"},
		{accept: "", want: "en"},
		{accept: ";;;", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			base, _ := c.Match(tt.accept).Base()
			assert.Equal(t, tt.want, base.String())
		})
	}
}

func TestTranslate(t *testing.T) {
	c, err := message.Parse([]byte(messagesYAML))
	require.NoError(t, err)

	assert.Equal(t, "Muss zwischen 15 und 100 liegen", c.Translate("de", rangeError()))
	assert.Equal(t, "Must be between 15 and 100", c.Translate("fr", rangeError()))

	// falls back to the default language
	assert.Equal(t, "Is required", c.Translate("de", valtree.NewError("required")))

	// unknown codes keep their own message
	assert.Equal(t, "", c.Translate("de", valtree.NewError("alpha_only")))

	// strings are inserted unquoted, unknown placeholders stay
	e := valtree.NewError("pattern").WithParam("pattern", "^[a-z]+$")
	assert.Equal(t, "Must match ^[a-z]+$ (%{unknown})", c.Translate("en", e))
}

func TestMessageFunc(t *testing.T) {
	c, err := message.Parse([]byte(messagesYAML))
	require.NoError(t, err)

	tree := valtree.Field("age", valtree.Leaf(rangeError())).
		AndField("nick", valtree.Leaf(valtree.NewError("alpha_only")))

	assert.Equal(t, []string{
		".age: range: Muss zwischen 15 und 100 liegen: max=100, min=15, value=200",
		".nick: alpha_only",
	}, tree.Lines(valtree.WithMessages(c.MessageFunc("de-CH"))))
}

func TestNewCatalog(t *testing.T) {
	src := fstest.MapFS{
		"a.yaml":     {Data: []byte("en:\n  range: first\n  required: Is required\n")},
		"b.yml":      {Data: []byte("en:\n  range: second\nfr:\n  range: Hors limites\n")},
		"readme.txt": {Data: []byte("ignored")},
	}
	c, err := message.NewCatalog(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fr"}, c.Languages())
	assert.Equal(t, "second", c.Translate("en", rangeError()))
	assert.Equal(t, "Hors limites", c.Translate("fr-BE", rangeError()))
	assert.Equal(t, "Is required", c.Translate("fr", valtree.NewError("required")))
}

func TestNewCatalog_Errors(t *testing.T) {
	_, err := message.NewCatalog(fstest.MapFS{})
	require.ErrorIs(t, err, message.ErrNoMessages)

	_, err = message.NewCatalog(fstest.MapFS{"bad.yaml": {Data: []byte("en: [1, 2]")}})
	require.ErrorIs(t, err, message.ErrFailedToParse)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestWithDefaultLanguage(t *testing.T) {
	c, err := message.Parse([]byte(messagesYAML), message.WithDefaultLanguage("de"))
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "en"}, c.Languages())
	assert.Equal(t, "Muss zwischen 15 und 100 liegen", c.Translate("ja", rangeError()))
}

func TestWithMissingLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := message.Parse([]byte(messagesYAML), message.WithLogger(logger), message.WithMissingLogging(true))
	require.NoError(t, err)

	assert.Equal(t, "", c.Translate("de", valtree.NewError("alpha_only")))
	assert.Contains(t, buf.String(), "message not found")
	assert.Contains(t, buf.String(), "code=alpha_only")

	buf.Reset()
	c, err = message.Parse([]byte(messagesYAML), message.WithLogger(logger))
	require.NoError(t, err)
	c.Translate("de", valtree.NewError("alpha_only"))
	assert.NotContains(t, buf.String(), "message not found")
}
