// Package message translates valtree error codes into human-readable
// messages. Templates are loaded from YAML documents keyed by language and
// code, and may reference error params as %{name}:
//
//	en:
//	  range: "Must be between %{min} and %{max}"
//	de:
//	  range: "Muss zwischen %{min} und %{max} liegen"
//
// A Catalog plugs into rendering through [Catalog.MessageFunc]:
//
//	tree.Lines(valtree.WithMessages(catalog.MessageFunc("de-CH, en;q=0.8")))
package message

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/Gobd/valtree"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the default language of a Catalog.
const DefaultLanguage = "en"

var (
	ErrNoMessages      = errors.New("no messages found")
	ErrFailedToParse   = errors.New("failed to parse messages")
	ErrInvalidLanguage = errors.New("invalid language tag")
)

var placeholder = regexp.MustCompile(`%\{(\w+)\}`)

// Catalog holds message templates per language. It is safe for concurrent
// use once built.
type Catalog struct {
	templates   map[language.Tag]map[string]string
	tags        []language.Tag
	matcher     language.Matcher
	defaultLang string
	defaultTag  language.Tag
	logMissing  bool
	logger      *slog.Logger
}

// NewCatalog loads every *.yaml and *.yml file at the root of src. Later
// files override codes defined by earlier ones, in lexical file order.
func NewCatalog(src fs.FS, opts ...Option) (*Catalog, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(src, pattern)
		if err != nil {
			return nil, fmt.Errorf("listing message files: %w", err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)

	raw := map[string]map[string]string{}
	for _, name := range files {
		b, err := fs.ReadFile(src, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		doc, err := parse(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		for lang, msgs := range doc {
			if raw[lang] == nil {
				raw[lang] = map[string]string{}
			}
			maps.Copy(raw[lang], msgs)
		}
	}
	return build(raw, opts)
}

// Parse builds a Catalog from a single YAML document.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	return build(doc, opts)
}

func parse(data []byte) (map[string]map[string]string, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return doc, nil
}

func build(raw map[string]map[string]string, opts []Option) (*Catalog, error) {
	c := &Catalog{
		templates:   make(map[language.Tag]map[string]string, len(raw)),
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)), // Nope-logger by default
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(raw) == 0 {
		return nil, ErrNoMessages
	}

	defaultTag, err := language.Parse(c.defaultLang)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, c.defaultLang)
	}
	c.defaultTag = defaultTag

	// The matcher falls back to its first tag, so the default goes first.
	c.tags = []language.Tag{defaultTag}
	for _, lang := range slices.Sorted(maps.Keys(raw)) {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, lang)
		}
		c.templates[tag] = raw[lang]
		if tag != defaultTag {
			c.tags = append(c.tags, tag)
		}
	}
	c.matcher = language.NewMatcher(c.tags)

	c.logger.Debug("messages loaded", "languages", c.Languages())
	return c, nil
}

// Languages returns the languages with templates, default first.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tags))
	for _, t := range c.tags {
		if _, ok := c.templates[t]; ok {
			out = append(out, t.String())
		}
	}
	return out
}

// Match picks the best supported language for an Accept-Language style
// preference list such as "de-CH, fr;q=0.9". Unparsable or unsupported
// preferences yield the default language.
func (c *Catalog) Match(accept string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(prefs) == 0 {
		return c.defaultTag
	}
	_, index, confidence := c.matcher.Match(prefs...)
	if confidence == language.No {
		return c.defaultTag
	}
	return c.tags[index]
}

// MessageFunc returns a valtree.MessageFunc translating into the best match
// for accept. Codes without a template keep the error's own message.
func (c *Catalog) MessageFunc(accept string) valtree.MessageFunc {
	tag := c.Match(accept)
	return func(e valtree.Error) string {
		return c.translate(tag, e)
	}
}

// Translate renders the template for e's code in the best match for accept,
// or "" when there is none.
func (c *Catalog) Translate(accept string, e valtree.Error) string {
	return c.translate(c.Match(accept), e)
}

func (c *Catalog) translate(tag language.Tag, e valtree.Error) string {
	tmpl, ok := c.templates[tag][e.Code()]
	if !ok {
		tmpl, ok = c.templates[c.defaultTag][e.Code()]
	}
	if !ok {
		if c.logMissing {
			c.logger.Debug("message not found", "code", e.Code(), "language", tag.String())
		}
		return ""
	}
	return render(tmpl, e.Params())
}

// render substitutes %{name} placeholders with param values. Strings are
// inserted verbatim, other values as valtree.FormatParam renders them.
// Unknown placeholders are left untouched.
func render(tmpl string, params valtree.Params) string {
	if !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		v, ok := params.Get(m[2 : len(m)-1])
		if !ok {
			return m
		}
		if s, isString := v.(string); isString {
			return s
		}
		return valtree.FormatParam(v)
	})
}
