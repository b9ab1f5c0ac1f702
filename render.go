package valtree

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
)

type (
	// MessageFunc supplies the display message for an error. Returning ""
	// keeps the error's own message.
	MessageFunc func(Error) string

	// RenderOption configures Lines.
	RenderOption func(*renderConfig)

	renderConfig struct {
		messages MessageFunc
		noParams bool
	}
)

// WithMessages renders messages produced by f, e.g. a translation catalog.
func WithMessages(f MessageFunc) RenderOption {
	return func(c *renderConfig) {
		c.messages = f
	}
}

// WithoutParams leaves params out of rendered lines.
func WithoutParams() RenderOption {
	return func(c *renderConfig) {
		c.noParams = true
	}
}

// Walk calls f for every error in render order with the error's path: a
// position's own errors first, in attachment order, then its fields sorted by
// name, then its items by ascending index. Walk stops when f returns false.
func (t Tree) Walk(f func(p Path, err Error) bool) {
	if t.n == nil {
		return
	}
	walk(t.n, make(Path, 0, 8), f)
}

func walk(n *node, p Path, f func(Path, Error) bool) bool {
	for _, err := range n.errors {
		if !f(slices.Clone(p), err) {
			return false
		}
	}
	if len(n.fields) > 0 {
		names := make([]string, 0, len(n.fields))
		for name := range n.fields {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if !walk(n.fields[name], append(p, Name(name)), f) {
				return false
			}
		}
	}
	if len(n.items) > 0 {
		indices := make([]int, 0, len(n.items))
		for i := range n.items {
			indices = append(indices, i)
		}
		slices.Sort(indices)
		for _, i := range indices {
			if !walk(n.items[i], append(p, Index(i)), f) {
				return false
			}
		}
	}
	return true
}

// Lines renders one "path: body" line per error, in render order.
//
//	.age: range: Number not in range: max=100, min=15, value=200
//	.cars[2]: char_length: Invalid character length: max=50, value=55
//	.nick: alpha_only
func (t Tree) Lines(opts ...RenderOption) []string {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	lines := make([]string, 0, t.Len())
	t.Walk(func(p Path, err Error) bool {
		lines = append(lines, p.String()+": "+cfg.body(err))
		return true
	})
	return lines
}

func (c *renderConfig) body(err Error) string {
	msg, has := err.message, err.hasMessage
	if c.messages != nil {
		if m := c.messages(err); m != "" {
			msg, has = m, true
		}
	}
	return err.body(msg, has, !c.noParams)
}

// String joins Lines with newlines. A valid tree renders as "".
func (t Tree) String() string {
	return strings.Join(t.Lines(), "\n")
}

// Pair is a rendered path with one rendered error body. It marshals to a
// two-element JSON array.
type Pair struct {
	Path  string
	Error string
}

// MarshalJSON implements json.Marshaler.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Path, p.Error})
}

// Pairs returns the flat (path, error) form of the tree, in render order.
func (t Tree) Pairs(opts ...RenderOption) []Pair {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	pairs := make([]Pair, 0, t.Len())
	t.Walk(func(p Path, err Error) bool {
		pairs = append(pairs, Pair{Path: p.String(), Error: cfg.body(err)})
		return true
	})
	return pairs
}

// LogValue implements slog.LogValuer. Each path becomes one attribute whose
// value is the error bodies at that path joined by "; ".
func (t Tree) LogValue() slog.Value {
	pairs := t.Pairs()
	attrs := make([]slog.Attr, 0, len(pairs))
	for i := 0; i < len(pairs); {
		j := i + 1
		bodies := []string{pairs[i].Error}
		for j < len(pairs) && pairs[j].Path == pairs[i].Path {
			bodies = append(bodies, pairs[j].Error)
			j++
		}
		attrs = append(attrs, slog.String(pairs[i].Path, strings.Join(bodies, "; ")))
		i = j
	}
	return slog.GroupValue(attrs...)
}
