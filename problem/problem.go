// Package problem writes validation error trees as HTTP responses and
// decodes validated request bodies.
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/Gobd/valtree"
	"github.com/Gobd/valtree/message"
)

// DefaultMaxBodySize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxBodySize = 1 << 20

// DefaultMessage is the top-level message of a validation response.
const DefaultMessage = "Validation failed"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON")
)

// Response is the JSON body of a validation error response.
type Response struct {
	Message string       `json:"message"`
	Errors  valtree.Tree `json:"errors"`
	Lines   []string     `json:"lines,omitempty"`
}

type config struct {
	status   int
	message  string
	catalog  *message.Catalog
	noLines  bool
	maxBytes int64
}

// Option configures Write and Decode.
type Option func(*config)

// WithStatus overrides the response status. Default is 422.
func WithStatus(code int) Option {
	return func(c *config) {
		if code > 0 {
			c.status = code
		}
	}
}

// WithMessage overrides the top-level message.
func WithMessage(msg string) Option {
	return func(c *config) {
		c.message = msg
	}
}

// WithCatalog translates rendered lines into the language negotiated from
// the request's Accept-Language header.
func WithCatalog(catalog *message.Catalog) Option {
	return func(c *config) {
		c.catalog = catalog
	}
}

// WithoutLines leaves the rendered lines out of the response.
func WithoutLines() Option {
	return func(c *config) {
		c.noLines = true
	}
}

// WithMaxBodySize limits the request body size accepted by Decode.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		status:   http.StatusUnprocessableEntity,
		message:  DefaultMessage,
		maxBytes: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewResponse builds the response body for tree as Write would send it to r.
func NewResponse(r *http.Request, tree valtree.Tree, opts ...Option) Response {
	return newConfig(opts).response(r, tree)
}

func (c *config) response(r *http.Request, tree valtree.Tree) Response {
	resp := Response{Message: c.message, Errors: tree}
	if c.noLines {
		return resp
	}
	var renderOpts []valtree.RenderOption
	if c.catalog != nil && r != nil {
		renderOpts = append(renderOpts, valtree.WithMessages(c.catalog.MessageFunc(r.Header.Get("Accept-Language"))))
	}
	resp.Lines = tree.Lines(renderOpts...)
	return resp
}

// Write sends tree as a JSON validation error response. It returns false
// without writing anything when the tree is valid, so handlers can write:
//
//	if problem.Write(w, r, req.Validate()) {
//	    return
//	}
func Write(w http.ResponseWriter, r *http.Request, tree valtree.Tree, opts ...Option) bool {
	if tree.IsValid() {
		return false
	}
	c := newConfig(opts)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c.status)
	_ = json.NewEncoder(w).Encode(c.response(r, tree))
	return true
}

// Decode reads a JSON request body into a T and validates it with
// valtree.ValidateCtx using the request context. Malformed or oversized
// bodies and wrong content types are returned as errors; validation results
// as the tree.
func Decode[T any](r *http.Request, opts ...Option) (T, valtree.Tree, error) {
	var dst T
	c := newConfig(opts)

	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return dst, valtree.Tree{}, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, c.maxBytes+1))
	if err != nil {
		return dst, valtree.Tree{}, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > c.maxBytes {
		return dst, valtree.Tree{}, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, c.maxBytes)
	}
	if len(body) == 0 {
		return dst, valtree.Tree{}, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	tree, err := valtree.UnmarshalAndValidateCtx(r.Context(), body, &dst)
	if err != nil {
		return dst, valtree.Tree{}, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	return dst, tree, nil
}
