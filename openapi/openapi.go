package openapi

import (
	"errors"
	"net/http"
	"reflect"
	"slices"

	"github.com/Gobd/valtree"
	"github.com/getkin/kin-openapi/openapi3"
)

// ErrNoValues is returned when a request or response is built from no types.
var ErrNoValues = errors.New("openapi: no values given")

// Response describes an HTTP response with a description and body types for schema generation.
type Response struct {
	Desc   string
	Bodies []any
}

// Endpoint describes a single API operation for the convenience helpers
// [Get], [Post], [Put], [Patch], and [Delete].
//
// The 422 validation response is documented whenever a request type carries
// valtree rules (Ruler, ContextRuler, ValueRuler or Validator, directly or as
// collection elements). Validated forces it for handlers that validate by hand.
type Endpoint struct {
	Summary     string
	Description string
	Request     any                 // single request body type (convenience)
	Requests    []any               // multiple request body types (oneOf)
	Response    any                 // single 200 response type (convenience)
	Responses   map[string]Response // full response map (overrides Response if both set)
	Validated   bool
}

// NewRequestMust is like [NewRequest] but panics on error.
func NewRequestMust(vs ...any) *openapi3.RequestBodyRef {
	o, err := NewRequest(vs...)
	if err != nil {
		panic(err)
	}
	return o
}

// NewRequest generates a JSON request body from the given value types, with
// their validation rules applied to the schema. More than one type becomes a oneOf.
func NewRequest(vs ...any) (*openapi3.RequestBodyRef, error) {
	content, err := jsonContent(vs)
	if err != nil {
		return nil, err
	}
	body := openapi3.NewRequestBody().WithContent(content)
	return &openapi3.RequestBodyRef{Value: body}, nil
}

// NewResponseMust is like [NewResponse] but panics on error.
// Map key is status code (e.g. "200", "4xx").
func NewResponseMust(vs map[string]Response) *openapi3.Responses {
	o, err := NewResponse(vs)
	if err != nil {
		panic(err)
	}
	return o
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx"). A response without bodies has no content.
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, ErrNoValues
	}

	codes := make([]string, 0, len(vs))
	for code := range vs {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))
	for _, code := range codes {
		resp := openapi3.NewResponse().WithDescription(vs[code].Desc)
		if len(vs[code].Bodies) > 0 {
			content, err := jsonContent(vs[code].Bodies)
			if err != nil {
				return nil, err
			}
			resp.Content = content
		}
		opts = append(opts, openapi3.WithName(code, resp))
	}
	return openapi3.NewResponses(opts...), nil
}

// jsonContent returns application/json content for the schemas of vs.
func jsonContent(vs []any) (openapi3.Content, error) {
	if len(vs) == 0 {
		return nil, ErrNoValues
	}
	refs := make(openapi3.SchemaRefs, 0, len(vs))
	for _, v := range vs {
		ref, err := valtree.NewSchemaRefForValue(v)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	schema := refs[0]
	if len(refs) > 1 {
		schema = &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}
	}
	return openapi3.NewContentWithJSONSchemaRef(schema), nil
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	s.Paths.Set(path, p)
}

var ruleTypes = []reflect.Type{
	reflect.TypeFor[valtree.Ruler](),
	reflect.TypeFor[valtree.ContextRuler](),
	reflect.TypeFor[valtree.ValueRuler](),
	reflect.TypeFor[valtree.Validator](),
}

// HasRules reports whether valtree.Validate would run rules for values of
// v's type: the type or a pointer to it implements one of the rule
// interfaces, or it is a pointer or collection of such a type.
func HasRules(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil {
		for _, rt := range ruleTypes {
			if t.Implements(rt) || reflect.PointerTo(t).Implements(rt) {
				return true
			}
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			t = nil
		}
	}
	return false
}

// addEndpoint builds an [openapi3.Operation] from ep and registers it at path+method.
func addEndpoint(doc *openapi3.T, path, method, operationID string, ep Endpoint) {
	op := openapi3.NewOperation()
	op.OperationID = operationID
	op.Summary = ep.Summary
	op.Description = ep.Description

	requests := ep.Requests
	if len(requests) == 0 && ep.Request != nil {
		requests = []any{ep.Request}
	}
	if len(requests) > 0 {
		op.RequestBody = NewRequestMust(requests...)
	}

	responses := ep.Responses
	if responses == nil && ep.Response != nil {
		responses = map[string]Response{
			"200": {Desc: "OK", Bodies: []any{ep.Response}},
		}
	}
	op.Responses = openapi3.NewResponses()
	if responses != nil {
		op.Responses = NewResponseMust(responses)
	}

	if ep.Validated || slices.ContainsFunc(requests, HasRules) {
		op.AddResponse(http.StatusUnprocessableEntity, ValidationResponse(doc, "Validation failed"))
	}

	AddPath(path, method, doc, op)
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on doc.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPost, operationID, ep)
}

// Put registers a PUT endpoint on doc.
func Put(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPut, operationID, ep)
}

// Patch registers a PATCH endpoint on doc.
func Patch(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPatch, operationID, ep)
}

// Delete registers a DELETE endpoint on doc.
func Delete(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodDelete, operationID, ep)
}
