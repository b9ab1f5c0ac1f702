package valtree

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// presenceRule adapts one of ozzo's presence checks (required, nil, empty)
// to a single error code.
type presenceRule struct {
	check   validation.Rule
	code    string
	message string
	desc    func(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef)
}

func (r presenceRule) Validate(value any) Tree {
	if err := r.check.Validate(value); err != nil {
		return Leaf(NewError(r.code).WithMessage(r.message))
	}
	return Tree{}
}

func (r presenceRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r.desc(name, schema, ref)
	return nil
}

// Required is a validation rule that checks if a value is not empty: not nil,
// not a zero value and not an empty string, slice or map.
var Required Rule = presenceRule{
	check:   validation.Required,
	code:    "required",
	message: "Value is required",
	desc: func(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) {
		schema.Required = append(schema.Required, name)
	},
}

// NotNil is a validation rule that checks if a value is not nil.
var NotNil Rule = presenceRule{
	check:   validation.NotNil,
	code:    "not_nil",
	message: "Value must not be nil",
	desc: func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		ref.Value.Nullable = false
	},
}

// Nil is a validation rule that checks if a value is nil.
var Nil Rule = presenceRule{
	check:   validation.Nil,
	code:    "nil",
	message: "Value must be absent",
	desc: func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		appendDescription(ref, "null")
	},
}

// Empty checks if a not nil value is empty.
var Empty Rule = presenceRule{
	check:   validation.Empty,
	code:    "empty",
	message: "Value must be empty",
	desc: func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		appendDescription(ref, "empty")
	},
}
