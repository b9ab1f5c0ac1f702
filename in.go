package valtree

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// In returns a validation rule that checks if a value is one of the allowed values.
// Values are compared with ozzo's In, so the types must match exactly. Empty
// values are valid; combine with Required to reject them.
func In(values ...any) Rule {
	return &inRule{
		validation.In(values...),
		values,
	}
}

// inRule is a validation rule that validates if a value can be found in the given list of values.
type inRule struct {
	validation.InRule
	values []any
}

func (r *inRule) Validate(value any) Tree {
	if err := r.InRule.Validate(value); err != nil {
		v, _ := validation.Indirect(value)
		return Leaf(NewError("in").WithMessage("Value not allowed").WithParam("value", v))
	}
	return Tree{}
}

func (r *inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = r.values
	return nil
}
