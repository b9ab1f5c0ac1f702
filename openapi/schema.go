package openapi

import (
	"github.com/Gobd/valtree"
	"github.com/getkin/kin-openapi/openapi3"
)

// NewSchemaRefForValue generates an OpenAPI schema for the given value,
// applying validation rules from types that implement [valtree.Ruler],
// [valtree.ContextRuler], or [valtree.ValueRuler].
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	return valtree.NewSchemaRefForValue(value)
}
