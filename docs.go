package valtree

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// docRule is a documentation-only rule: it never reports errors and only
// edits the generated schema.
type docRule func(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef)

func (r docRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r(name, schema, ref)
	return nil
}

func (r docRule) Validate(any) Tree {
	return Tree{}
}

// Describe returns a documentation-only rule that appends desc to the schema description.
func Describe(desc string) Rule {
	return docRule(func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		appendDescription(ref, desc)
	})
}

// Default returns a documentation-only rule that sets the schema default value.
func Default(a any) Rule {
	return docRule(func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		ref.Value.Default = a
	})
}

// Example returns a documentation-only rule that sets the schema example value.
func Example(ex any) Rule {
	return docRule(func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		ref.Value.Example = ex
	})
}

// Deprecate returns a documentation-only rule that marks the field as deprecated in the schema.
func Deprecate() Rule {
	return docRule(func(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) {
		ref.Value.Deprecated = true
	})
}
