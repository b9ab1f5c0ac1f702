package openapi

import (
	"github.com/Gobd/valtree"
	"github.com/getkin/kin-openapi/openapi3"
)

// ErrorSchemaName is the component name of the serialized error tree.
const ErrorSchemaName = "ValidationErrors"

// ValidationStatus is the status code of validation error responses.
const ValidationStatus = "422"

// RecordSchema documents one serialized error.
func RecordSchema() *openapi3.Schema {
	params := openapi3.NewObjectSchema()
	params.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(true)}
	params.Description = "Error parameters, e.g. the violated bound and the actual value."

	s := openapi3.NewObjectSchema().
		WithProperty("code", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithPropertyRef("params", &openapi3.SchemaRef{Value: params})
	s.Required = []string{"code"}
	return s
}

// ErrorSchema documents the serialized shape of a valtree.Tree: either a list
// of errors, or an object keyed by field name (or item index) whose values
// have the same shape. Mixed positions carry their own errors and items under
// the reserved keys; a field whose name starts with "$" is keyed with an extra
// leading "$". Nested positions refer back to the ErrorSchemaName component.
func ErrorSchema() *openapi3.Schema {
	self := &openapi3.SchemaRef{Ref: "#/components/schemas/" + ErrorSchemaName}
	records := openapi3.NewArraySchema().WithItems(RecordSchema())

	items := openapi3.NewObjectSchema()
	items.AdditionalProperties = openapi3.AdditionalProperties{Schema: self}
	items.Description = "Errors of sequence items keyed by index."

	object := openapi3.NewObjectSchema().
		WithProperty(valtree.ErrorsKey, records).
		WithProperty(valtree.ItemsKey, items)
	object.AdditionalProperties = openapi3.AdditionalProperties{Schema: self}

	s := openapi3.NewOneOfSchema(records, object)
	s.Description = "Validation errors shaped like the request body. Field names starting with $ are prefixed with one more $."
	self.Value = s
	return s
}

// RegisterErrorSchema adds the ErrorSchemaName component to doc when missing
// and returns a reference to it.
func RegisterErrorSchema(doc *openapi3.T) *openapi3.SchemaRef {
	if doc.Components == nil {
		doc.Components = &openapi3.Components{}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = openapi3.Schemas{}
	}
	ref, ok := doc.Components.Schemas[ErrorSchemaName]
	if !ok {
		ref = &openapi3.SchemaRef{Value: ErrorSchema()}
		doc.Components.Schemas[ErrorSchemaName] = ref
	}
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + ErrorSchemaName, Value: ref.Value}
}

// ValidationResponse documents the body written by problem.Write: a message,
// the serialized error tree and its rendered lines.
func ValidationResponse(doc *openapi3.T, desc string) *openapi3.Response {
	body := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithPropertyRef("errors", RegisterErrorSchema(doc)).
		WithProperty("lines", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	body.Required = []string{"message", "errors"}

	return openapi3.NewResponse().
		WithDescription(desc).
		WithJSONSchema(body)
}
