// Package valtree accumulates validation errors into an immutable tree that
// mirrors the shape of the validated data, so every problem is reported at
// once, at its position.
//
// Trees are built from leaves and combined without short-circuiting:
//
//	func (u User) Validate() valtree.Tree {
//	    return valtree.Merge(
//	        valtree.Field("age", valtree.ErrorIf(u.Age > 100, func() valtree.Error {
//	            return valtree.NewError("range").WithParam("max", 100).WithParam("value", u.Age)
//	        })),
//	        valtree.Field("cars", valtree.Items(u.Cars, func(_ int, c string) valtree.Tree {
//	            return valtree.ErrorIf(len(c) > 50, func() valtree.Error { return valtree.NewError("char_length") })
//	        })),
//	    )
//	}
//
// A tree renders as jq-style lines:
//
//	.age: range: max=100, value=200
//	.cars[2]: char_length
//
// and serializes to JSON or YAML in the shape of the input.
//
// Structs can instead declare rules by implementing [Ruler]:
//
//	func (o *Order) Rules() []*valtree.FieldRules {
//	    return []*valtree.FieldRules{
//	        valtree.Bind(&o.ID, valtree.Required),
//	        valtree.Bind(&o.Amount, valtree.Min(0.01)),
//	    }
//	}
//
// Then validate with a single call:
//
//	tree := valtree.Validate(&order)
//
// The same rules document the struct in OpenAPI schemas, see
// [NewSchemaRefForValue]. For HTTP handlers, [UnmarshalAndValidate] and
// [DecodeAndValidate] combine JSON decoding with validation in one step.
//
// Sub-packages:
//   - openapi – OpenAPI document and endpoint helpers, error response schema
//   - message – YAML message catalogs with language negotiation
//   - problem – HTTP validation error responses
package valtree
