package valtree

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

type (
	// Rule checks one value and documents itself in an OpenAPI schema.
	// Validate returns a valid tree when the value passes.
	Rule interface {
		Validate(value any) Tree
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// FieldRules binds a struct field pointer to its validation rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		self     bool
		rules    []Rule
	}

	// Ruler is implemented by structs that declare their field rules.
	//
	//	func (u *User) Rules() []*valtree.FieldRules {
	//	    return []*valtree.FieldRules{
	//	        valtree.Bind(&u.Age, valtree.Range().Min(15).Max(100)),
	//	    }
	//	}
	Ruler interface {
		Rules() []*FieldRules
	}

	// ContextRuler is like Ruler but receives the context passed to ValidateCtx.
	ContextRuler interface {
		Rules(ctx context.Context) []*FieldRules
	}

	// ValueRuler is implemented by non-struct types (e.g. type PaymentMethod string)
	// that carry their own validation rules. The returned rules are applied
	// wherever the type appears, during validation and schema generation.
	//
	//	type PaymentMethod string
	//
	//	func (p PaymentMethod) ValueRules() []valtree.Rule {
	//	    return []valtree.Rule{valtree.In(PaymentACH, PaymentCC)}
	//	}
	ValueRuler interface {
		ValueRules() []Rule
	}
)

// appendDescription adds desc to the schema description, separated by a space.
func appendDescription(ref *openapi3.SchemaRef, desc string) {
	if desc == "" {
		return
	}
	if ref.Value.Description != "" && ref.Value.Description[len(ref.Value.Description)-1] != ' ' {
		ref.Value.Description += " "
	}
	ref.Value.Description += desc
}

// skipper is implemented by rules that stop the rules after them.
type skipper interface {
	skips() bool
}

// applyRules runs rules against value in order and merges the results. It
// reports whether a Skip rule cut the list short.
func applyRules(value any, rules []Rule) (Tree, bool) {
	var out Tree
	for _, r := range rules {
		if s, ok := r.(skipper); ok && s.skips() {
			return out, true
		}
		out = out.Merge(r.Validate(value))
	}
	return out, false
}
