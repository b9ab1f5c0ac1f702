package valtree

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// SkipRule stops the rules after it, including the automatic descent into
// the field value. Use [Skip] to create one.
type SkipRule struct {
	skip bool
	desc string
}

// Skip returns a rule that skips all subsequent validation and adds desc to the schema description.
func Skip(desc string) *SkipRule {
	return &SkipRule{skip: true, desc: desc}
}

// When makes the skip conditional.
//
//	valtree.Bind(&o.Card, valtree.Skip("ignored for cash").When(o.Cash), valtree.Required)
func (r *SkipRule) When(condition bool) *SkipRule {
	r.skip = condition
	return r
}

func (r *SkipRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

func (r *SkipRule) Validate(any) Tree {
	return Tree{}
}

func (r *SkipRule) skips() bool { return r.skip }
