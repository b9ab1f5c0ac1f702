package valtree

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// WhenRule validates conditionally: it applies one set of rules when the
// condition is true, and an optional alternative set (via [WhenRule.Else])
// when false. Use [When] to create one.
type WhenRule struct {
	condition bool
	desc      string
	whenRules []Rule
	elseRules []Rule
}

// When returns a conditional validation rule that applies rules only when condition is true.
func When(condition bool, desc string, rules ...Rule) *WhenRule {
	return &WhenRule{
		condition: condition,
		desc:      desc,
		whenRules: rules,
	}
}

// Else specifies alternative rules to apply when the [When] condition is false.
func (r *WhenRule) Else(rules ...Rule) *WhenRule {
	r.elseRules = rules
	return r
}

// Validate runs the rules of the branch selected by the condition.
func (r *WhenRule) Validate(value any) Tree {
	rules := r.elseRules
	if r.condition {
		rules = r.whenRules
	}
	res, _ := applyRules(value, rules)
	return res
}

// describeRules calls Describe on each rule using a temporary schema/ref,
// then extracts a human-readable summary of the schema mutations.
func describeRules(name string, rules []Rule) (string, error) {
	if len(rules) == 0 {
		return "", nil
	}

	schema := openapi3.NewSchema()
	ref := &openapi3.SchemaRef{Value: openapi3.NewSchema()}

	for _, r := range rules {
		if err := r.Describe(name, schema, ref); err != nil {
			return "", err
		}
	}

	var parts []string

	if ref.Value.Description != "" {
		parts = append(parts, ref.Value.Description)
	}
	if len(schema.Required) > 0 {
		parts = append(parts, "required")
	}
	if ref.Value.Min != nil {
		parts = append(parts, fmt.Sprintf("min %g", *ref.Value.Min))
	}
	if ref.Value.Max != nil {
		parts = append(parts, fmt.Sprintf("max %g", *ref.Value.Max))
	}
	if ref.Value.MinLength > 0 {
		parts = append(parts, fmt.Sprintf("min length %d", ref.Value.MinLength))
	}
	if ref.Value.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("max length %d", *ref.Value.MaxLength))
	}
	if ref.Value.Pattern != "" {
		parts = append(parts, "pattern "+ref.Value.Pattern)
	}
	if len(ref.Value.Enum) > 0 {
		vals := make([]string, len(ref.Value.Enum))
		for i, v := range ref.Value.Enum {
			vals[i] = fmt.Sprint(v)
		}
		parts = append(parts, "one of ["+strings.Join(vals, ", ")+"]")
	}
	if ref.Value.UniqueItems {
		parts = append(parts, "unique")
	}

	return strings.Join(parts, ", "), nil
}

// Describe implements [Rule] by appending a human-readable summary of the
// conditional rules to the schema description.
func (r *WhenRule) Describe(name string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if len(r.whenRules) > 0 {
		desc, err := describeRules(name, r.whenRules)
		if err != nil {
			return err
		}
		if desc != "" && r.desc != "" {
			desc = fmt.Sprintf("when %s: %s", r.desc, desc)
		}
		appendDescription(ref, desc)
	}

	if len(r.elseRules) > 0 {
		desc, err := describeRules(name, r.elseRules)
		if err != nil {
			return err
		}
		if desc != "" {
			appendDescription(ref, "else: "+desc)
		}
	}
	return nil
}
