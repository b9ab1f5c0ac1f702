package valtree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StringRule checks a string value with a predicate. Nil values and empty
// strings are valid; combine with Required to reject them.
type StringRule struct {
	validate func(string) bool
	err      Error
	desc     string
	format   string
	pattern  string
}

// NewStringRule returns a string validation rule reporting code with desc as
// both the error message and schema description.
func NewStringRule(code string, validator func(string) bool, desc string) *StringRule {
	return NewStringRuleWithError(validator, NewError(code).WithMessage(desc), desc)
}

// NewStringRuleWithError returns a string validation rule with a custom error and schema description.
func NewStringRuleWithError(validator func(string) bool, err Error, desc string) *StringRule {
	return &StringRule{validate: validator, err: err, desc: desc}
}

// NewStringRuleDecimalMax returns a validation rule that limits the number of decimal places in a numeric string.
func NewStringRuleDecimalMax(i uint) *StringRule {
	return NewStringRuleWithError(func(s string) bool {
		spl := strings.Split(s, ".")
		if len(spl) < 2 {
			return true
		}
		return len(spl[1]) <= int(i)
	}, NewError("decimals").WithMessage("Too many decimals").WithParam("max", i), fmt.Sprintf("no more than %d decimals", i))
}

// Format sets the OpenAPI format written by Describe.
func (r *StringRule) Format(format string) *StringRule {
	r.format = format
	return r
}

func (r *StringRule) Validate(value any) Tree {
	value, isNil := validation.Indirect(value)
	if isNil {
		return Tree{}
	}
	s, err := validation.EnsureString(value)
	if err != nil {
		return Leaf(typeError("string", value))
	}
	if s == "" || r.validate(s) {
		return Tree{}
	}
	return Leaf(r.err)
}

func (r *StringRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.format != "" {
		ref.Value.Format = r.format
	}
	if r.pattern != "" {
		ref.Value.Pattern = r.pattern
	}
	appendDescription(ref, r.desc)
	return nil
}

// Match returns a rule that checks a string matches re.
func Match(re *regexp.Regexp) *StringRule {
	r := NewStringRuleWithError(re.MatchString,
		NewError("pattern").WithMessage("Does not match pattern").WithParam("pattern", re.String()), "")
	r.pattern = re.String()
	return r
}

var (
	// Email validates an email address.
	Email = NewStringRule("email", govalidator.IsEmail, "Must be a valid email address").Format("email")
	// URL validates an absolute or host-relative URL.
	URL = NewStringRule("url", govalidator.IsURL, "Must be a valid URL").Format("uri")
	// UUID validates a UUID of any version.
	UUID = NewStringRule("uuid", govalidator.IsUUID, "Must be a valid UUID").Format("uuid")
)
