package valtree

import (
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LengthRule checks the length of a string, slice, array or map. Use
// [Length] or [CharLength] to create one. Only the bounds that were set are
// reported in the error params, next to the actual length. Nil values and
// empty strings are valid; combine with Required to reject them.
type LengthRule struct {
	code, message string
	runes         bool
	min, max, eq  *int
}

// Length returns a rule checking byte length of strings and element count of
// slices, arrays and maps.
//
//	valtree.Length().Max(3)
func Length() *LengthRule {
	return &LengthRule{code: "length", message: "Invalid length"}
}

// CharLength returns a rule checking the number of characters (runes) in a string.
func CharLength() *LengthRule {
	return &LengthRule{code: "char_length", message: "Invalid character length", runes: true}
}

// Min sets the inclusive minimum length.
func (r *LengthRule) Min(n int) *LengthRule {
	r.min = &n
	return r
}

// Max sets the inclusive maximum length.
func (r *LengthRule) Max(n int) *LengthRule {
	r.max = &n
	return r
}

// Equal requires the length to be exactly n.
func (r *LengthRule) Equal(n int) *LengthRule {
	r.eq = &n
	return r
}

func (r *LengthRule) Validate(value any) Tree {
	value, isNil := validation.Indirect(value)
	if isNil || value == "" {
		return Tree{}
	}

	var n int
	if r.runes {
		s, err := validation.EnsureString(value)
		if err != nil {
			return Leaf(typeError("string", value))
		}
		n = utf8.RuneCountInString(s)
	} else {
		l, err := validation.LengthOfValue(value)
		if err != nil {
			return Leaf(typeError("string, slice, array or map", value))
		}
		n = l
	}

	bad := (r.min != nil && n < *r.min) || (r.max != nil && n > *r.max) || (r.eq != nil && n != *r.eq)
	if !bad {
		return Tree{}
	}
	e := NewError(r.code).WithMessage(r.message)
	if r.min != nil {
		e = e.WithParam("min", *r.min)
	}
	if r.max != nil {
		e = e.WithParam("max", *r.max)
	}
	if r.eq != nil {
		e = e.WithParam("equal", *r.eq)
	}
	return Leaf(e.WithParam("value", n))
}

func (r *LengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo, hi := r.min, r.max
	if r.eq != nil {
		lo, hi = r.eq, r.eq
	}
	var umin uint64
	var umax *uint64
	if lo != nil {
		umin = uint64(max(*lo, 0))
	}
	if hi != nil {
		u := uint64(max(*hi, 0))
		umax = &u
	}

	switch {
	case ref.Value.Type.Is(openapi3.TypeArray):
		ref.Value.MinItems, ref.Value.MaxItems = umin, umax
	case ref.Value.Type.Is(openapi3.TypeObject):
		ref.Value.MinProps, ref.Value.MaxProps = umin, umax
	default:
		ref.Value.MinLength, ref.Value.MaxLength = umin, umax
	}
	return nil
}
