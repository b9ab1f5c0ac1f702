package valtree

import (
	"errors"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateRule validates that a string value matches the given date layout format.
// Use [Date] to create one, then chain [DateRule.Min] and [DateRule.Max] to
// constrain the date range.
type DateRule struct {
	validation.DateRule
	layout   string
	min, max time.Time
}

// Date creates a date validation rule with the given layout format.
func Date(layout string) *DateRule {
	return &DateRule{
		DateRule: validation.Date(layout),
		layout:   layout,
	}
}

// Min sets the minimum allowed date.
func (r *DateRule) Min(t time.Time) *DateRule {
	r.min = t
	r.DateRule = r.DateRule.Min(t)
	return r
}

// Max sets the maximum allowed date.
func (r *DateRule) Max(t time.Time) *DateRule {
	r.max = t
	r.DateRule = r.DateRule.Max(t)
	return r
}

// Validate reports a date error carrying the layout, plus the bounds when
// the date parsed but fell outside them. Empty strings are valid.
func (r *DateRule) Validate(value any) Tree {
	err := r.DateRule.Validate(value)
	if err == nil {
		return Tree{}
	}
	e := NewError("date").WithMessage("Invalid date").WithParam("layout", r.layout)
	var ve validation.Error
	if errors.As(err, &ve) && ve.Code() == validation.ErrDateOutOfRange.Code() {
		if !r.min.IsZero() {
			e = e.WithParam("min", r.min.Format(r.layout))
		}
		if !r.max.IsZero() {
			e = e.WithParam("max", r.max.Format(r.layout))
		}
	}
	return Leaf(e)
}

// Describe implements [Rule] by setting the format and date range on the schema.
func (r *DateRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Format = r.layout
	if !r.min.IsZero() {
		appendDescription(ref, "> "+r.min.Format(r.layout))
	}
	if !r.max.IsZero() {
		appendDescription(ref, "< "+r.max.Format(r.layout))
	}
	return nil
}
