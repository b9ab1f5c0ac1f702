package valtree

import (
	"errors"
	"slices"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Ozzo adapts ozzo-validation rules. Their errors are converted with
// [FromError], so an ozzo error keeps its code, rendered message and params.
//
//	valtree.Bind(&u.Zip, valtree.Ozzo(is.Digit, validation.Length(5, 5)))
func Ozzo(rules ...validation.Rule) Rule {
	return ozzoRule{rules}
}

type ozzoRule struct {
	rules []validation.Rule
}

func (r ozzoRule) Validate(value any) Tree {
	return FromError(validation.Validate(value, r.rules...))
}

func (r ozzoRule) Describe(string, *openapi3.Schema, *openapi3.SchemaRef) error {
	return nil
}

// FromError converts an error into a tree:
//
//   - nil is valid
//   - a Tree or an Error found with errors.As is kept as-is
//   - ozzo validation.Errors become fields, numeric keys become items
//   - an ozzo validation.Error becomes a leaf with its code and params
//   - anything else becomes an "invalid" leaf with the error text as message
func FromError(err error) Tree {
	return fromError(err, "invalid")
}

func fromError(err error, fallback string) Tree {
	if err == nil {
		return Tree{}
	}

	var t Tree
	if errors.As(err, &t) {
		return t
	}
	var e Error
	if errors.As(err, &e) {
		return Leaf(e)
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		var out Tree
		for key, child := range errs {
			sub := fromError(child, fallback)
			if i, convErr := strconv.Atoi(key); convErr == nil && i >= 0 && strconv.Itoa(i) == key {
				out = out.AndItem(i, sub)
			} else {
				out = out.AndField(key, sub)
			}
		}
		return out
	}

	var ve validation.Error
	if errors.As(err, &ve) {
		out := NewError(ve.Code()).WithMessage(ve.Error())
		params := ve.Params()
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			out = out.WithParam(k, params[k])
		}
		return Leaf(out)
	}

	return Leaf(NewError(fallback).WithMessage(err.Error()))
}
