package valtree

import (
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const creditCardNumberLength = 16

type hasAlphabetic struct {
	isCreditCardNumberCheck bool
}

// HasAlphabetic returns a validation rule that checks if a string contains at least one alphabetic character.
func HasAlphabetic() Rule {
	return hasAlphabetic{}
}

// NonCreditCardNumber returns a validation rule that rejects strings that look like credit card numbers.
func NonCreditCardNumber() Rule {
	return hasAlphabetic{isCreditCardNumberCheck: true}
}

func (r hasAlphabetic) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.isCreditCardNumberCheck {
		appendDescription(ref, "Must not be a credit card number.")
		return nil
	}
	appendDescription(ref, "Must contain at least one alphabetic character.")
	return nil
}

var (
	alphabeticRegexp = regexp.MustCompile(`[^[:alpha:]]`)
	numberRegexp     = regexp.MustCompile(`\D`)
)

func (r hasAlphabetic) Validate(value any) Tree {
	if value == nil {
		return Tree{}
	}
	v, ok := value.(string)
	if !ok {
		return Leaf(typeError("string", value))
	}

	v = strings.TrimSpace(v)
	if v == "" || alphabeticRegexp.ReplaceAllString(v, "") != "" {
		return Tree{}
	}
	if !r.isCreditCardNumberCheck {
		return Leaf(NewError("has_alphabetic").WithMessage("Must contain at least one alphabetic character"))
	}
	if len(numberRegexp.ReplaceAllString(v, "")) != creditCardNumberLength {
		return Tree{}
	}
	return Leaf(NewError("credit_card").WithMessage("Must not be a credit card number"))
}
