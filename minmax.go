package valtree

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RangeRule checks that a number lies within inclusive bounds. Use [Range],
// [Min] or [Max] to create one.
//
// Values and bounds of any integer, unsigned or float kind are compared
// exactly. Strings (including json.Number) are parsed as numbers. time.Time
// values are compared with time.Time bounds. A nil value is valid.
type RangeRule struct {
	min, max any
}

// Range returns a rule with no bounds; add them with Min and Max.
//
//	valtree.Range().Min(15).Max(100)
func Range() *RangeRule {
	return &RangeRule{}
}

// Min returns a rule that checks a value is greater than or equal to threshold.
func Min(threshold any) *RangeRule {
	return Range().Min(threshold)
}

// Max returns a rule that checks a value is less than or equal to threshold.
func Max(threshold any) *RangeRule {
	return Range().Max(threshold)
}

// Min sets the inclusive lower bound.
func (r *RangeRule) Min(threshold any) *RangeRule {
	r.min = threshold
	return r
}

// Max sets the inclusive upper bound.
func (r *RangeRule) Max(threshold any) *RangeRule {
	r.max = threshold
	return r
}

func (r *RangeRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	for _, bound := range []struct {
		threshold any
		set       func(*float64)
	}{
		{r.min, func(f *float64) { ref.Value.Min = f }},
		{r.max, func(f *float64) { ref.Value.Max = f }},
	} {
		if bound.threshold == nil {
			continue
		}
		if ref.Value.Type.Is(openapi3.TypeString) {
			ref.Value.Format = fmt.Sprintf("%T", bound.threshold)
		}
		if _, ok := bound.threshold.(time.Time); ok {
			continue
		}
		f, err := getFloat(bound.threshold)
		if err != nil {
			return err
		}
		bound.set(&f)
	}
	return nil
}

var floatType = reflect.TypeOf(float64(0))

func getFloat(unk any) (float64, error) {
	v := reflect.ValueOf(unk)
	v = reflect.Indirect(v)
	if !v.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("cannot convert %v to float64", v.Type())
	}
	fv := v.Convert(floatType)
	return fv.Float(), nil
}

// Validate checks the value against the bounds that were set.
func (r *RangeRule) Validate(value any) Tree {
	value, isNil := validation.Indirect(value)
	if isNil || value == "" {
		return Tree{}
	}

	below, above, err := r.compare(value)
	if err != nil {
		return Leaf(*err)
	}
	if !below && !above {
		return Tree{}
	}

	e := NewError("range").WithMessage("Number not in range")
	if r.min != nil {
		e = e.WithParam("min", r.min)
	}
	if r.max != nil {
		e = e.WithParam("max", r.max)
	}
	return Leaf(e.WithParam("value", value))
}

func (r *RangeRule) compare(value any) (below, above bool, _ *Error) {
	if t, ok := value.(time.Time); ok {
		if lo, ok := r.min.(time.Time); ok && t.Before(lo) {
			below = true
		}
		if hi, ok := r.max.(time.Time); ok && t.After(hi) {
			above = true
		}
		return below, above, nil
	}

	v, ok := toNumber(value)
	if !ok {
		e := NewError("number").WithMessage("Not a number").WithParam("value", value)
		if reflect.ValueOf(value).Kind() != reflect.String {
			e = typeError("number", value)
		}
		return false, false, &e
	}
	if r.min != nil {
		lo, ok := toNumber(r.min)
		if !ok {
			panic(fmt.Sprintf("valtree: range bound %v is not a number", r.min))
		}
		below = compareNumbers(v, lo) < 0
	}
	if r.max != nil {
		hi, ok := toNumber(r.max)
		if !ok {
			panic(fmt.Sprintf("valtree: range bound %v is not a number", r.max))
		}
		above = compareNumbers(v, hi) > 0
	}
	return below, above, nil
}

type numberKind int

const (
	intNumber numberKind = iota
	uintNumber
	floatNumber
)

type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func toNumber(value any) (number, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: intNumber, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: uintNumber, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: floatNumber, f: rv.Float()}, true
	case reflect.String: // json.Number included
		s := rv.String()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return number{kind: intNumber, i: i}, true
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return number{kind: uintNumber, u: u}, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return number{kind: floatNumber, f: f}, true
		}
	}
	return number{}, false
}

func (n number) float() float64 {
	switch n.kind {
	case intNumber:
		return float64(n.i)
	case uintNumber:
		return float64(n.u)
	}
	return n.f
}

// compareNumbers compares integers of either signedness exactly and falls
// back to float64 when either side is a float.
func compareNumbers(a, b number) int {
	switch {
	case a.kind == intNumber && b.kind == intNumber:
		return cmp.Compare(a.i, b.i)
	case a.kind == uintNumber && b.kind == uintNumber:
		return cmp.Compare(a.u, b.u)
	case a.kind == intNumber && b.kind == uintNumber:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	case a.kind == uintNumber && b.kind == intNumber:
		if b.i < 0 {
			return 1
		}
		return cmp.Compare(a.u, uint64(b.i))
	}
	return cmp.Compare(a.float(), b.float())
}
