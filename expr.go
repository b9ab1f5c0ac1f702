package valtree

import (
	"encoding/json"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"
)

var (
	// ErrExprCompile is returned by Expr when the expression does not compile.
	ErrExprCompile = errors.New("expression compilation failed")
	// ErrExprNotBool is returned by Expr when the expression cannot yield a bool.
	ErrExprNotBool = errors.New("expression must evaluate to a bool")
)

// ExprRule checks a value with a CEL predicate. Use [Expr] or [MustExpr] to
// create one.
type ExprRule struct {
	expr    string
	code    string
	program cel.Program
}

// Expr compiles a CEL expression over the variable value. When the expression
// evaluates to false the rule reports code with the expression as a param.
// Structs are passed to the expression in their JSON form, so fields are
// addressed by json name.
//
//	valtree.Expr(`value.start < value.end`, "order")
func Expr(expression, code string) (*ExprRule, error) {
	env, err := cel.NewEnv(cel.Variable("value", cel.DynType))
	if err != nil {
		return nil, errors.Wrap(err, "error initializing expression env")
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(ErrExprCompile, "%s: %s", expression, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, errors.Wrapf(ErrExprNotBool, "%s returns %s", expression, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "error planning expression %s", expression)
	}
	return &ExprRule{expr: expression, code: code, program: prg}, nil
}

// MustExpr is like Expr but panics if the expression cannot be compiled.
func MustExpr(expression, code string) *ExprRule {
	r, err := Expr(expression, code)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate evaluates the expression. A nil value is valid.
func (r *ExprRule) Validate(value any) Tree {
	if !reflect.Indirect(reflect.ValueOf(value)).IsValid() {
		return Tree{}
	}
	v, err := celValue(value)
	if err != nil {
		return Leaf(typeError("JSON value", value))
	}
	out, _, err := r.program.Eval(map[string]any{"value": v})
	if err != nil {
		return Leaf(NewError("expr_error").
			WithMessage("Expression could not be evaluated").
			WithParam("expr", r.expr).
			WithParam("error", err.Error()))
	}
	if ok, isBool := out.Value().(bool); isBool && ok {
		return Tree{}
	}
	return Leaf(NewError(r.code).WithMessage("Expression not satisfied").WithParam("expr", r.expr))
}

func (r *ExprRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, "must satisfy "+r.expr)
	return nil
}

// celValue turns structs into the maps CEL understands.
func celValue(value any) (any, error) {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() != reflect.Struct && !(rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Struct) {
		return rv.Interface(), nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
