// Package expr provides a restricted arithmetic expression engine for
// property documents. Expressions use HCL expression syntax evaluated
// over cty numbers with a fixed function table; they can reference only
// the variables supplied at evaluation time and never reach host-language
// execution or global state.
package expr

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Program is an expression parsed once at construction and evaluated many
// times. Immutable after Compile.
type Program struct {
	src  string
	expr hcl.Expression
}

// Compile parses an expression source string.
func Compile(src string) (*Program, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing expression %q: %s", src, diags.Error())
	}
	return &Program{src: src, expr: parsed}, nil
}

// Source returns the original expression text.
func (p *Program) Source() string { return p.src }

// Eval evaluates the program against a scalar scope.
func (p *Program) Eval(scope map[string]float64) (float64, error) {
	vars := make(map[string]cty.Value, len(scope))
	for name, v := range scope {
		vars[name] = cty.NumberFloatVal(v)
	}
	val, err := p.value(vars)
	if err != nil {
		return 0, err
	}
	return toFloat(p.src, val)
}

// EvalVector evaluates the program elementwise over a scope whose entries
// are scalars or equal-length slices, broadcasting the scalars. With no
// slice entries the result is a single value; a bare list expression also
// yields a slice.
func (p *Program) EvalVector(scope map[string]any) (any, error) {
	n := -1
	for name, v := range scope {
		if s, ok := v.([]float64); ok {
			if n >= 0 && len(s) != n {
				return nil, fmt.Errorf("expression %q: variable %q has length %d, want %d", p.src, name, len(s), n)
			}
			n = len(s)
		}
	}

	if n < 0 {
		row := make(map[string]float64, len(scope))
		for name, v := range scope {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("expression %q: variable %q is not numeric", p.src, name)
			}
			row[name] = f
		}
		vars := make(map[string]cty.Value, len(row))
		for name, v := range row {
			vars[name] = cty.NumberFloatVal(v)
		}
		val, err := p.value(vars)
		if err != nil {
			return nil, err
		}
		return fromCty(p.src, val)
	}

	out := make([]float64, n)
	row := make(map[string]float64, len(scope))
	for i := 0; i < n; i++ {
		for name, v := range scope {
			switch tv := v.(type) {
			case float64:
				row[name] = tv
			case []float64:
				row[name] = tv[i]
			default:
				return nil, fmt.Errorf("expression %q: variable %q is not numeric", p.src, name)
			}
		}
		v, err := p.Eval(row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *Program) value(vars map[string]cty.Value) (cty.Value, error) {
	val, diags := p.expr.Value(&hcl.EvalContext{
		Variables: vars,
		Functions: funcTable,
	})
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluating expression %q: %s", p.src, diags.Error())
	}
	return val, nil
}

// Eval compiles and evaluates an expression once against an alias scope.
// This backs the document loader's one-shot expression nodes.
func Eval(src string, alias map[string]any) (any, error) {
	prog, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return prog.EvalVector(alias)
}

func toFloat(src string, val cty.Value) (float64, error) {
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("expression %q: result is %s, want a number", src, val.Type().FriendlyName())
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func fromCty(src string, val cty.Value) (any, error) {
	ty := val.Type()
	if ty == cty.Number {
		return toFloat(src, val)
	}
	if ty.IsTupleType() || ty.IsListType() {
		out := make([]float64, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			f, err := toFloat(src, ev)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expression %q: result is %s, want number or list of numbers", src, ty.FriendlyName())
}

// funcTable is the fixed set of functions available to expressions.
var funcTable = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"min":   stdlib.MinFunc,
	"max":   stdlib.MaxFunc,
	"pow":   stdlib.PowFunc,
	"floor": stdlib.FloorFunc,
	"ceil":  stdlib.CeilFunc,
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"atan":  unary(math.Atan),
}

func unary(fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			return cty.NumberFloatVal(fn(x)), nil
		},
	})
}
