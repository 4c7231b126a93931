package loader

import (
	"context"
	"fmt"

	"github.com/vk/matprop/internal/expr"
	"github.com/vk/matprop/internal/property"
	"github.com/vk/matprop/internal/registry"
	"github.com/vk/matprop/internal/units"
)

// Document tags with built-in handlers.
const (
	TagConstant = "!constant"
	TagTable    = "!table"
	TagFunction = "!function"
	TagArray    = "!array"
	TagNumexpr  = "!numexpr"
	TagLambda   = "!lambda"
)

// builtin contributes the handlers for every built-in document tag.
type builtin struct {
	units *units.Registry
}

// Builtin returns the handler module covering the built-in tags, with
// properties constructed against the given unit registry.
func Builtin(unitReg *units.Registry) registry.Module {
	return &builtin{units: unitReg}
}

// Register registers the built-in handlers.
func (b *builtin) Register(r *registry.Registry) {
	r.Register(TagConstant, &registry.Handler{Construct: b.constant, Represent: representConstant})
	r.Register(TagTable, &registry.Handler{Construct: b.table, Represent: representTable})
	r.Register(TagFunction, &registry.Handler{Construct: b.function, Represent: representFunction})
	r.Register(TagArray, &registry.Handler{Construct: b.array})
	r.Register(TagNumexpr, &registry.Handler{Construct: b.numexpr})
	r.Register(TagLambda, &registry.Handler{
		Construct: b.lambda,
		Represent: func(any) (any, error) {
			return nil, fmt.Errorf("representing a lambda: %w", ErrNotImplemented)
		},
	})
}

func (b *builtin) constant(_ context.Context, raw any) (any, error) {
	m, err := asMapping(raw)
	if err != nil {
		return nil, err
	}
	name, err := reqString(m, "name")
	if err != nil {
		return nil, err
	}
	unit, err := reqString(m, "unit")
	if err != nil {
		return nil, err
	}
	symbol, err := reqString(m, "symbol")
	if err != nil {
		return nil, err
	}
	value, err := reqValue(m, "value")
	if err != nil {
		return nil, err
	}
	return property.NewConstant(b.units, name, unit, symbol, value)
}

func (b *builtin) table(_ context.Context, raw any) (any, error) {
	m, err := asMapping(raw)
	if err != nil {
		return nil, err
	}
	name, err := reqString(m, "name")
	if err != nil {
		return nil, err
	}
	arguments, err := reqStrings(m, "arguments")
	if err != nil {
		return nil, err
	}
	unitSpecs, err := reqStrings(m, "units")
	if err != nil {
		return nil, err
	}
	symbols, err := reqStrings(m, "symbols")
	if err != nil {
		return nil, err
	}
	defaults, err := reqFloats(m, "defaults")
	if err != nil {
		return nil, err
	}
	values, err := reqSlice(m, "values")
	if err != nil {
		return nil, err
	}
	method, err := optString(m, "method", "linear")
	if err != nil {
		return nil, err
	}
	return property.NewTable(b.units, name, arguments, unitSpecs, symbols, defaults, values, method)
}

func (b *builtin) function(_ context.Context, raw any) (any, error) {
	m, err := asMapping(raw)
	if err != nil {
		return nil, err
	}
	name, err := reqString(m, "name")
	if err != nil {
		return nil, err
	}
	arguments, err := reqStrings(m, "arguments")
	if err != nil {
		return nil, err
	}
	unitSpecs, err := reqStrings(m, "units")
	if err != nil {
		return nil, err
	}
	symbols, err := reqStrings(m, "symbols")
	if err != nil {
		return nil, err
	}
	defaults, err := reqFloats(m, "defaults")
	if err != nil {
		return nil, err
	}
	bounds, err := reqBounds(m, "bounds")
	if err != nil {
		return nil, err
	}
	rawExpr, ok := m["expression"]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", "expression")
	}
	expression, ok := rawExpr.(property.Expression)
	if !ok {
		return nil, fmt.Errorf("field %q is not an expression (tag it %s)", "expression", TagLambda)
	}
	return property.NewFunction(b.units, name, arguments, unitSpecs, symbols, defaults, bounds, expression)
}

// array validates a (possibly nested) numeric sequence, flattening plain
// number lists into []float64 and leaving nested shapes intact.
func (b *builtin) array(_ context.Context, raw any) (any, error) {
	s, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("array content must be a sequence, got %T", raw)
	}
	return normalizeArray(s)
}

func (b *builtin) numexpr(_ context.Context, raw any) (any, error) {
	m, err := asMapping(raw)
	if err != nil {
		return nil, err
	}
	src, err := reqString(m, "expr")
	if err != nil {
		return nil, err
	}
	alias, err := optScope(m, "alias")
	if err != nil {
		return nil, err
	}
	return expr.Eval(src, alias)
}

func (b *builtin) lambda(_ context.Context, raw any) (any, error) {
	m, err := asMapping(raw)
	if err != nil {
		return nil, err
	}
	args, err := reqStrings(m, "args")
	if err != nil {
		return nil, err
	}
	src, err := reqString(m, "expr")
	if err != nil {
		return nil, err
	}
	scope, err := optScope(m, "alias")
	if err != nil {
		return nil, err
	}
	alias := make(map[string]float64, len(scope))
	for name, v := range scope {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("alias %q must be a scalar", name)
		}
		alias[name] = f
	}
	return expr.NewLambda(args, src, alias)
}
