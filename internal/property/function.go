package property

import (
	"context"
	"fmt"

	"github.com/vk/matprop/internal/units"
)

// Function is a property backed by an analytic expression authored in the
// document's original units. The original unit strings are retained so
// arguments can be converted back before the expression runs and its
// result converted forward into base units afterwards.
//
// Bounds apply to arguments only, one inclusive [min, max] pair per
// argument; the dependent variable is never bounds-checked. Queries
// outside a bound fail hard instead of clamping: an analytic expression
// may be undefined or unstable outside its validated domain, whereas
// interpolation degrades gracefully near grid edges.
type Function struct {
	name      string
	arguments []string
	lowered   []string
	symbols   []string
	units     []string // base units, arguments then dependent
	oldUnits  []string // original units, same layout
	defaults  []float64
	bounds    [][2]float64
	expr      Expression

	reg *units.Registry
}

// NewFunction base-normalizes the defaults and bounds, records the base
// unit of every argument and of the dependent variable, and retains the
// original units for round-tripping expression evaluation.
func NewFunction(reg *units.Registry, name string, arguments, unitSpecs, symbols []string,
	defaults []float64, bounds [][2]float64, expression Expression) (*Function, error) {

	nArgs := len(arguments)
	if len(unitSpecs) != nArgs+1 || len(symbols) != nArgs+1 {
		return nil, fmt.Errorf("function %q: units and symbols need %d entries", name, nArgs+1)
	}
	if len(defaults) != nArgs {
		return nil, fmt.Errorf("function %q: %d defaults for %d arguments", name, len(defaults), nArgs)
	}
	if len(bounds) != nArgs {
		return nil, fmt.Errorf("function %q: %d bounds for %d arguments", name, len(bounds), nArgs)
	}
	if expression == nil {
		return nil, fmt.Errorf("function %q: no expression", name)
	}

	f := &Function{
		name:      name,
		arguments: arguments,
		lowered:   lowerAll(arguments),
		symbols:   symbols,
		oldUnits:  unitSpecs,
		units:     make([]string, nArgs+1),
		defaults:  make([]float64, nArgs),
		bounds:    make([][2]float64, nArgs),
		expr:      expression,
		reg:       reg,
	}

	for i, d := range defaults {
		converted, baseUnit, err := reg.Base(d, unitSpecs[i])
		if err != nil {
			return nil, fmt.Errorf("function %q: default for %q: %w", name, arguments[i], err)
		}
		f.defaults[i] = converted
		f.units[i] = baseUnit
	}
	_, depUnit, err := reg.Base(0, unitSpecs[nArgs])
	if err != nil {
		return nil, fmt.Errorf("function %q: dependent unit: %w", name, err)
	}
	f.units[nArgs] = depUnit

	for i, b := range bounds {
		if b[0] > b[1] {
			return nil, fmt.Errorf("function %q: bounds for %q are inverted", name, arguments[i])
		}
		pair, err := reg.ToSlice(b[:], unitSpecs[i], f.units[i])
		if err != nil {
			return nil, fmt.Errorf("function %q: bounds for %q: %w", name, arguments[i], err)
		}
		f.bounds[i] = [2]float64{pair[0], pair[1]}
	}

	return f, nil
}

// Name returns the property name.
func (f *Function) Name() string { return f.name }

// Arguments returns the declared argument names in order.
func (f *Function) Arguments() []string { return f.arguments }

// Symbols returns the argument and dependent-variable symbols.
func (f *Function) Symbols() []string { return f.symbols }

// Units returns the base units of each argument and the dependent variable.
func (f *Function) Units() []string { return f.units }

// OriginalUnits returns the units the expression was authored in.
func (f *Function) OriginalUnits() []string { return f.oldUnits }

// Defaults returns the default argument values in base units.
func (f *Function) Defaults() []float64 { return f.defaults }

// Bounds returns the per-argument inclusive bounds in base units.
func (f *Function) Bounds() [][2]float64 { return f.bounds }

// Expr returns the analytic expression.
func (f *Function) Expr() Expression { return f.expr }

// Eval binds the call arguments, enforces the argument bounds, runs the
// expression in its original units and converts the result to base units.
func (f *Function) Eval(_ context.Context, pos []Value, named Named) (Value, error) {
	x, err := bindArguments(f.arguments, f.lowered, f.defaults, pos, named)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", f.name, err)
	}

	// Bounds are held in base units, so check before converting the
	// columns back to the expression's original units.
	for q, row := range x {
		for i, v := range row {
			if v < f.bounds[i][0] || v > f.bounds[i][1] {
				return nil, &OutOfBoundsError{
					Property: f.name,
					Argument: f.arguments[i],
					Query:    q,
					Value:    v,
					Min:      f.bounds[i][0],
					Max:      f.bounds[i][1],
				}
			}
		}
	}

	old := make([][]float64, len(x))
	for q, row := range x {
		converted := make([]float64, len(row))
		for i, v := range row {
			cv, err := f.reg.To(v, f.units[i], f.oldUnits[i])
			if err != nil {
				return nil, fmt.Errorf("function %q: argument %q: %w", f.name, f.arguments[i], err)
			}
			converted[i] = cv
		}
		old[q] = converted
	}

	ys, err := f.expr.Call(old)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", f.name, err)
	}

	n := len(f.arguments)
	out, err := f.reg.ToSlice(ys, f.oldUnits[n], f.units[n])
	if err != nil {
		return nil, fmt.Errorf("function %q: result: %w", f.name, err)
	}
	return out, nil
}

func (f *Function) argumentIndex(argument string) (int, error) {
	lowered := lowerAll([]string{argument})[0]
	for i, name := range f.lowered {
		if name == lowered {
			return i, nil
		}
	}
	return 0, fmt.Errorf("function %q: unknown argument %q", f.name, argument)
}
