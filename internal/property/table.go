package property

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/vk/matprop/internal/ctxlog"
	"github.com/vk/matprop/internal/grid"
	"github.com/vk/matprop/internal/units"
)

// Table is a property backed by gridded interpolation over one or more
// independent variables. Queries outside the grid extrema are clamped to
// the nearest edge with a warning rather than rejected.
type Table struct {
	name      string
	arguments []string
	lowered   []string
	symbols   []string
	units     []string // base units, one per axis plus the dependent grid
	defaults  []float64
	method    string

	axes  [][]float64
	gridV []float64 // dependent grid, row-major
	shape []int
	min   []float64
	max   []float64
	ip    *grid.Interpolator

	reg *units.Registry
}

// NewTable base-normalizes every grid axis and the dependent grid, converts
// the defaults into the normalized axis units and builds the interpolator
// once. values holds one array per argument (the grid axes) followed by
// the dependent grid, whose shape must be the outer product of the axes.
func NewTable(reg *units.Registry, name string, arguments, unitSpecs, symbols []string,
	defaults []float64, values []any, method string) (*Table, error) {

	nArgs := len(arguments)
	if len(values) != nArgs+1 {
		return nil, fmt.Errorf("table %q: %d value arrays for %d arguments, want %d", name, len(values), nArgs, nArgs+1)
	}
	if len(unitSpecs) != nArgs+1 || len(symbols) != nArgs+1 {
		return nil, fmt.Errorf("table %q: units and symbols need %d entries", name, nArgs+1)
	}
	if len(defaults) != nArgs {
		return nil, fmt.Errorf("table %q: %d defaults for %d arguments", name, len(defaults), nArgs)
	}
	if method == "" {
		method = grid.Linear
	}

	t := &Table{
		name:      name,
		arguments: arguments,
		lowered:   lowerAll(arguments),
		symbols:   symbols,
		method:    method,
		units:     make([]string, nArgs+1),
		defaults:  make([]float64, nArgs),
		axes:      make([][]float64, nArgs),
		min:       make([]float64, nArgs),
		max:       make([]float64, nArgs),
		reg:       reg,
	}

	var gridValues []float64
	var gridShape []int
	for i, raw := range values {
		flat, shape, err := flatten(raw)
		if err != nil {
			return nil, fmt.Errorf("table %q: values[%d]: %w", name, i, err)
		}
		base, baseUnit, err := reg.BaseSlice(flat, unitSpecs[i])
		if err != nil {
			return nil, fmt.Errorf("table %q: values[%d]: %w", name, i, err)
		}
		t.units[i] = baseUnit
		if i < nArgs {
			if len(shape) != 1 {
				return nil, fmt.Errorf("table %q: axis %q must be one-dimensional", name, arguments[i])
			}
			t.axes[i] = base
		} else {
			gridValues, gridShape = base, shape
		}
	}

	for i, axis := range t.axes {
		if len(gridShape) != nArgs || gridShape[i] != len(axis) {
			return nil, fmt.Errorf("table %q: grid shape %v does not match axis lengths", name, gridShape)
		}
		t.min[i] = floats.Min(axis)
		t.max[i] = floats.Max(axis)
	}

	for i, d := range defaults {
		converted, err := reg.To(d, unitSpecs[i], t.units[i])
		if err != nil {
			return nil, fmt.Errorf("table %q: default for %q: %w", name, arguments[i], err)
		}
		t.defaults[i] = converted
	}

	ip, err := grid.New(t.axes, gridValues, method)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}
	t.gridV, t.shape = gridValues, gridShape
	t.ip = ip
	return t, nil
}

// Name returns the property name.
func (t *Table) Name() string { return t.name }

// Arguments returns the declared argument names in order.
func (t *Table) Arguments() []string { return t.arguments }

// Symbols returns the argument and dependent-variable symbols.
func (t *Table) Symbols() []string { return t.symbols }

// Units returns the base units of each axis and the dependent grid.
func (t *Table) Units() []string { return t.units }

// Defaults returns the default argument values in base units.
func (t *Table) Defaults() []float64 { return t.defaults }

// Method returns the interpolation method.
func (t *Table) Method() string { return t.method }

// Values returns the normalized value arrays in document layout: one
// axis per argument followed by the dependent grid, re-nested to its
// original shape.
func (t *Table) Values() []any {
	out := make([]any, 0, len(t.axes)+1)
	for _, axis := range t.axes {
		out = append(out, append([]float64(nil), axis...))
	}
	nested, _ := nest(t.gridV, t.shape)
	out = append(out, nested)
	return out
}

// nest folds a row-major slice back into nested arrays of the given
// shape, returning the value and the number of elements consumed.
func nest(flat []float64, shape []int) (any, int) {
	if len(shape) == 1 {
		return append([]float64(nil), flat[:shape[0]]...), shape[0]
	}
	out := make([]any, shape[0])
	used := 0
	for i := range out {
		v, n := nest(flat[used:], shape[1:])
		out[i] = v
		used += n
	}
	return out, used
}

// Axis returns the normalized grid axis for the named argument.
func (t *Table) Axis(argument string) ([]float64, error) {
	i, err := t.argumentIndex(argument)
	if err != nil {
		return nil, err
	}
	return t.axes[i], nil
}

// Eval binds the call arguments, clamps each column to the grid extrema
// and interpolates. One warning is logged per clamped element.
func (t *Table) Eval(ctx context.Context, pos []Value, named Named) (Value, error) {
	x, err := bindArguments(t.arguments, t.lowered, t.defaults, pos, named)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", t.name, err)
	}

	logger := ctxlog.FromContext(ctx)
	for q, row := range x {
		for i, v := range row {
			switch {
			case v < t.min[i]:
				logger.Warn("clamping table query to axis minimum",
					"property", t.name, "query", q, "argument", t.arguments[i],
					"value", v, "min", t.min[i])
				row[i] = t.min[i]
			case v > t.max[i]:
				logger.Warn("clamping table query to axis maximum",
					"property", t.name, "query", q, "argument", t.arguments[i],
					"value", v, "max", t.max[i])
				row[i] = t.max[i]
			}
		}
	}

	return t.ip.Eval(x), nil
}

func (t *Table) argumentIndex(argument string) (int, error) {
	lowered := lowerAll([]string{argument})[0]
	for i, name := range t.lowered {
		if name == lowered {
			return i, nil
		}
	}
	return 0, fmt.Errorf("table %q: unknown argument %q", t.name, argument)
}

// flatten converts a decoded document array (a []float64 or arbitrarily
// nested []any of numbers) into a row-major slice plus its shape.
func flatten(raw any) ([]float64, []int, error) {
	switch v := raw.(type) {
	case []float64:
		return v, []int{len(v)}, nil
	case Value:
		return v, []int{len(v)}, nil
	case []any:
		if len(v) == 0 {
			return nil, nil, fmt.Errorf("empty array")
		}
		if _, err := asFloat(v[0]); err == nil {
			out := make([]float64, len(v))
			for i, e := range v {
				f, err := asFloat(e)
				if err != nil {
					return nil, nil, err
				}
				out[i] = f
			}
			return out, []int{len(v)}, nil
		}
		var flat []float64
		var inner []int
		for i, e := range v {
			part, shape, err := flatten(e)
			if err != nil {
				return nil, nil, err
			}
			if i == 0 {
				inner = shape
			} else if !equalShape(inner, shape) {
				return nil, nil, fmt.Errorf("ragged array")
			}
			flat = append(flat, part...)
		}
		return flat, append([]int{len(v)}, inner...), nil
	default:
		return nil, nil, fmt.Errorf("not an array: %T", raw)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
