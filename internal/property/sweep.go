package property

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// sweepPoints is the sample count for analytic sweeps.
const sweepPoints = 1000

// Sweep is a one-argument scan of a property with every other argument
// held at its default, converted for presentation. It is the data behind
// a property plot; rendering is up to the caller.
type Sweep struct {
	Argument string
	X        Value
	XUnit    string
	Y        Value
	YUnit    string
}

// Sweep scans the named argument over its grid axis. Empty unit strings
// select the curated display unit for each dimension.
func (t *Table) Sweep(ctx context.Context, argument, xUnit, yUnit string) (*Sweep, error) {
	i, err := t.argumentIndex(argument)
	if err != nil {
		return nil, err
	}
	xq := make(Value, len(t.axes[i]))
	copy(xq, t.axes[i])

	y, err := t.Eval(ctx, nil, Named{t.lowered[i]: xq})
	if err != nil {
		return nil, err
	}
	return convertSweep(t.reg, t.arguments[i], xq, t.units[i], y, t.units[len(t.units)-1], xUnit, yUnit)
}

// Sweep scans the named argument across its declared bounds. Empty unit
// strings select the curated display unit for each dimension.
func (f *Function) Sweep(ctx context.Context, argument, xUnit, yUnit string) (*Sweep, error) {
	i, err := f.argumentIndex(argument)
	if err != nil {
		return nil, err
	}
	xq := make(Value, sweepPoints)
	floats.Span(xq, f.bounds[i][0], f.bounds[i][1])

	y, err := f.Eval(ctx, nil, Named{f.lowered[i]: xq})
	if err != nil {
		return nil, err
	}
	return convertSweep(f.reg, f.arguments[i], xq, f.units[i], y, f.units[len(f.units)-1], xUnit, yUnit)
}

func convertSweep(reg unitConverter, argument string, x Value, xBase string, y Value, yBase, xUnit, yUnit string) (*Sweep, error) {
	var err error
	s := &Sweep{Argument: argument}

	if xUnit == "" {
		s.X, s.XUnit, err = reg.DisplaySlice(x, xBase)
	} else {
		s.XUnit = xUnit
		s.X, err = reg.ToSlice(x, xBase, xUnit)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep over %q: %w", argument, err)
	}

	if yUnit == "" {
		s.Y, s.YUnit, err = reg.DisplaySlice(y, yBase)
	} else {
		s.YUnit = yUnit
		s.Y, err = reg.ToSlice(y, yBase, yUnit)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep over %q: %w", argument, err)
	}
	return s, nil
}

// unitConverter is the slice of the unit registry the sweep conversion
// needs; it keeps convertSweep testable without a full registry.
type unitConverter interface {
	ToSlice(values []float64, oldUnit, newUnit string) ([]float64, error)
	DisplaySlice(values []float64, unitSpec string) ([]float64, string, error)
}
