package expr

import "fmt"

// Lambda binds an ordered argument-name list to a compiled expression and
// an alias scope of named constants. It is the callable form backing
// analytic function properties; immutable once constructed.
type Lambda struct {
	Args  []string
	Alias map[string]float64

	prog *Program
}

// NewLambda compiles src into a Lambda over the given argument names.
// Alias entries shadow nothing: an alias sharing a name with an argument
// is rejected at construction.
func NewLambda(args []string, src string, alias map[string]float64) (*Lambda, error) {
	for name := range alias {
		for _, arg := range args {
			if name == arg {
				return nil, fmt.Errorf("lambda: alias %q collides with an argument name", name)
			}
		}
	}
	prog, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("lambda: %w", err)
	}
	return &Lambda{Args: args, Alias: alias, prog: prog}, nil
}

// Source returns the expression text the lambda was compiled from.
func (l *Lambda) Source() string { return l.prog.Source() }

// Call evaluates the expression once per query row. Each row supplies one
// value per declared argument, in declaration order.
func (l *Lambda) Call(x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	scope := make(map[string]float64, len(l.Args)+len(l.Alias))
	for name, v := range l.Alias {
		scope[name] = v
	}
	for i, row := range x {
		if len(row) != len(l.Args) {
			return nil, fmt.Errorf("lambda: query row %d has %d values, want %d", i, len(row), len(l.Args))
		}
		for j, name := range l.Args {
			scope[name] = row[j]
		}
		v, err := l.prog.Eval(scope)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
