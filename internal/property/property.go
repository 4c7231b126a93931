package property

import "context"

// Value is an evaluation operand or result: one entry per query. Use
// Scalar for single-point queries.
type Value []float64

// Scalar wraps a single float as a one-query Value.
func Scalar(v float64) Value { return Value{v} }

// Named holds keyword evaluation arguments. Keys match declared argument
// names case-insensitively.
type Named map[string]Value

// Property is the closed evaluation interface implemented by exactly
// Constant, Table and Function. Consumers that need variant-specific
// behavior type-switch over these three.
type Property interface {
	// Name returns the property name as declared in the document.
	Name() string

	// Eval resolves arguments against the declared argument list and
	// returns one value per query.
	Eval(ctx context.Context, pos []Value, named Named) (Value, error)
}

// Expression is the analytic form backing a Function property. Call
// receives a query-major matrix in the property's original (pre-base)
// units and returns the dependent value per row, also in original units.
type Expression interface {
	Call(x [][]float64) ([]float64, error)
}
