package property

import "fmt"

// AmbiguousArgumentError reports an argument supplied both positionally
// and by keyword in the same call.
type AmbiguousArgumentError struct {
	Argument string
}

func (e *AmbiguousArgumentError) Error() string {
	return fmt.Sprintf("argument %q supplied both positionally and by keyword", e.Argument)
}

// OutOfBoundsError reports a function-property query outside the declared
// argument bounds. Unlike table clamping this is fatal to the call.
type OutOfBoundsError struct {
	Property string
	Argument string
	Query    int
	Value    float64
	Min      float64
	Max      float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("property %q: query %d: argument %q = %g outside bounds [%g, %g]",
		e.Property, e.Query, e.Argument, e.Value, e.Min, e.Max)
}
