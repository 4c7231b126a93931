package property

import (
	"fmt"
	"strings"
)

// bindArguments resolves a call's positional and keyword values against
// the declared argument list, falling back to stored defaults, and
// returns a query-major matrix: one row per query, one column per
// argument in declaration order.
//
// Per argument slot: a positional value and a keyword value together are
// ambiguous; a positional value wins over the default; then a keyword
// value; then the default. Scalars broadcast against the longest bound
// value.
func bindArguments(display, lowered []string, defaults []float64, pos []Value, named Named) ([][]float64, error) {
	if len(pos) > len(display) {
		return nil, fmt.Errorf("%d positional arguments for %d declared", len(pos), len(display))
	}

	kw := make(map[string]Value, len(named))
	for name, v := range named {
		low := strings.ToLower(name)
		if _, dup := kw[low]; dup {
			return nil, fmt.Errorf("keyword arguments collide on %q after case folding", low)
		}
		kw[low] = v
	}
	for name := range kw {
		if !contains(lowered, name) {
			return nil, fmt.Errorf("unknown argument %q", name)
		}
	}

	cols := make([]Value, len(display))
	for i, name := range lowered {
		kv, hasKw := kw[name]
		switch {
		case i < len(pos) && hasKw:
			return nil, &AmbiguousArgumentError{Argument: display[i]}
		case i < len(pos):
			cols[i] = pos[i]
		case hasKw:
			cols[i] = kv
		default:
			cols[i] = Scalar(defaults[i])
		}
		if len(cols[i]) == 0 {
			return nil, fmt.Errorf("argument %q is empty", display[i])
		}
	}

	n := 1
	for i, col := range cols {
		if len(col) == 1 || len(col) == n {
			continue
		}
		if n == 1 {
			n = len(col)
			continue
		}
		return nil, fmt.Errorf("argument %q has %d queries, want %d", display[i], len(col), n)
	}

	x := make([][]float64, n)
	for q := 0; q < n; q++ {
		row := make([]float64, len(cols))
		for i, col := range cols {
			if len(col) == 1 {
				row[i] = col[0]
			} else {
				row[i] = col[q]
			}
		}
		x[q] = row
	}
	return x, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func lowerAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
