package units

import (
	"strconv"
	"strings"
)

// parse resolves a unit expression into a single unit. Products bind by
// '*', '·' or whitespace; '/' divides everything to its right-hand term;
// '^' raises a term to an integer power.
func (r *Registry) parse(spec string) (unit, error) {
	out := unit{factor: 1}

	trimmed := strings.TrimSpace(spec)
	if trimmed == "" || trimmed == "dimensionless" {
		return out, nil
	}

	terms, signs := splitTerms(trimmed)
	for i, term := range terms {
		symbol, exp, err := splitExponent(spec, term)
		if err != nil {
			return unit{}, err
		}
		if symbol == "1" {
			continue
		}

		u, ok := r.lookup(symbol)
		if !ok {
			return unit{}, errUnknown(spec, symbol)
		}

		exp *= signs[i]
		if u.offset != 0 {
			if len(terms) != 1 || exp != 1 {
				return unit{}, &UnitError{Unit: spec, Msg: "offset unit " + symbol + " is only valid as a bare unit"}
			}
			return u, nil
		}

		out.factor *= pow(u.factor, exp)
		out.dim = out.dim.add(u.dim, exp)
	}

	return out, nil
}

// splitTerms tokenizes a unit expression into term strings and their
// exponent signs (+1 for products, -1 for quotients).
func splitTerms(spec string) (terms []string, signs []int) {
	sign := 1
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			terms = append(terms, cur.String())
			signs = append(signs, sign)
			cur.Reset()
			sign = 1
		}
	}

	pendingDiv := false
	for _, c := range spec {
		switch {
		case c == '/':
			flush()
			pendingDiv = true
		case c == '*' || c == '·' || c == ' ' || c == '\t':
			flush()
		default:
			if cur.Len() == 0 && pendingDiv {
				sign = -1
				pendingDiv = false
			}
			cur.WriteRune(c)
		}
	}
	flush()
	return terms, signs
}

func splitExponent(spec, term string) (string, int, error) {
	symbol, expStr, found := strings.Cut(term, "^")
	if !found {
		return term, 1, nil
	}
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return "", 0, &UnitError{Unit: spec, Msg: "invalid exponent in " + term}
	}
	return symbol, exp, nil
}

// lookup resolves a single unit symbol, trying an exact match before
// peeling off a metric prefix. Longer prefixes win ("da" over "d").
func (r *Registry) lookup(symbol string) (unit, bool) {
	if u, ok := r.units[symbol]; ok {
		return u, true
	}

	var (
		best    unit
		bestLen int
		found   bool
	)
	for prefix, factor := range r.prefixes {
		rest, ok := strings.CutPrefix(symbol, prefix)
		if !ok || rest == "" {
			continue
		}
		u, ok := r.units[rest]
		if !ok || u.offset != 0 {
			continue
		}
		if len(prefix) > bestLen {
			u.factor *= factor
			best, bestLen, found = u, len(prefix), true
		}
	}
	return best, found
}

func pow(base float64, exp int) float64 {
	if exp < 0 {
		return 1 / pow(base, -exp)
	}
	out := 1.0
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}
