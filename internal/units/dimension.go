package units

import (
	"fmt"
	"strings"
)

// Dimension is an exponent vector over the SI base dimensions, in the
// order meter, kilogram, second, kelvin, ampere, mole, candela.
type Dimension [7]int8

var baseSymbols = [7]string{"m", "kg", "s", "K", "A", "mol", "cd"}

// renderOrder lists dimension indices in conventional print order, mass
// before length ("kg m/s^2", "kg/m^3").
var renderOrder = [7]int{1, 0, 2, 3, 4, 5, 6}

// IsZero reports whether the dimension is dimensionless.
func (d Dimension) IsZero() bool {
	return d == Dimension{}
}

func (d Dimension) add(other Dimension, scale int) Dimension {
	var out Dimension
	for i := range d {
		out[i] = d[i] + other[i]*int8(scale)
	}
	return out
}

// String renders the dimension as a canonical SI base unit expression,
// positive exponents first ("m kg/s^3/K"). The canonical form parses back
// to the identical dimension with factor one, which is what makes Base
// idempotent on its own output. The zero dimension renders as
// "dimensionless", which the parser also accepts.
func (d Dimension) String() string {
	if d.IsZero() {
		return "dimensionless"
	}
	var num, den []string
	for _, i := range renderOrder {
		exp := d[i]
		switch {
		case exp == 1:
			num = append(num, baseSymbols[i])
		case exp > 1:
			num = append(num, fmt.Sprintf("%s^%d", baseSymbols[i], exp))
		case exp == -1:
			den = append(den, baseSymbols[i])
		case exp < -1:
			den = append(den, fmt.Sprintf("%s^%d", baseSymbols[i], -exp))
		}
	}

	s := strings.Join(num, " ")
	if len(den) > 0 {
		if s == "" {
			s = "1"
		}
		s += "/" + strings.Join(den, "/")
	}
	return s
}
