package units

import "sync"

// unit is a resolved unit expression: value_in_base = value*factor + offset.
// Offsets only occur on bare temperature units (degC, degF).
type unit struct {
	factor float64
	offset float64
	dim    Dimension
}

// Registry maps unit symbols to their SI definitions and holds the curated
// preferred-unit table used by Display. It is immutable after New returns.
type Registry struct {
	units     map[string]unit
	prefixes  map[string]float64
	preferred map[Dimension]preferredUnit
}

type preferredUnit struct {
	name string
	unit unit
}

var (
	dimLength  = Dimension{1, 0, 0, 0, 0, 0, 0}
	dimMass    = Dimension{0, 1, 0, 0, 0, 0, 0}
	dimTime    = Dimension{0, 0, 1, 0, 0, 0, 0}
	dimTemp    = Dimension{0, 0, 0, 1, 0, 0, 0}
	dimCurrent = Dimension{0, 0, 0, 0, 1, 0, 0}
	dimAmount  = Dimension{0, 0, 0, 0, 0, 1, 0}
	dimLumine  = Dimension{0, 0, 0, 0, 0, 0, 1}

	dimForce    = Dimension{1, 1, -2, 0, 0, 0, 0}  // kg m/s^2
	dimPressure = Dimension{-1, 1, -2, 0, 0, 0, 0} // kg/m/s^2
	dimEnergy   = Dimension{2, 1, -2, 0, 0, 0, 0}  // kg m^2/s^2
	dimPower    = Dimension{2, 1, -3, 0, 0, 0, 0}  // kg m^2/s^3
)

// New builds the full unit registry: SI base units, named derived units,
// a handful of customary engineering units, metric prefixes and the
// preferred display units per physical dimension.
func New() *Registry {
	r := &Registry{
		units:     make(map[string]unit),
		prefixes:  make(map[string]float64),
		preferred: make(map[Dimension]preferredUnit),
	}

	def := func(u unit, names ...string) {
		for _, name := range names {
			r.units[name] = u
		}
	}

	// SI base units.
	def(unit{factor: 1, dim: dimLength}, "m")
	def(unit{factor: 1e-3, dim: dimMass}, "g")
	def(unit{factor: 1, dim: dimTime}, "s")
	def(unit{factor: 1, dim: dimTemp}, "K")
	def(unit{factor: 1, dim: dimCurrent}, "A")
	def(unit{factor: 1, dim: dimAmount}, "mol")
	def(unit{factor: 1, dim: dimLumine}, "cd")
	def(unit{factor: 1}, "rad")

	// SI derived units.
	def(unit{factor: 1, dim: Dimension{0, 0, -1, 0, 0, 0, 0}}, "Hz")
	def(unit{factor: 1, dim: dimForce}, "N")
	def(unit{factor: 1, dim: dimPressure}, "Pa")
	def(unit{factor: 1, dim: dimEnergy}, "J")
	def(unit{factor: 1, dim: dimPower}, "W")
	def(unit{factor: 1, dim: Dimension{0, 0, 1, 0, 1, 0, 0}}, "C")
	def(unit{factor: 1, dim: Dimension{2, 1, -3, 0, -1, 0, 0}}, "V")
	def(unit{factor: 1, dim: Dimension{2, 1, -3, 0, -2, 0, 0}}, "Ω", "ohm")
	def(unit{factor: 1, dim: Dimension{-2, -1, 3, 0, 2, 0, 0}}, "S")
	def(unit{factor: 1, dim: Dimension{-2, -1, 4, 0, 2, 0, 0}}, "F")
	def(unit{factor: 1, dim: Dimension{2, 1, -2, 0, -1, 0, 0}}, "Wb")
	def(unit{factor: 1, dim: Dimension{2, 1, -2, 0, -2, 0, 0}}, "H")
	def(unit{factor: 1, dim: Dimension{0, 1, -2, 0, -1, 0, 0}}, "T")

	// Accepted non-SI units.
	def(unit{factor: 1e-3, dim: Dimension{3, 0, 0, 0, 0, 0, 0}}, "L", "l")
	def(unit{factor: 60, dim: dimTime}, "min")
	def(unit{factor: 3600, dim: dimTime}, "h", "hr")
	def(unit{factor: 86400, dim: dimTime}, "day")
	def(unit{factor: 1e5, dim: dimPressure}, "bar")
	def(unit{factor: 101325, dim: dimPressure}, "atm")
	def(unit{factor: 6894.757293168, dim: dimPressure}, "psi")
	def(unit{factor: 1.602176634e-19, dim: dimEnergy}, "eV")
	def(unit{factor: 4.184, dim: dimEnergy}, "cal")
	def(unit{factor: 1055.05585262, dim: dimEnergy}, "Btu")
	def(unit{factor: 0.0254, dim: dimLength}, "in")
	def(unit{factor: 0.3048, dim: dimLength}, "ft")
	def(unit{factor: 0.45359237, dim: dimMass}, "lb")
	def(unit{factor: 4.4482216152605, dim: dimForce}, "lbf")

	// Offset temperature scales, valid only as a bare unit.
	def(unit{factor: 1, offset: 273.15, dim: dimTemp}, "degC", "°C")
	def(unit{factor: 5.0 / 9.0, offset: 273.15 - 32*5.0/9.0, dim: dimTemp}, "degF", "°F")

	for name, factor := range map[string]float64{
		"y": 1e-24, "z": 1e-21, "a": 1e-18, "f": 1e-15, "p": 1e-12,
		"n": 1e-9, "µ": 1e-6, "u": 1e-6, "c": 1e-2, "d": 1e-1,
		"da": 1e1, "k": 1e3, "M": 1e6, "G": 1e9, "P": 1e15, "E": 1e18,
	} {
		r.prefixes[name] = factor
	}
	// "m" (milli) and "T" (tera) collide with meter and tesla; exact
	// symbol matches win during lookup, so the prefixes stay usable in
	// compounds like "mm" and "THz".
	r.prefixes["m"] = 1e-3
	r.prefixes["T"] = 1e12

	for _, name := range []string{
		"m", "kg", "s", "K", // distance, mass, time, temperature
		"N", "Pa", "J", "W", // force, pressure, energy, power
		"C", "V", "Ω", "S", // charge, voltage, resistance, conductivity
		"F", "Wb", "H", "T", // capacitance, magnetic flux, inductance, magnetic field
		"kg/m^3",  // density
		"mm/mm/K", // coefficient of thermal expansion
		"J/kg/K",  // specific heat capacity
		"W/m/K",   // thermal conductivity
		"Ω m",     // electrical resistivity
	} {
		u, err := r.parse(name)
		if err != nil {
			panic("units: bad preferred unit " + name + ": " + err.Error())
		}
		r.preferred[u.dim] = preferredUnit{name: name, unit: u}
	}

	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide shared registry. It is constructed on
// first use and never mutated afterwards, so concurrent readers need no
// synchronization.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = New() })
	return defaultReg
}
