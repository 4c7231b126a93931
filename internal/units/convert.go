package units

// Base converts a value in the given unit into SI base units and returns
// the converted value together with the canonical base unit expression.
// Calling Base on its own output is a no-op.
func (r *Registry) Base(value float64, unitSpec string) (float64, string, error) {
	u, err := r.parse(unitSpec)
	if err != nil {
		return 0, "", err
	}
	return value*u.factor + u.offset, u.dim.String(), nil
}

// BaseSlice is Base over a slice of values sharing one unit.
func (r *Registry) BaseSlice(values []float64, unitSpec string) ([]float64, string, error) {
	u, err := r.parse(unitSpec)
	if err != nil {
		return nil, "", err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v*u.factor + u.offset
	}
	return out, u.dim.String(), nil
}

// To converts a value from oldUnit to newUnit. The two units must share a
// dimensionality.
func (r *Registry) To(value float64, oldUnit, newUnit string) (float64, error) {
	old, next, err := r.parsePair(oldUnit, newUnit)
	if err != nil {
		return 0, err
	}
	return (value*old.factor + old.offset - next.offset) / next.factor, nil
}

// ToSlice is To over a slice of values sharing one unit pair.
func (r *Registry) ToSlice(values []float64, oldUnit, newUnit string) ([]float64, error) {
	old, next, err := r.parsePair(oldUnit, newUnit)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v*old.factor + old.offset - next.offset) / next.factor
	}
	return out, nil
}

// Display converts a value into the curated preferred unit for its
// physical dimension. Dimensions outside the curated table pass through
// in SI base units.
func (r *Registry) Display(value float64, unitSpec string) (float64, string, error) {
	u, err := r.parse(unitSpec)
	if err != nil {
		return 0, "", err
	}
	base := value*u.factor + u.offset
	pref, ok := r.preferred[u.dim]
	if !ok {
		return base, u.dim.String(), nil
	}
	return (base - pref.unit.offset) / pref.unit.factor, pref.name, nil
}

// DisplaySlice is Display over a slice of values sharing one unit.
func (r *Registry) DisplaySlice(values []float64, unitSpec string) ([]float64, string, error) {
	u, err := r.parse(unitSpec)
	if err != nil {
		return nil, "", err
	}
	conv := unit{factor: 1}
	name := u.dim.String()
	if pref, ok := r.preferred[u.dim]; ok {
		name = pref.name
		conv = pref.unit
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v*u.factor + u.offset - conv.offset) / conv.factor
	}
	return out, name, nil
}

func (r *Registry) parsePair(oldUnit, newUnit string) (unit, unit, error) {
	old, err := r.parse(oldUnit)
	if err != nil {
		return unit{}, unit{}, err
	}
	next, err := r.parse(newUnit)
	if err != nil {
		return unit{}, unit{}, err
	}
	if old.dim != next.dim {
		return unit{}, unit{}, errIncompatible(oldUnit, newUnit)
	}
	return old, next, nil
}
