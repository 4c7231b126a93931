package units

import "fmt"

// UnitError reports an unparsable unit expression or a dimensionally
// incompatible conversion. It is always fatal to the call that raised it.
type UnitError struct {
	Unit string
	Msg  string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %q: %s", e.Unit, e.Msg)
}

func errUnknown(spec, symbol string) *UnitError {
	return &UnitError{Unit: spec, Msg: fmt.Sprintf("unknown unit symbol %q", symbol)}
}

func errIncompatible(from, to string) *UnitError {
	return &UnitError{Unit: from, Msg: fmt.Sprintf("cannot convert to %q: incompatible dimensions", to)}
}
