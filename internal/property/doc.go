// Package property implements the three physical-property variants a
// document can declare: constants, interpolated tables and analytic
// functions.
//
// Every variant normalizes its numeric state to SI base units at
// construction and is immutable afterwards; evaluation reads only
// instance state plus the shared read-only unit registry, so concurrent
// evaluation is safe without locks.
//
// All variants share one evaluation surface: positional values bind to
// declared arguments by slot, keyword values bind case-insensitively by
// name, and anything left unbound falls back to the stored default.
// Tables clamp out-of-range queries to the grid extrema with a warning;
// functions reject out-of-bounds queries outright, since an analytic
// expression may be undefined outside its validated domain.
package property
