// Package units provides parsing and conversion of physical unit
// expressions over the seven SI base dimensions.
//
// A Registry is immutable after construction and is shared read-only by
// every property instance in the process. All stored property state is
// normalized through Base into SI base units on ingestion; Display maps a
// base-unit value into a curated human-friendly unit for its physical
// dimension.
//
// The unit grammar accepts products ("N m", "Ω·m", "kg*m"), chained
// quotients ("W/m/K"), integer exponents ("m/s^2"), metric prefixes
// ("mm", "kPa", "GHz") and the offset temperature units degC and degF.
package units
