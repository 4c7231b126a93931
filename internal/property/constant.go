package property

import (
	"context"
	"fmt"

	"github.com/vk/matprop/internal/units"
)

// Constant is a fixed-value property. Arguments are accepted on Eval for
// interface uniformity with Table and Function but never affect the
// result.
type Constant struct {
	name   string
	symbol string
	unit   string
	value  Value
}

// NewConstant base-normalizes value and builds an immutable constant.
func NewConstant(reg *units.Registry, name, unitSpec, symbol string, value Value) (*Constant, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("constant %q: no value", name)
	}
	converted, baseUnit, err := reg.BaseSlice(value, unitSpec)
	if err != nil {
		return nil, fmt.Errorf("constant %q: %w", name, err)
	}
	return &Constant{
		name:   name,
		symbol: symbol,
		unit:   baseUnit,
		value:  converted,
	}, nil
}

// Name returns the property name.
func (c *Constant) Name() string { return c.name }

// Symbol returns the property symbol.
func (c *Constant) Symbol() string { return c.symbol }

// Unit returns the base unit the stored value is expressed in.
func (c *Constant) Unit() string { return c.unit }

// Value returns the stored base-unit value.
func (c *Constant) Value() Value { return c.value }

// Eval returns the stored value, ignoring all arguments.
func (c *Constant) Eval(_ context.Context, _ []Value, _ Named) (Value, error) {
	return c.value, nil
}
