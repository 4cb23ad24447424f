// Package quantity pairs a numeric value with a unit.
//
// A Quantity is an immutable value. Its arithmetic strategy A is a zero-size
// type parameter, so Quantity[float64, numeric.Native[float64]] is as large
// as a float64 plus its unit. Addition and comparison require equal units;
// multiplication and division compose them. Values never change unit except
// through ConvertTo.
package quantity

import (
	"github.com/shopspring/decimal"

	"dimensional/core/catalog"
	"dimensional/core/conversion"
	"dimensional/core/dimension"
	"dimensional/core/exponent"
	"dimensional/core/naming"
	"dimensional/core/numeric"
	"dimensional/internal/errors"
)

// Quantity is a value of type V measured in a unit
type Quantity[V any, A numeric.Arithmetic[V]] struct {
	value V
	unit  dimension.Unit
}

// Common instantiations
type (
	Float64 = Quantity[float64, numeric.Native[float64]]
	Float32 = Quantity[float32, numeric.Native[float32]]
	Int64   = Quantity[int64, numeric.Native[int64]]
	Decimal = Quantity[decimal.Decimal, numeric.Decimal]
)

// New creates a quantity
func New[A numeric.Arithmetic[V], V any](value V, unit dimension.Unit) Quantity[V, A] {
	return Quantity[V, A]{value: value, unit: unit}
}

// NewFloat64 creates a float64 quantity
func NewFloat64(value float64, unit dimension.Unit) Float64 {
	return New[numeric.Native[float64]](value, unit)
}

// NewFloat32 creates a float32 quantity
func NewFloat32(value float32, unit dimension.Unit) Float32 {
	return New[numeric.Native[float32]](value, unit)
}

// NewInt64 creates an int64 quantity
func NewInt64(value int64, unit dimension.Unit) Int64 {
	return New[numeric.Native[int64]](value, unit)
}

// NewDecimal creates a decimal quantity
func NewDecimal(value decimal.Decimal, unit dimension.Unit) Decimal {
	return New[numeric.Decimal](value, unit)
}

// Value returns the raw value
func (q Quantity[V, A]) Value() V {
	return q.value
}

// Unit returns the unit
func (q Quantity[V, A]) Unit() dimension.Unit {
	return q.unit
}

func (q Quantity[V, A]) arith() A {
	var a A
	return a
}

// sameUnit checks that q and o may be added or compared. Dimensions are
// checked first; equal dimensions realised by different base units are
// refused rather than coerced.
func (q Quantity[V, A]) sameUnit(op string, o Quantity[V, A]) error {
	if !dimension.Equal(q.unit, o.unit) {
		return errors.UnitMismatch(op, naming.ShortName(q.unit), naming.ShortName(o.unit))
	}
	if err := dimension.Compatible(q.unit, o.unit); err != nil {
		return err
	}
	return nil
}

// Add returns q + o. The units must be equal.
func (q Quantity[V, A]) Add(o Quantity[V, A]) (Quantity[V, A], error) {
	if err := q.sameUnit("add", o); err != nil {
		return Quantity[V, A]{}, err
	}
	return Quantity[V, A]{value: q.arith().Add(q.value, o.value), unit: q.unit}, nil
}

// Sub returns q - o. The units must be equal.
func (q Quantity[V, A]) Sub(o Quantity[V, A]) (Quantity[V, A], error) {
	if err := q.sameUnit("subtract", o); err != nil {
		return Quantity[V, A]{}, err
	}
	return Quantity[V, A]{value: q.arith().Sub(q.value, o.value), unit: q.unit}, nil
}

// Mul returns q * o in the product unit
func (q Quantity[V, A]) Mul(o Quantity[V, A]) (Quantity[V, A], error) {
	unit, err := dimension.Multiply(q.unit, o.unit)
	if err != nil {
		return Quantity[V, A]{}, err
	}
	return Quantity[V, A]{value: q.arith().Mul(q.value, o.value), unit: unit}, nil
}

// Div returns q / o in the quotient unit
func (q Quantity[V, A]) Div(o Quantity[V, A]) (Quantity[V, A], error) {
	unit, err := dimension.Divide(q.unit, o.unit)
	if err != nil {
		return Quantity[V, A]{}, err
	}
	return Quantity[V, A]{value: q.arith().Div(q.value, o.value), unit: unit}, nil
}

// MustAdd is Add that panics on error
func (q Quantity[V, A]) MustAdd(o Quantity[V, A]) Quantity[V, A] {
	return must(q.Add(o))
}

// MustSub is Sub that panics on error
func (q Quantity[V, A]) MustSub(o Quantity[V, A]) Quantity[V, A] {
	return must(q.Sub(o))
}

// MustMul is Mul that panics on error
func (q Quantity[V, A]) MustMul(o Quantity[V, A]) Quantity[V, A] {
	return must(q.Mul(o))
}

// MustDiv is Div that panics on error
func (q Quantity[V, A]) MustDiv(o Quantity[V, A]) Quantity[V, A] {
	return must(q.Div(o))
}

func must[Q any](q Q, err error) Q {
	if err != nil {
		panic(err)
	}
	return q
}

// Scale multiplies the value by a bare number, keeping the unit
func (q Quantity[V, A]) Scale(factor V) Quantity[V, A] {
	return Quantity[V, A]{value: q.arith().Mul(q.value, factor), unit: q.unit}
}

// Inv returns 1/q in the inverted unit
func (q Quantity[V, A]) Inv() Quantity[V, A] {
	a := q.arith()
	one := a.FromDecimal(decimal.NewFromInt(1))
	return Quantity[V, A]{value: a.Div(one, q.value), unit: dimension.Invert(q.unit)}
}

// Pow raises q to an integer power
func (q Quantity[V, A]) Pow(n int32) Quantity[V, A] {
	a := q.arith()
	value := a.FromDecimal(decimal.NewFromInt(1))
	for i := int32(0); i < abs(n); i++ {
		value = a.Mul(value, q.value)
	}
	if n < 0 {
		value = a.Div(a.FromDecimal(decimal.NewFromInt(1)), value)
	}
	return Quantity[V, A]{value: value, unit: dimension.Pow(q.unit, exponent.Int(n))}
}

func abs(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}

// Cmp compares q and o; the units must be equal
func (q Quantity[V, A]) Cmp(o Quantity[V, A]) (int, error) {
	if err := q.sameUnit("compare", o); err != nil {
		return 0, err
	}
	return q.arith().Cmp(q.value, o.value), nil
}

// Equal reports whether q and o hold the same value; the units must be equal
func (q Quantity[V, A]) Equal(o Quantity[V, A]) (bool, error) {
	c, err := q.Cmp(o)
	return c == 0, err
}

// ConvertTo re-expresses q in target. A nil table means the built-in
// catalog's table. NaN and infinite values fail with INPUT_ERROR unless
// target is identical to q's unit.
func (q Quantity[V, A]) ConvertTo(target dimension.Unit, table *conversion.Table) (Quantity[V, A], error) {
	if dimension.Identical(q.unit, target) {
		return Quantity[V, A]{value: q.value, unit: target}, nil
	}
	if table == nil {
		table = catalog.DefaultTable()
	}

	transform, err := table.Resolve(q.unit, target)
	if err != nil {
		return Quantity[V, A]{}, err
	}

	a := q.arith()
	if !a.Finite(q.value) {
		return Quantity[V, A]{}, errors.Newf(errors.TypeInput, "cannot convert %s", q).
			WithContext("to", naming.ShortName(target))
	}
	value := a.FromDecimal(transform.Apply(a.ToDecimal(q.value)))
	return Quantity[V, A]{value: value, unit: target}, nil
}

// MustConvertTo is ConvertTo that panics on error
func (q Quantity[V, A]) MustConvertTo(target dimension.Unit, table *conversion.Table) Quantity[V, A] {
	return must(q.ConvertTo(target, table))
}

// String formats q as "<value> <unit>"; dimensionless values have no suffix
func (q Quantity[V, A]) String() string {
	value := q.arith().Format(q.value)
	if q.unit.IsDimensionless() {
		return value
	}
	return value + " " + naming.ShortName(q.unit)
}
