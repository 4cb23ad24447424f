// Package dimension holds the canonical unit representation: a vector of
// seven (base unit, exponent) slots, one per ISQ base dimension, and the
// composition rules that combine such vectors.
package dimension

import (
	"strings"

	"github.com/shopspring/decimal"

	"dimensional/internal/errors"
)

// BaseDimension is one of the seven ISQ base quantities
type BaseDimension int

const (
	Length BaseDimension = iota
	Mass
	Time
	Current
	Temperature
	AmountOfSubstance
	LuminousIntensity
)

// Count is the number of base dimensions and therefore of slots in a Unit
const Count = 7

// All lists the base dimensions in canonical slot order
var All = [Count]BaseDimension{
	Length, Mass, Time, Current, Temperature, AmountOfSubstance, LuminousIntensity,
}

var dimensionNames = [Count]string{
	"length", "mass", "time", "current", "temperature", "amount_of_substance", "luminous_intensity",
}

// String returns the snake_case name used in catalogs
func (d BaseDimension) String() string {
	if d < 0 || int(d) >= Count {
		return "unknown"
	}
	return dimensionNames[d]
}

// Valid reports whether d is one of the seven base dimensions
func (d BaseDimension) Valid() bool {
	return d >= 0 && int(d) < Count
}

// ParseBaseDimension resolves a catalog dimension name
func ParseBaseDimension(s string) (BaseDimension, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range dimensionNames {
		if key == name {
			return BaseDimension(i), nil
		}
	}
	return -1, errors.NotFound("base dimension", s)
}

// Prefix is a named multiplicative scale Base^Exp, e.g. kilo = 10^3
type Prefix struct {
	Short string
	Long  string
	Base  int
	Exp   int
}

// NoPrefix is the identity prefix
var NoPrefix = &Prefix{Base: 1}

// Scale returns Base^Exp
func (p *Prefix) Scale() decimal.Decimal {
	if p == nil || p.Exp == 0 || p.Base == 1 {
		return decimal.NewFromInt(1)
	}
	if p.Base == 10 {
		return decimal.New(1, int32(p.Exp))
	}
	return powInt(decimal.NewFromInt(int64(p.Base)), p.Exp)
}

// Root is an unprefixed named unit belonging to exactly one base dimension
type Root struct {
	Short     string
	Long      string
	Dimension BaseDimension

	// Scale converts one of this root into the coherent root of its
	// dimension (foot = 0.3048 meter). Zero means 1.
	Scale decimal.Decimal

	// Affine roots (degree Celsius) sit on an offset scale and only convert
	// through registered transforms.
	Affine bool
}

// Factor returns Scale, defaulting to 1
func (r *Root) Factor() decimal.Decimal {
	if r.Scale.IsZero() {
		return decimal.NewFromInt(1)
	}
	return r.Scale
}

// BaseUnit is a root with an optional prefix (km, μs, kg)
type BaseUnit struct {
	Prefix *Prefix
	Root   *Root
}

// Of returns the unprefixed base unit for root
func Of(root *Root) BaseUnit {
	return BaseUnit{Root: root}
}

// Prefixed returns the base unit prefix+root
func Prefixed(prefix *Prefix, root *Root) BaseUnit {
	return BaseUnit{Prefix: prefix, Root: root}
}

// IsZero reports whether no root is set
func (u BaseUnit) IsZero() bool {
	return u.Root == nil
}

// Dimension returns the root's base dimension
func (u BaseUnit) Dimension() BaseDimension {
	return u.Root.Dimension
}

func (u BaseUnit) prefix() *Prefix {
	if u.Prefix == nil {
		return NoPrefix
	}
	return u.Prefix
}

// ShortName concatenates prefix and root symbols
func (u BaseUnit) ShortName() string {
	if u.Root == nil {
		return ""
	}
	return u.prefix().Short + u.Root.Short
}

// LongName concatenates prefix and root spelled names
func (u BaseUnit) LongName() string {
	if u.Root == nil {
		return ""
	}
	return u.prefix().Long + u.Root.Long
}

// Same reports whether u and o name the same concrete unit
func (u BaseUnit) Same(o BaseUnit) bool {
	if u.Root == nil || o.Root == nil {
		return u.Root == o.Root
	}
	if u.Root != o.Root && (u.Root.Short != o.Root.Short || u.Root.Dimension != o.Root.Dimension) {
		return false
	}
	p, q := u.prefix(), o.prefix()
	return p.Short == q.Short && p.Base == q.Base && p.Exp == q.Exp
}

// Scale is the factor from u to the coherent root of its dimension
func (u BaseUnit) Scale() decimal.Decimal {
	return u.prefix().Scale().Mul(u.Root.Factor())
}

// Affine reports whether u sits on an offset scale
func (u BaseUnit) Affine() bool {
	return u.Root != nil && u.Root.Affine
}

func powInt(d decimal.Decimal, n int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if n < 0 {
		return one.Div(powInt(d, -n))
	}
	result := one
	for ; n > 0; n-- {
		result = result.Mul(d)
	}
	return result
}
