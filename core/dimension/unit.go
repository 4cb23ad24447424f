package dimension

import (
	"strings"

	"dimensional/core/exponent"
	"dimensional/internal/errors"
)

// Slot is one dimension of a Unit. A zero exponent carries no unit identity.
type Slot struct {
	Unit BaseUnit
	Exp  exponent.Exponent
}

// IsZero reports whether the slot contributes nothing
func (s Slot) IsZero() bool {
	return s.Exp.IsZero()
}

// Unit is a derived unit: one slot per base dimension in canonical order.
// The zero value is Dimensionless.
type Unit struct {
	slots [Count]Slot
}

// Dimensionless has every exponent zero
var Dimensionless = Unit{}

// From returns the unit base^exp
func From(base BaseUnit, exp exponent.Exponent) Unit {
	var u Unit
	if base.IsZero() || exp.IsZero() {
		return u
	}
	u.slots[base.Dimension()] = Slot{Unit: base, Exp: exp}
	return u
}

// Base returns base^1
func Base(base BaseUnit) Unit {
	return From(base, exponent.One)
}

// FromSlots builds a unit from explicit slots; slots are placed by their
// root's dimension. Two nonzero slots for the same dimension are composed
// with Multiply semantics.
func FromSlots(slots ...Slot) (Unit, error) {
	u := Dimensionless
	for _, s := range slots {
		next, err := Multiply(u, From(s.Unit, s.Exp))
		if err != nil {
			return Dimensionless, err
		}
		u = next
	}
	return u, nil
}

// Slot returns the slot for d
func (u Unit) Slot(d BaseDimension) Slot {
	return u.slots[d]
}

// Slots returns a copy of all seven slots in canonical order
func (u Unit) Slots() [Count]Slot {
	return u.slots
}

// Exponent returns the exponent for d
func (u Unit) Exponent(d BaseDimension) exponent.Exponent {
	return u.slots[d].Exp
}

// IsDimensionless reports whether every exponent is zero
func (u Unit) IsDimensionless() bool {
	for _, s := range u.slots {
		if !s.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same exponent in every slot,
// regardless of which concrete units realise them.
func Equal(a, b Unit) bool {
	for i := range a.slots {
		if a.slots[i].Exp != b.slots[i].Exp {
			return false
		}
	}
	return true
}

// Identical reports whether a and b are Equal and every nonzero slot names
// the same concrete base unit.
func Identical(a, b Unit) bool {
	if !Equal(a, b) {
		return false
	}
	for i := range a.slots {
		if !a.slots[i].IsZero() && !a.slots[i].Unit.Same(b.slots[i].Unit) {
			return false
		}
	}
	return true
}

// Compatible reports whether a and b could be composed: no dimension holds
// two different nonzero concrete units. The first conflict is returned as
// an INCOMPATIBLE_COMPOSE error.
func Compatible(a, b Unit) error {
	for i := range a.slots {
		l, r := a.slots[i], b.slots[i]
		if l.IsZero() || r.IsZero() || l.Unit.Same(r.Unit) {
			continue
		}
		return errors.IncompatibleCompose(BaseDimension(i).String(), l.Unit.ShortName(), r.Unit.ShortName())
	}
	return nil
}

// Multiply combines a and b by adding exponents slot by slot
func Multiply(a, b Unit) (Unit, error) {
	if err := Compatible(a, b); err != nil {
		return Dimensionless, err
	}

	var out Unit
	for i := range a.slots {
		l, r := a.slots[i], b.slots[i]
		exp := exponent.Add(l.Exp, r.Exp)
		if exp.IsZero() {
			continue
		}
		base := l.Unit
		if l.IsZero() {
			base = r.Unit
		}
		out.slots[i] = Slot{Unit: base, Exp: exp}
	}
	return out, nil
}

// Divide is Multiply(a, Invert(b))
func Divide(a, b Unit) (Unit, error) {
	return Multiply(a, Invert(b))
}

// Invert negates every exponent
func Invert(u Unit) Unit {
	var out Unit
	for i, s := range u.slots {
		if s.IsZero() {
			continue
		}
		out.slots[i] = Slot{Unit: s.Unit, Exp: exponent.Negate(s.Exp)}
	}
	return out
}

// Pow multiplies every exponent by e; Pow(m², 1/2) is m
func Pow(u Unit, e exponent.Exponent) Unit {
	var out Unit
	for i, s := range u.slots {
		exp := exponent.Mul(s.Exp, e)
		if exp.IsZero() {
			continue
		}
		out.slots[i] = Slot{Unit: s.Unit, Exp: exp}
	}
	return out
}

// MustMultiply panics if a and b cannot be composed
func MustMultiply(a, b Unit) Unit {
	u, err := Multiply(a, b)
	if err != nil {
		panic(err)
	}
	return u
}

// MustDivide panics if a and b cannot be composed
func MustDivide(a, b Unit) Unit {
	u, err := Divide(a, b)
	if err != nil {
		panic(err)
	}
	return u
}

// Key is a stable identity string for maps: concrete unit and exponent of
// each nonzero slot in canonical order.
func (u Unit) Key() string {
	var b strings.Builder
	for i, s := range u.slots {
		if i > 0 {
			b.WriteByte(';')
		}
		if s.IsZero() {
			continue
		}
		b.WriteString(s.Unit.ShortName())
		b.WriteByte('^')
		b.WriteString(s.Exp.String())
	}
	return b.String()
}

// Signature is the dimension-only identity: exponents without concrete units
func (u Unit) Signature() string {
	var b strings.Builder
	for i, s := range u.slots {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(s.Exp.String())
	}
	return b.String()
}
