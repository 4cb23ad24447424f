// Package conversion converts values between units.
//
// Units with equal dimensions whose roots are all proportional convert by a
// scale factor derived from their prefixes and roots. Everything else, most
// notably offset temperature scales, converts only through an affine
// transform registered in a Table. Conversion is never implicit: the
// quantity package calls into this package only from ConvertTo.
package conversion

import (
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dimensional/core/dimension"
	"dimensional/core/naming"
	"dimensional/internal/errors"
	"dimensional/internal/logging"
)

// Affine maps v to v*Scale + Offset
type Affine struct {
	Scale  decimal.Decimal
	Offset decimal.Decimal
}

// Identity leaves values unchanged
var Identity = Affine{Scale: decimal.NewFromInt(1)}

// Linear returns a pure scale transform
func Linear(scale decimal.Decimal) Affine {
	return Affine{Scale: scale}
}

// Apply transforms v
func (a Affine) Apply(v decimal.Decimal) decimal.Decimal {
	return v.Mul(a.Scale).Add(a.Offset)
}

// Inverse returns the transform undoing a. Scale must be nonzero.
func (a Affine) Inverse() Affine {
	inv := decimal.NewFromInt(1).Div(a.Scale)
	return Affine{Scale: inv, Offset: a.Offset.Neg().Mul(inv)}
}

// Then returns the transform applying a first and b second
func (a Affine) Then(b Affine) Affine {
	return Affine{
		Scale:  a.Scale.Mul(b.Scale),
		Offset: a.Offset.Mul(b.Scale).Add(b.Offset),
	}
}

// IsIdentity reports whether a leaves values unchanged
func (a Affine) IsIdentity() bool {
	return a.Scale.Equal(decimal.NewFromInt(1)) && a.Offset.IsZero()
}

type edge struct {
	from      dimension.Unit
	to        dimension.Unit
	transform Affine
}

// Table holds registered affine transforms. It is filled during start-up,
// sealed, and read concurrently afterwards.
type Table struct {
	mu     sync.RWMutex
	edges  map[string]map[string]edge
	sealed bool
	logger *zap.Logger
}

// NewTable creates an empty, unsealed table
func NewTable() *Table {
	return &Table{
		edges:  make(map[string]map[string]edge),
		logger: logging.Named("conversion"),
	}
}

// Register adds from→to and its inverse
func (t *Table) Register(from, to dimension.Unit, transform Affine) error {
	if transform.Scale.IsZero() {
		return errors.Newf(errors.TypeInput, "transform %s -> %s has zero scale",
			naming.ShortName(from), naming.ShortName(to))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed {
		return errors.Newf(errors.TypeInternal, "conversion table is sealed; cannot register %s -> %s",
			naming.ShortName(from), naming.ShortName(to))
	}

	t.put(from, to, transform)
	t.put(to, from, transform.Inverse())

	t.logger.Debug("registered conversion",
		zap.String("from", naming.ShortName(from)),
		zap.String("to", naming.ShortName(to)),
		zap.String("scale", transform.Scale.String()),
		zap.String("offset", transform.Offset.String()))
	return nil
}

func (t *Table) put(from, to dimension.Unit, transform Affine) {
	row, ok := t.edges[from.Key()]
	if !ok {
		row = make(map[string]edge)
		t.edges[from.Key()] = row
	}
	row[to.Key()] = edge{from: from, to: to, transform: transform}
}

// Seal makes the table read-only
func (t *Table) Seal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sealed = true
}

// Sealed reports whether Seal has been called
func (t *Table) Sealed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sealed
}

// Len returns the number of registered directed transforms
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, row := range t.edges {
		n += len(row)
	}
	return n
}

// Lookup returns the transform registered for exactly from→to
func (t *Table) Lookup(from, to dimension.Unit) (Affine, bool) {
	if t == nil {
		return Affine{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.edges[from.Key()][to.Key()]
	return e.transform, ok
}

// Resolve finds the transform from→to. In order it tries: identical units,
// a registered transform, a proportional scale factor, and a registered
// transform joined on either side by a proportional factor (°C → mK).
func (t *Table) Resolve(from, to dimension.Unit) (Affine, error) {
	if dimension.Identical(from, to) {
		return Identity, nil
	}
	if a, ok := t.Lookup(from, to); ok {
		return a, nil
	}
	if factor, err := Factor(from, to); err == nil {
		return Linear(factor), nil
	}
	if a, ok := t.bridge(from, to); ok {
		return a, nil
	}
	return Affine{}, errors.MissingConversion(naming.ShortName(from), naming.ShortName(to))
}

func (t *Table) bridge(from, to dimension.Unit) (Affine, bool) {
	if t == nil {
		return Affine{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	// registered edge out of from, then a factor to the target
	row := t.edges[from.Key()]
	for _, key := range slices.Sorted(maps.Keys(row)) {
		e := row[key]
		if factor, err := Factor(e.to, to); err == nil {
			return e.transform.Then(Linear(factor)), true
		}
	}

	// a factor into some registered source, then its edge to the target
	for _, src := range slices.Sorted(maps.Keys(t.edges)) {
		e, ok := t.edges[src][to.Key()]
		if !ok {
			continue
		}
		if factor, err := Factor(from, e.from); err == nil {
			return Linear(factor).Then(e.transform), true
		}
	}
	return Affine{}, false
}

// factorPrecision is the number of decimal places kept by the single
// division that closes Factor
const factorPrecision = 32

// Factor returns the proportional scale from→to. Both units must have equal
// dimensions and every slot whose concrete unit differs must be
// proportional (not affine).
func Factor(from, to dimension.Unit) (decimal.Decimal, error) {
	if !dimension.Equal(from, to) {
		return decimal.Zero, errors.MissingConversion(naming.ShortName(from), naming.ShortName(to))
	}

	// integer powers accumulate exactly; only the final division rounds
	num, den := decimal.NewFromInt(1), decimal.NewFromInt(1)
	fromSlots, toSlots := from.Slots(), to.Slots()
	for i := range fromSlots {
		l, r := fromSlots[i], toSlots[i]
		if l.IsZero() || l.Unit.Same(r.Unit) {
			continue
		}
		if l.Unit.Affine() || r.Unit.Affine() {
			return decimal.Zero, errors.MissingConversion(naming.ShortName(from), naming.ShortName(to)).
				WithContext("affine", dimension.BaseDimension(i).String())
		}

		upper, lower := l.Unit.Scale(), r.Unit.Scale()
		if l.Exp.Sign() < 0 {
			upper, lower = lower, upper
		}
		n := l.Exp.Num()
		if n < 0 {
			n = -n
		}

		if !l.Exp.IsInteger() {
			ratio := upper.DivRound(lower, factorPrecision).InexactFloat64()
			num = num.Mul(decimal.NewFromFloat(math.Pow(ratio, float64(n)/float64(l.Exp.Den()))))
			continue
		}
		num = num.Mul(pow(upper, n))
		den = den.Mul(pow(lower, n))
	}
	return num.DivRound(den, factorPrecision), nil
}

// pow returns d^n for n >= 0
func pow(d decimal.Decimal, n int32) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for ; n > 0; n-- {
		result = result.Mul(d)
	}
	return result
}
