// Package numeric supplies the value arithmetic wrapped by quantities.
//
// An Arithmetic is a stateless strategy type: quantities carry it as a type
// parameter and call it through its zero value, so it costs nothing at
// runtime.
package numeric

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Arithmetic provides + - * / and comparison for V
type Arithmetic[V any] interface {
	Add(a, b V) V
	Sub(a, b V) V
	Mul(a, b V) V
	Div(a, b V) V
	Cmp(a, b V) int
	FromDecimal(d decimal.Decimal) V
	ToDecimal(v V) decimal.Decimal
	// Finite reports whether ToDecimal can represent v
	Finite(v V) bool
	Format(v V) string
}

// Integer is any Go integer type
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is any Go float type
type Float interface {
	~float32 | ~float64
}

// Number is any Go integer or float type
type Number interface {
	Integer | Float
}

// Native is the arithmetic of Go's built-in numeric types
type Native[T Number] struct{}

func (Native[T]) Add(a, b T) T { return a + b }
func (Native[T]) Sub(a, b T) T { return a - b }
func (Native[T]) Mul(a, b T) T { return a * b }
func (Native[T]) Div(a, b T) T { return a / b }

func (Native[T]) Cmp(a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FromDecimal converts d to T. Integer targets truncate toward zero.
func (Native[T]) FromDecimal(d decimal.Decimal) T {
	if isFloat[T]() {
		return T(d.InexactFloat64())
	}
	if d.IsNegative() {
		return T(d.Truncate(0).IntPart())
	}
	return T(d.Truncate(0).BigInt().Uint64())
}

func (Native[T]) ToDecimal(v T) decimal.Decimal {
	if isFloat[T]() {
		return decimal.NewFromFloat(float64(v))
	}
	if v < 0 {
		return decimal.NewFromInt(int64(v))
	}
	return decimal.NewFromUint64(uint64(v))
}

func (Native[T]) Finite(v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isFloat reports whether T keeps a fractional part
func isFloat[T Number]() bool {
	half := 0.5
	return T(half) != 0
}

func (Native[T]) Format(v T) string {
	return fmt.Sprint(v)
}

// Decimal is arbitrary-precision decimal arithmetic. Division rounds to
// decimal.DivisionPrecision places.
type Decimal struct{}

func (Decimal) Add(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }
func (Decimal) Sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }
func (Decimal) Mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) }
func (Decimal) Div(a, b decimal.Decimal) decimal.Decimal { return a.Div(b) }
func (Decimal) Cmp(a, b decimal.Decimal) int             { return a.Cmp(b) }

func (Decimal) FromDecimal(d decimal.Decimal) decimal.Decimal { return d }
func (Decimal) ToDecimal(v decimal.Decimal) decimal.Decimal   { return v }
func (Decimal) Finite(decimal.Decimal) bool                   { return true }
func (Decimal) Format(v decimal.Decimal) string               { return v.String() }

var (
	_ Arithmetic[float64]         = Native[float64]{}
	_ Arithmetic[int64]           = Native[int64]{}
	_ Arithmetic[uint8]           = Native[uint8]{}
	_ Arithmetic[decimal.Decimal] = Decimal{}
)
