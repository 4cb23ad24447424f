// Package exponent implements the rational exponents carried by each
// dimension slot of a unit.
//
// An Exponent is always stored reduced to lowest terms with the sign on the
// numerator. Integer exponents are the denominator 1 case. The numerator is
// bounded to ±MaxInt32, so every exponent can be negated, and the
// denominator to MaxInt32. Leaving that range is a programming error and
// panics with an EXPONENT_OVERFLOW error value.
package exponent

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dimensional/internal/errors"
)

// Exponent is a reduced rational number. The zero value is 0.
type Exponent struct {
	num int32
	// den minus one, so the zero value is 0/1 and == compares reduced values
	denMinusOne int32
}

var (
	// Zero is the exponent of an absent dimension
	Zero = Exponent{}

	// One is the exponent of a plain base unit
	One = Int(1)

	// MinusOne is the exponent of a reciprocal base unit
	MinusOne = Int(-1)
)

// Int returns the integer exponent n
func Int(n int32) Exponent {
	return Exponent{num: n}
}

// New returns n/d reduced. A zero denominator panics.
func New(n, d int64) Exponent {
	if d == 0 {
		panic(errors.ExponentOverflow("exponent %d/0 has a zero denominator", n))
	}
	return reduce(n, d)
}

// Num returns the numerator
func (e Exponent) Num() int32 {
	return e.num
}

// Den returns the denominator, always >= 1
func (e Exponent) Den() int32 {
	return e.denMinusOne + 1
}

// IsZero reports whether e == 0
func (e Exponent) IsZero() bool {
	return e.num == 0
}

// IsInteger reports whether the denominator is 1
func (e Exponent) IsInteger() bool {
	return e.denMinusOne == 0
}

// Sign returns -1, 0 or +1
func (e Exponent) Sign() int {
	switch {
	case e.num < 0:
		return -1
	case e.num > 0:
		return 1
	}
	return 0
}

// Add returns e1 + e2
func Add(e1, e2 Exponent) Exponent {
	if e1.IsInteger() && e2.IsInteger() {
		return reduce(int64(e1.num)+int64(e2.num), 1)
	}

	d1, d2 := int64(e1.Den()), int64(e2.Den())
	lcm := abs(d1*d2) / gcd(d1, d2)
	n := int64(e1.num)*(lcm/d1) + int64(e2.num)*(lcm/d2)
	return reduce(n, lcm)
}

// Negate returns -e
func Negate(e Exponent) Exponent {
	if e.num == math.MinInt32 {
		panic(errors.ExponentOverflow("cannot negate %s", e))
	}
	return Exponent{num: -e.num, denMinusOne: e.denMinusOne}
}

// Sub returns e1 - e2
func Sub(e1, e2 Exponent) Exponent {
	return Add(e1, Negate(e2))
}

// Mul returns e1 * e2
func Mul(e1, e2 Exponent) Exponent {
	return reduce(int64(e1.num)*int64(e2.num), int64(e1.Den())*int64(e2.Den()))
}

// Abs returns |e|
func Abs(e Exponent) Exponent {
	if e.num < 0 {
		return Negate(e)
	}
	return e
}

// Cmp compares e1 and e2, returning -1, 0 or +1
func Cmp(e1, e2 Exponent) int {
	l := int64(e1.num) * int64(e2.Den())
	r := int64(e2.num) * int64(e1.Den())
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// Float64 returns e as a float
func (e Exponent) Float64() float64 {
	return float64(e.num) / float64(e.Den())
}

// String formats integers as "n" and fractions as "n/d"
func (e Exponent) String() string {
	if e.IsInteger() {
		return strconv.FormatInt(int64(e.num), 10)
	}
	return fmt.Sprintf("%d/%d", e.num, e.Den())
}

// Parse reads "n", "n/d" or "(n/d)"
func Parse(s string) (Exponent, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	numStr, denStr, isFrac := strings.Cut(s, "/")
	n, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 32)
	if err != nil {
		return Zero, errors.Parsing(fmt.Sprintf("invalid exponent %q", s), err)
	}
	d := int64(1)
	if isFrac {
		if d, err = strconv.ParseInt(strings.TrimSpace(denStr), 10, 32); err != nil {
			return Zero, errors.Parsing(fmt.Sprintf("invalid exponent %q", s), err)
		}
	}

	switch {
	case d == 0:
		return Zero, errors.Newf(errors.TypeParsing, "invalid exponent %q: zero denominator", s)
	case n == math.MinInt32 || d == math.MinInt32:
		return Zero, errors.Newf(errors.TypeParsing, "invalid exponent %q: out of range", s).
			WithContext("min", -math.MaxInt32)
	}
	return reduce(n, d), nil
}

// MustParse is Parse that panics on error
func MustParse(s string) Exponent {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func reduce(n, d int64) Exponent {
	if n == 0 {
		return Zero
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(n, d)
	n, d = n/g, d/g
	if n < -math.MaxInt32 || n > math.MaxInt32 || d > math.MaxInt32 {
		panic(errors.ExponentOverflow("exponent %d/%d exceeds int32 range", n, d))
	}
	return Exponent{num: int32(n), denMinusOne: int32(d - 1)}
}

func gcd(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
