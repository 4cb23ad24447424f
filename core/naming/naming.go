// Package naming renders units as text.
//
// Nonzero slots are split into a numerator (positive exponents) and a
// denominator (negative exponents, shown with the sign flipped) and laid
// out as "a⋅b", "1/a", "a/b", "a/(b⋅c)", "(a⋅b)/c" or "(a⋅b)/(c⋅d)".
package naming

import (
	"strconv"
	"strings"

	"dimensional/core/dimension"
	"dimensional/core/exponent"
)

// DefaultProduct joins terms in both the numerator and the denominator
const DefaultProduct = "⋅"

// Options control rendering
type Options struct {
	// Long uses spelled names (meter) instead of symbols (m)
	Long bool

	// Product joins terms; empty means DefaultProduct
	Product string

	// ASCII writes integer exponents as ^n instead of superscript digits
	ASCII bool
}

// ShortName renders u with unit symbols: "m/s", "kg⋅m²/s²"
func ShortName(u dimension.Unit) string {
	return Render(u, Options{})
}

// FullName renders u with spelled names: "meter/second"
func FullName(u dimension.Unit) string {
	return Render(u, Options{Long: true})
}

// Render lays u out according to opts
func Render(u dimension.Unit, opts Options) string {
	product := opts.Product
	if product == "" {
		product = DefaultProduct
	}

	var numerator, denominator []string
	for _, slot := range u.Slots() {
		switch slot.Exp.Sign() {
		case 1:
			numerator = append(numerator, term(slot.Unit, slot.Exp, opts))
		case -1:
			denominator = append(denominator, term(slot.Unit, exponent.Negate(slot.Exp), opts))
		}
	}

	num := strings.Join(numerator, product)
	den := strings.Join(denominator, product)

	switch n, d := len(numerator), len(denominator); {
	case n == 0 && d == 0:
		return ""
	case d == 0:
		return num
	case n == 0:
		return "1/" + den
	case n == 1 && d == 1:
		return num + "/" + den
	case n == 1:
		return num + "/(" + den + ")"
	case d == 1:
		return "(" + num + ")/" + den
	default:
		return "(" + num + ")/(" + den + ")"
	}
}

func term(base dimension.BaseUnit, exp exponent.Exponent, opts Options) string {
	name := base.ShortName()
	if opts.Long {
		name = base.LongName()
	}
	if exp == exponent.One {
		return name
	}
	return name + Exponent(exp, opts.ASCII)
}

// Exponent formats an exponent suffix: "²", "^2" in ASCII mode, and
// "^(1/2)" for fractions in either mode.
func Exponent(exp exponent.Exponent, ascii bool) string {
	if !exp.IsInteger() {
		return "^(" + exp.String() + ")"
	}
	if ascii {
		return "^" + exp.String()
	}
	return Superscript(int64(exp.Num()))
}

var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// Superscript writes n with Unicode superscript digits
func Superscript(n int64) string {
	var b strings.Builder
	for _, c := range strconv.FormatInt(n, 10) {
		if c == '-' {
			b.WriteRune('⁻')
			continue
		}
		b.WriteRune(superscriptDigits[c-'0'])
	}
	return b.String()
}

// ParseSuperscript reverses Superscript; ok is false if s holds anything else
func ParseSuperscript(s string) (n int64, ok bool) {
	var b strings.Builder
	for _, c := range s {
		if c == '⁻' {
			b.WriteByte('-')
			continue
		}
		digit := -1
		for i, d := range superscriptDigits {
			if c == d {
				digit = i
				break
			}
		}
		if digit < 0 {
			return 0, false
		}
		b.WriteByte(byte('0' + digit))
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	return n, err == nil
}
