// Package parse reads unit expressions such as "km/h", "kg⋅m²/s²" or
// "m^(1/2)" into units.
//
// Grammar:
//
//	expr     := product ('/' product)*
//	product  := term (('*' | '⋅' | '·') term)*
//	term     := ('(' expr ')' | name | '1') [exponent]
//	exponent := superscript | '^' int | '^' '(' int '/' int ')'
//
// Products bind tighter than division, so "1/s⋅A" is 1/(s⋅A) and "m/s/s" is
// m/s². Names are resolved through a catalog. Anything naming.ShortName
// produces parses back to an identical unit.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"dimensional/core/catalog"
	"dimensional/core/dimension"
	"dimensional/core/exponent"
	"dimensional/core/naming"
	"dimensional/internal/errors"
)

// Parser resolves unit names through a catalog
type Parser struct {
	catalog *catalog.Catalog
}

// New creates a parser over c; nil means the built-in catalog
func New(c *catalog.Catalog) *Parser {
	if c == nil {
		c = catalog.Default()
	}
	return &Parser{catalog: c}
}

// Parse reads expr using the built-in catalog
func Parse(expr string) (dimension.Unit, error) {
	return New(nil).Parse(expr)
}

// MustParse is Parse that panics on error
func MustParse(expr string) dimension.Unit {
	u, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return u
}

// Parse reads expr into a unit. Exponents that leave the int32 range come
// back as a PARSING_ERROR wrapping the EXPONENT_OVERFLOW.
func (p *Parser) Parse(expr string) (u dimension.Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			overflow, ok := r.(*errors.Error)
			if !ok || overflow.Type != errors.TypeExponentOverflow {
				panic(r)
			}
			u, err = dimension.Dimensionless, errors.Wrapf(errors.TypeParsing, overflow, "unit %q", expr)
		}
	}()

	s := &scanner{src: []rune(expr), catalog: p.catalog, source: expr}
	s.skipSpace()
	if s.eof() {
		return dimension.Dimensionless, s.errorf("empty unit expression")
	}

	if u, err = s.expr(); err != nil {
		return dimension.Dimensionless, err
	}
	s.skipSpace()
	if !s.eof() {
		return dimension.Dimensionless, s.errorf("unexpected %q", s.peek())
	}
	return u, nil
}

type scanner struct {
	src     []rune
	pos     int
	catalog *catalog.Catalog
	source  string
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) errorf(format string, args ...interface{}) *errors.Error {
	return errors.Newf(errors.TypeParsing, "unit %q at %d: %s", s.source, s.pos, fmt.Sprintf(format, args...)).
		WithContext("position", s.pos)
}

func (s *scanner) expr() (dimension.Unit, error) {
	left, err := s.product()
	if err != nil {
		return dimension.Dimensionless, err
	}

	for {
		s.skipSpace()
		if s.peek() != '/' {
			return left, nil
		}
		s.pos++
		s.skipSpace()

		right, err := s.product()
		if err != nil {
			return dimension.Dimensionless, err
		}
		if left, err = dimension.Divide(left, right); err != nil {
			return dimension.Dimensionless, err
		}
	}
}

func (s *scanner) product() (dimension.Unit, error) {
	left, err := s.term()
	if err != nil {
		return dimension.Dimensionless, err
	}

	for {
		s.skipSpace()
		if !isProduct(s.peek()) {
			return left, nil
		}
		s.pos++
		s.skipSpace()

		right, err := s.term()
		if err != nil {
			return dimension.Dimensionless, err
		}
		if left, err = dimension.Multiply(left, right); err != nil {
			return dimension.Dimensionless, err
		}
	}
}

func (s *scanner) term() (dimension.Unit, error) {
	var u dimension.Unit

	switch r := s.peek(); {
	case s.eof():
		return dimension.Dimensionless, s.errorf("expected unit")
	case r == '(':
		s.pos++
		s.skipSpace()
		inner, err := s.expr()
		if err != nil {
			return dimension.Dimensionless, err
		}
		s.skipSpace()
		if s.peek() != ')' {
			return dimension.Dimensionless, s.errorf("expected )")
		}
		s.pos++
		u = inner
	default:
		name := s.name()
		if name == "" {
			return dimension.Dimensionless, s.errorf("unexpected %q", r)
		}
		if name == "1" {
			u = dimension.Dimensionless
			break
		}
		resolved, err := s.catalog.Unit(name)
		if err != nil {
			return dimension.Dimensionless, errors.Wrapf(errors.TypeParsing, err, "unit %q", s.source).
				WithContext("name", name)
		}
		u = resolved
	}

	exp, ok, err := s.exponent()
	if err != nil {
		return dimension.Dimensionless, err
	}
	if ok {
		u = dimension.Pow(u, exp)
	}
	return u, nil
}

// name reads a maximal run of characters that are not syntax
func (s *scanner) name() string {
	start := s.pos
	for !s.eof() && !isSyntax(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) exponent() (exponent.Exponent, bool, error) {
	if isSuperscript(s.peek()) {
		start := s.pos
		for !s.eof() && isSuperscript(s.src[s.pos]) {
			s.pos++
		}
		n, ok := naming.ParseSuperscript(string(s.src[start:s.pos]))
		if !ok {
			return exponent.Zero, false, s.errorf("invalid superscript exponent")
		}
		return s.parseExponent(strconv.FormatInt(n, 10))
	}

	if s.peek() != '^' {
		return exponent.Zero, false, nil
	}
	s.pos++

	if s.peek() == '(' {
		start := s.pos
		for !s.eof() && s.src[s.pos] != ')' {
			s.pos++
		}
		if s.eof() {
			return exponent.Zero, false, s.errorf("unterminated exponent")
		}
		s.pos++
		return s.parseExponent(string(s.src[start:s.pos]))
	}

	start := s.pos
	if s.peek() == '-' || s.peek() == '+' {
		s.pos++
	}
	for !s.eof() && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	return s.parseExponent(string(s.src[start:s.pos]))
}

func (s *scanner) parseExponent(text string) (exponent.Exponent, bool, error) {
	exp, err := exponent.Parse(text)
	if err != nil {
		return exponent.Zero, false, errors.Wrapf(errors.TypeParsing, err, "unit %q", s.source).
			WithContext("position", s.pos)
	}
	return exp, true, nil
}

func isProduct(r rune) bool {
	return r == '*' || r == '⋅' || r == '·'
}

func isSuperscript(r rune) bool {
	return r == '⁻' || strings.ContainsRune("⁰¹²³⁴⁵⁶⁷⁸⁹", r)
}

func isSyntax(r rune) bool {
	return isProduct(r) || r == '/' || isSuperscript(r) || unicode.IsSpace(r) ||
		r == '(' || r == ')' || r == '^'
}
