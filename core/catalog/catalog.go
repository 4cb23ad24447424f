// Package catalog - Read-only registry of named prefixes and roots
// The built-in catalog is parsed once from an embedded HCL file; callers may
// merge further HCL files before the catalog is first used.
package catalog

import (
	_ "embed"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"dimensional/core/conversion"
	"dimensional/core/dimension"
	"dimensional/internal/errors"
)

//go:embed units.hcl
var builtin []byte

// BuiltinFilename names the embedded catalog in diagnostics
const BuiltinFilename = "units.hcl"

// Conversion is a registered affine transform between two catalog symbols
type Conversion struct {
	From   string
	To     string
	Scale  decimal.Decimal
	Offset decimal.Decimal
}

// Catalog is a registry of prefixes, roots and conversions
type Catalog struct {
	prefixes    map[string]*dimension.Prefix
	roots       map[string]*dimension.Root
	prefixList  []*dimension.Prefix
	rootList    []*dimension.Root
	conversions []Conversion
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		prefixes: make(map[string]*dimension.Prefix),
		roots:    make(map[string]*dimension.Root),
	}
}

// AddPrefix registers p under its short and long names plus aliases
func (c *Catalog) AddPrefix(p *dimension.Prefix, aliases ...string) error {
	names := append([]string{p.Short, p.Long}, aliases...)
	for _, name := range names {
		if _, exists := c.prefixes[name]; exists {
			return errors.Newf(errors.TypeInput, "duplicate prefix name %q", name)
		}
	}
	for _, name := range names {
		c.prefixes[name] = p
	}
	c.prefixList = append(c.prefixList, p)
	return nil
}

// AddRoot registers r under its short and long names plus aliases
func (c *Catalog) AddRoot(r *dimension.Root, aliases ...string) error {
	names := append([]string{r.Short, r.Long}, aliases...)
	for _, name := range names {
		if _, exists := c.roots[name]; exists {
			return errors.Newf(errors.TypeInput, "duplicate root name %q", name)
		}
	}
	for _, name := range names {
		c.roots[name] = r
	}
	c.rootList = append(c.rootList, r)
	return nil
}

// AddConversion records an affine transform between two symbols
func (c *Catalog) AddConversion(conv Conversion) {
	c.conversions = append(c.conversions, conv)
}

// Prefix returns the prefix with the given short name, long name or alias
func (c *Catalog) Prefix(name string) (*dimension.Prefix, bool) {
	p, ok := c.prefixes[name]
	return p, ok
}

// Root returns the root with the given short name, long name or alias
func (c *Catalog) Root(name string) (*dimension.Root, bool) {
	r, ok := c.roots[name]
	return r, ok
}

// Prefixes returns all prefixes ordered by base then exponent
func (c *Catalog) Prefixes() []*dimension.Prefix {
	out := slices.Clone(c.prefixList)
	slices.SortStableFunc(out, func(a, b *dimension.Prefix) int {
		if a.Base != b.Base {
			return a.Base - b.Base
		}
		return a.Exp - b.Exp
	})
	return out
}

// Roots returns all roots ordered by dimension then long name
func (c *Catalog) Roots() []*dimension.Root {
	out := slices.Clone(c.rootList)
	slices.SortStableFunc(out, func(a, b *dimension.Root) int {
		if a.Dimension != b.Dimension {
			return int(a.Dimension) - int(b.Dimension)
		}
		return strings.Compare(a.Long, b.Long)
	})
	return out
}

// RootsOf returns the roots of one base dimension
func (c *Catalog) RootsOf(d dimension.BaseDimension) []*dimension.Root {
	var out []*dimension.Root
	for _, r := range c.Roots() {
		if r.Dimension == d {
			out = append(out, r)
		}
	}
	return out
}

// Conversions returns the registered conversions in file order
func (c *Catalog) Conversions() []Conversion {
	return slices.Clone(c.conversions)
}

// Lookup resolves a symbol or spelled name ("km", "kilometer", "μs", "°C")
// to a base unit. An exact root match wins over a prefixed reading, and
// longer root names are tried before shorter ones.
func (c *Catalog) Lookup(name string) (dimension.BaseUnit, error) {
	name = strings.TrimSpace(name)
	if r, ok := c.roots[name]; ok {
		return dimension.Of(r), nil
	}

	rootNames := make([]string, 0, len(c.roots))
	for n := range c.roots {
		rootNames = append(rootNames, n)
	}
	slices.SortFunc(rootNames, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})

	for _, rootName := range rootNames {
		prefixName, found := strings.CutSuffix(name, rootName)
		if !found || prefixName == "" {
			continue
		}
		if p, ok := c.prefixes[prefixName]; ok {
			return dimension.Prefixed(p, c.roots[rootName]), nil
		}
	}
	return dimension.BaseUnit{}, errors.NotFound("unit", name)
}

// Unit resolves name to the unit name^1
func (c *Catalog) Unit(name string) (dimension.Unit, error) {
	base, err := c.Lookup(name)
	if err != nil {
		return dimension.Dimensionless, err
	}
	return dimension.Base(base), nil
}

// MustUnit is Unit that panics on error
func (c *Catalog) MustUnit(name string) dimension.Unit {
	u, err := c.Unit(name)
	if err != nil {
		panic(err)
	}
	return u
}

// Table builds a sealed conversion table from the catalog's conversions
func (c *Catalog) Table() (*conversion.Table, error) {
	table := conversion.NewTable()
	for _, conv := range c.conversions {
		from, err := c.Unit(conv.From)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "conversion %s -> %s", conv.From, conv.To)
		}
		to, err := c.Unit(conv.To)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "conversion %s -> %s", conv.From, conv.To)
		}
		if err := table.Register(from, to, conversion.Affine{Scale: conv.Scale, Offset: conv.Offset}); err != nil {
			return nil, err
		}
	}
	table.Seal()
	return table, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultTable   *conversion.Table
)

// Default returns the built-in catalog and its sealed conversion table.
// It is built on first use and never mutated afterwards.
func Default() *Catalog {
	initDefault()
	return defaultCatalog
}

// DefaultTable returns the sealed conversion table of the built-in catalog
func DefaultTable() *conversion.Table {
	initDefault()
	return defaultTable
}

func initDefault() {
	defaultOnce.Do(func() {
		c, err := Load(builtin, BuiltinFilename)
		if err != nil {
			panic(err)
		}
		c.MustValidate()
		table, err := c.Table()
		if err != nil {
			panic(err)
		}
		defaultCatalog, defaultTable = c, table
	})
}
