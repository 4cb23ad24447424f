package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimensional/core/dimension"
	"dimensional/internal/errors"
)

func TestDefaultCatalogValidates(t *testing.T) {
	c := Default()
	assert.Empty(t, c.Validate())
	assert.Len(t, c.Prefixes(), 28)
	assert.NotEmpty(t, c.Roots())
	assert.Len(t, c.Conversions(), 3)
}

func TestLookup(t *testing.T) {
	c := Default()

	tests := []struct {
		name      string
		short     string
		long      string
		dimension dimension.BaseDimension
	}{
		{"m", "m", "meter", dimension.Length},
		{"metre", "m", "meter", dimension.Length},
		{"km", "km", "kilometer", dimension.Length},
		{"kilometer", "km", "kilometer", dimension.Length},
		{"mm", "mm", "millimeter", dimension.Length},
		{"kg", "kg", "kilogram", dimension.Mass},
		{"μs", "μs", "microsecond", dimension.Time},
		{"us", "μs", "microsecond", dimension.Time},
		{"ms", "ms", "millisecond", dimension.Time},
		{"min", "min", "minute", dimension.Time},
		{"mi", "mi", "mile", dimension.Length},
		{"cd", "cd", "candela", dimension.LuminousIntensity},
		{"d", "d", "day", dimension.Time},
		{"dam", "dam", "decameter", dimension.Length},
		{"°C", "°C", "degree Celsius", dimension.Temperature},
		{"degF", "°F", "degree Fahrenheit", dimension.Temperature},
		{"mol", "mol", "mole", dimension.AmountOfSubstance},
		{"kmol", "kmol", "kilomole", dimension.AmountOfSubstance},
		{"GA", "GA", "gigaampere", dimension.Current},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := c.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.short, u.ShortName())
			assert.Equal(t, tt.long, u.LongName())
			assert.Equal(t, tt.dimension, u.Dimension())
		})
	}

	for _, bad := range []string{"", "xyz", "kk", "qm"} {
		_, err := c.Lookup(bad)
		assert.True(t, errors.IsType(err, errors.TypeNotFound), "Lookup(%q)", bad)
	}
}

func TestScales(t *testing.T) {
	c := Default()

	kg, err := c.Lookup("kg")
	require.NoError(t, err)
	assert.True(t, kg.Scale().Equal(decimal.NewFromInt(1)), "kg scale %s", kg.Scale())

	ft, err := c.Lookup("ft")
	require.NoError(t, err)
	assert.True(t, ft.Scale().Equal(decimal.RequireFromString("0.3048")))

	au, err := c.Lookup("AU")
	require.NoError(t, err)
	assert.True(t, au.Scale().Equal(decimal.NewFromInt(149597870700)))

	kib, ok := c.Prefix("Ki")
	require.True(t, ok)
	assert.True(t, kib.Scale().Equal(decimal.NewFromInt(1024)))
}

func TestOrdering(t *testing.T) {
	c := Default()

	prefixes := c.Prefixes()
	assert.Equal(t, "y", prefixes[0].Short)
	assert.Equal(t, "Y", prefixes[19].Short)
	assert.Equal(t, "Ki", prefixes[20].Short)
	assert.Equal(t, "Yi", prefixes[27].Short)

	roots := c.Roots()
	for i := 1; i < len(roots); i++ {
		assert.LessOrEqual(t, roots[i-1].Dimension, roots[i].Dimension)
	}

	temps := c.RootsOf(dimension.Temperature)
	require.Len(t, temps, 3)
	assert.Equal(t, "degree Celsius", temps[0].Long)
}

func TestTable(t *testing.T) {
	table := DefaultTable()
	assert.True(t, table.Sealed())
	assert.Equal(t, 6, table.Len())

	a, ok := table.Lookup(Default().MustUnit("°C"), Default().MustUnit("K"))
	require.True(t, ok)
	assert.True(t, a.Apply(decimal.Zero).Equal(decimal.RequireFromString("273.15")))
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
		typ  errors.Type
	}{
		{"syntax", `root "meter" {`, errors.TypeParsing},
		{"missing attribute", `root "meter" { short = "m" }`, errors.TypeParsing},
		{"unknown block", `unit "meter" {}`, errors.TypeParsing},
		{"unknown dimension", `root "radian" {
  short     = "rad"
  dimension = "angle"
}`, errors.TypeNotFound},
		{"bad scale", `root "foot" {
  short     = "ft"
  dimension = "length"
  scale     = "a/b"
}`, errors.TypeParsing},
		{"zero scale", `root "foot" {
  short     = "ft"
  dimension = "length"
  scale     = 0
}`, errors.TypeInput},
		{"zero ratio scale", `root "foot" {
  short     = "ft"
  dimension = "length"
  scale     = "0/9"
}`, errors.TypeInput},
		{"negative scale", `root "foot" {
  short     = "ft"
  dimension = "length"
  scale     = "-0.3048"
}`, errors.TypeInput},
		{"duplicate", `root "meter" {
  short     = "m"
  dimension = "length"
}
root "micron" {
  short     = "m"
  dimension = "length"
}`, errors.TypeInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.typ), "got %v", err)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
root "nautical mile" {
  short     = "nmi"
  dimension = "length"
  scale     = 1852
}
root "degree Rankine" {
  short     = "°R"
  dimension = "temperature"
  scale     = "5/9"
}
conversion "°R" "°F" {
  offset = "-459.67"
}
`), 0644))

	c, err := LoadFiles(path)
	require.NoError(t, err)

	nmi, err := c.Lookup("nmi")
	require.NoError(t, err)
	assert.True(t, nmi.Scale().Equal(decimal.NewFromInt(1852)))
	assert.Len(t, c.Conversions(), 4)

	_, err = LoadFiles(filepath.Join(dir, "missing.hcl"))
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestLoadFilesValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
conversion "furlong" "m" {
  scale = "201.168"
}
`), 0644))

	_, err := LoadFiles(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestParseRatio(t *testing.T) {
	d, err := ParseRatio("5/9")
	require.NoError(t, err)
	assert.True(t, d.Mul(decimal.NewFromInt(9)).Round(10).Equal(decimal.NewFromInt(5)))

	d, err = ParseRatio(" -160 / 9 ")
	require.NoError(t, err)
	assert.True(t, d.IsNegative())

	_, err = ParseRatio("1/0")
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestFingerprint(t *testing.T) {
	a, err := Load(builtin, BuiltinFilename)
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), a.Fingerprint())
	assert.Len(t, a.Fingerprint().String(), 16)

	require.NoError(t, a.Merge([]byte(`
root "furlong" {
  short     = "fur"
  dimension = "length"
  scale     = "201.168"
}
`), "extra.hcl"))
	assert.NotEqual(t, Default().Fingerprint(), a.Fingerprint())
}

func TestFingerprintIgnoresSourceOrder(t *testing.T) {
	roots := `
root "kelvin" {
  short     = "K"
  dimension = "temperature"
}
root "degree Celsius" {
  short     = "°C"
  dimension = "temperature"
  affine    = true
}
root "degree Fahrenheit" {
  short     = "°F"
  dimension = "temperature"
  scale     = "5/9"
  affine    = true
}
`
	celsius := `
conversion "°C" "K" {
  offset = "273.15"
}
`
	fahrenheit := `
conversion "°F" "°C" {
  scale  = "5/9"
  offset = "-160/9"
}
`

	a, err := Load([]byte(roots+celsius+fahrenheit), "a.hcl")
	require.NoError(t, err)
	b, err := Load([]byte(roots+fahrenheit+celsius), "b.hcl")
	require.NoError(t, err)

	assert.NotEqual(t, a.Conversions(), b.Conversions())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
