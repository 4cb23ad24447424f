package quantity

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimensional/core/catalog"
	"dimensional/core/conversion"
	"dimensional/core/dimension"
	"dimensional/core/exponent"
	"dimensional/core/naming"
	"dimensional/internal/errors"
)

var (
	cat = catalog.Default()

	m    = cat.MustUnit("m")
	km   = cat.MustUnit("km")
	ft   = cat.MustUnit("ft")
	s    = cat.MustUnit("s")
	h    = cat.MustUnit("h")
	K    = cat.MustUnit("K")
	degC = cat.MustUnit("°C")
	degF = cat.MustUnit("°F")
	mps  = dimension.MustDivide(m, s)
)

func TestMulDiv(t *testing.T) {
	speed := NewFloat64(10, mps)
	duration := NewFloat64(3, s)

	distance, err := speed.Mul(duration)
	require.NoError(t, err)
	assert.Equal(t, 30.0, distance.Value())
	assert.True(t, dimension.Identical(m, distance.Unit()))
	assert.Equal(t, "30 m", distance.String())

	back, err := NewFloat64(21, m).Div(NewFloat64(3, s))
	require.NoError(t, err)
	assert.Equal(t, 7.0, back.Value())
	assert.True(t, dimension.Identical(mps, back.Unit()))
	assert.Equal(t, "m/s", naming.ShortName(back.Unit()))
}

func TestDivSameUnitIsDimensionless(t *testing.T) {
	ratio := NewFloat64(6, m).MustDiv(NewFloat64(2, m))
	assert.True(t, ratio.Unit().IsDimensionless())
	assert.Equal(t, "3", ratio.String())
}

func TestAddSub(t *testing.T) {
	sum, err := NewFloat64(10, mps).Add(NewFloat64(3, mps))
	require.NoError(t, err)
	assert.Equal(t, 13.0, sum.Value())
	assert.True(t, dimension.Identical(mps, sum.Unit()))

	diff, err := NewInt64(10, m).Sub(NewInt64(3, m))
	require.NoError(t, err)
	assert.Equal(t, int64(7), diff.Value())
}

func TestAddRejectsMismatch(t *testing.T) {
	_, err := NewFloat64(1, m).Add(NewFloat64(1, s))
	assert.True(t, errors.IsType(err, errors.TypeUnitMismatch))

	_, err = NewFloat64(1, m).Sub(NewFloat64(1, s))
	assert.True(t, errors.IsType(err, errors.TypeUnitMismatch))

	// same dimension, different concrete unit: no implicit coercion
	_, err = NewFloat64(1, m).Add(NewFloat64(1, ft))
	assert.True(t, errors.IsType(err, errors.TypeIncompatibleCompose))

	assert.Panics(t, func() { NewFloat64(1, m).MustAdd(NewFloat64(1, s)) })
}

func TestMulRejectsConflictingIdentity(t *testing.T) {
	_, err := NewFloat64(1, m).Mul(NewFloat64(1, ft))
	assert.True(t, errors.IsType(err, errors.TypeIncompatibleCompose))
}

func TestScaleInvPow(t *testing.T) {
	q := NewFloat64(4, m)

	assert.Equal(t, 12.0, q.Scale(3).Value())
	assert.True(t, dimension.Identical(m, q.Scale(3).Unit()))

	inv := q.Inv()
	assert.Equal(t, 0.25, inv.Value())
	assert.Equal(t, "1/m", naming.ShortName(inv.Unit()))

	sq := q.Pow(2)
	assert.Equal(t, 16.0, sq.Value())
	assert.Equal(t, "m²", naming.ShortName(sq.Unit()))

	neg := q.Pow(-2)
	assert.Equal(t, 0.0625, neg.Value())
	assert.Equal(t, "1/m²", naming.ShortName(neg.Unit()))

	zero := q.Pow(0)
	assert.Equal(t, 1.0, zero.Value())
	assert.True(t, zero.Unit().IsDimensionless())
}

func TestCmp(t *testing.T) {
	c, err := NewFloat64(1, m).Cmp(NewFloat64(2, m))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	eq, err := NewDecimal(decimal.RequireFromString("1.50"), s).Equal(NewDecimal(decimal.RequireFromString("1.5"), s))
	require.NoError(t, err)
	assert.True(t, eq)

	_, err = NewFloat64(1, m).Cmp(NewFloat64(1, s))
	assert.True(t, errors.IsType(err, errors.TypeUnitMismatch))
}

func TestConvertTemperature(t *testing.T) {
	kelvin, err := NewFloat64(0, degC).ConvertTo(K, nil)
	require.NoError(t, err)
	assert.InDelta(t, 273.15, kelvin.Value(), 1e-9)
	assert.True(t, dimension.Identical(K, kelvin.Unit()))

	celsius, err := NewFloat64(212, degF).ConvertTo(degC, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, celsius.Value(), 1e-9)

	fahrenheit, err := NewFloat64(-40, degC).ConvertTo(degF, nil)
	require.NoError(t, err)
	assert.InDelta(t, -40.0, fahrenheit.Value(), 1e-9)

	freezing, err := NewFloat64(32, degF).ConvertTo(K, nil)
	require.NoError(t, err)
	assert.InDelta(t, 273.15, freezing.Value(), 1e-9)
}

func TestConvertScale(t *testing.T) {
	meters, err := NewFloat64(1.5, km).ConvertTo(m, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, meters.Value(), 1e-9)

	kmh := dimension.MustDivide(km, h)
	speed, err := NewFloat64(36, kmh).ConvertTo(mps, nil)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, speed.Value(), 1e-9)

	exact, err := NewDecimal(decimal.NewFromInt(36), kmh).ConvertTo(mps, nil)
	require.NoError(t, err)
	assert.Equal(t, "10", exact.Value().Round(16).String())
	assert.Equal(t, 10.0, NewFloat64(36, kmh).MustConvertTo(mps, nil).Value())

	feet, err := NewDecimal(decimal.NewFromInt(1), m).ConvertTo(ft, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.2808398950131234", feet.Value().Round(16).String())

	ints, err := NewInt64(3, km).ConvertTo(m, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), ints.Value())
}

func TestConvertIdentical(t *testing.T) {
	q := NewFloat64(42, degC)
	same, err := q.ConvertTo(degC, conversion.NewTable())
	require.NoError(t, err)
	assert.Equal(t, q, same)
}

func TestConvertMissing(t *testing.T) {
	_, err := NewFloat64(1, m).ConvertTo(s, nil)
	assert.True(t, errors.IsType(err, errors.TypeMissingConversion))

	// an empty table knows no offset scales
	_, err = NewFloat64(0, degC).ConvertTo(K, conversion.NewTable())
	assert.True(t, errors.IsType(err, errors.TypeMissingConversion))

	assert.Panics(t, func() { NewFloat64(1, m).MustConvertTo(s, nil) })
}

func TestConvertNonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		var err error
		require.NotPanics(t, func() { _, err = NewFloat64(v, km).ConvertTo(m, nil) })
		assert.True(t, errors.IsType(err, errors.TypeInput), "%v: got %v", v, err)

		_, err = NewFloat64(v, degC).ConvertTo(K, nil)
		assert.True(t, errors.IsType(err, errors.TypeInput), "%v: got %v", v, err)
	}

	same, err := NewFloat64(math.Inf(1), km).ConvertTo(km, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(same.Value(), 1))
}

func TestConvertDoesNotMutate(t *testing.T) {
	q := NewFloat64(1, km)
	_ = q.MustConvertTo(m, nil)
	assert.Equal(t, 1.0, q.Value())
	assert.True(t, dimension.Identical(km, q.Unit()))
}

func TestString(t *testing.T) {
	assert.Equal(t, "9.81 m/s²", NewFloat64(9.81, dimension.MustDivide(m, dimension.Pow(s, exponent.Int(2)))).String())
	assert.Equal(t, "2.5 km", NewDecimal(decimal.RequireFromString("2.5"), km).String())
	assert.Equal(t, "7 °C", NewInt64(7, degC).String())
}

func TestFloat32(t *testing.T) {
	q := NewFloat32(1.5, m).MustMul(NewFloat32(2, m))
	assert.Equal(t, float32(3), q.Value())
	assert.Equal(t, "m²", naming.ShortName(q.Unit()))
}
