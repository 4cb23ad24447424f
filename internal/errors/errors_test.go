package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTypeWalksCauses(t *testing.T) {
	inner := NotFound("unit", "furlong")
	outer := Wrapf(TypeConfig, inner, "extra.hcl")
	wrapped := fmt.Errorf("loading: %w", outer)

	assert.True(t, IsType(wrapped, TypeConfig))
	assert.True(t, IsType(wrapped, TypeNotFound))
	assert.False(t, IsType(wrapped, TypeParsing))
	assert.False(t, IsType(nil, TypeConfig))
	assert.False(t, IsType(stderrors.New("plain"), TypeConfig))
}

func TestErrorMessage(t *testing.T) {
	err := MissingConversion("m", "s")
	assert.Equal(t, "[MISSING_CONVERSION] no conversion from m to s", err.Error())

	cause := stderrors.New("boom")
	wrapped := Parsing("bad exponent", cause)
	assert.Contains(t, wrapped.Error(), "boom")
	assert.Same(t, cause, stderrors.Unwrap(wrapped))
}

func TestContext(t *testing.T) {
	err := UnitMismatch("add", "m", "s")
	assert.Equal(t, "m", err.Context["left"])
	assert.Equal(t, "s", err.Context["right"])
	assert.True(t, err.Is(TypeUnitMismatch))

	err = IncompatibleCompose("length", "m", "ft")
	assert.Equal(t, "length", err.Context["dimension"])
}
