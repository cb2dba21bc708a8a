package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SeisDigitos(t *testing.T) {
	g := NewGenerator(Length)
	for i := 0; i < 200; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.True(t, g.Validate(code), "código %q debe ser numérico", code)
	}
}

func TestNewGenerator_AjustaLongitud(t *testing.T) {
	code, err := NewGenerator(1).Generate()
	require.NoError(t, err)
	assert.Len(t, code, 4)

	code, err = NewGenerator(50).Generate()
	require.NoError(t, err)
	assert.Len(t, code, 10)
}

func TestValidate(t *testing.T) {
	g := NewGenerator(6)
	assert.True(t, g.Validate("000123"))
	assert.False(t, g.Validate("12345"))
	assert.False(t, g.Validate("12345a"))
}

func TestEqualYNormalize(t *testing.T) {
	assert.True(t, Equal("123456", NormalizeCode(" 123-456 ")))
	assert.False(t, Equal("123456", "123457"))
	assert.False(t, Equal("123456", "12345"))
}
