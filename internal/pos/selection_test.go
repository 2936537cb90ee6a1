package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aavkar_pos/internal/models"
)

func TestParseVariantKey(t *testing.T) {
	k, err := ParseVariantKey("kg-2")
	require.NoError(t, err)
	assert.Equal(t, VariantKey{Unit: models.UnitLarge, Index: 2}, k)
	assert.Equal(t, "kg-2", k.String())

	for _, bad := range []string{"", "gm", "lb-0", "gm-x", "gm--1"} {
		_, err := ParseVariantKey(bad)
		assert.ErrorIs(t, err, ErrInvalidVariantKey, bad)
	}
}

func TestVariantKeyResolve(t *testing.T) {
	p := mukhwas()

	v, ok := VariantKey{Unit: models.UnitSmall, Index: 1}.Resolve(p)
	require.True(t, ok)
	assert.Equal(t, "250", v.Weight)

	_, ok = VariantKey{Unit: models.UnitLarge, Index: 3}.Resolve(p)
	assert.False(t, ok)
}

func TestDefaultVariantKey(t *testing.T) {
	k, ok := DefaultVariantKey(mukhwas())
	require.True(t, ok)
	assert.Equal(t, "gm-0", k.String())

	k, ok = DefaultVariantKey(supari())
	require.True(t, ok)
	assert.Equal(t, "kg-0", k.String())

	_, ok = DefaultVariantKey(giftBox())
	assert.False(t, ok)
}
