package pos

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aavkar_pos/internal/models"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestLinePricesWithDiscount(t *testing.T) {
	p := models.Product{
		ID:       "p1",
		Variants: models.Variants{GM: []models.Variant{{Weight: "100", Price: 100, Discount: 20}}},
	}
	v := p.Variants.GM[0]
	l := Line{Product: p, Variant: &v, Key: keyOf(models.UnitSmall, 0), Quantity: 3}

	assert.True(t, dec(300).Equal(LineOriginalPrice(l)))
	assert.True(t, dec(240).Equal(LineDiscountedPrice(l)))
	assert.True(t, dec(60).Equal(LineSavings(l)))
}

func TestEndToEndCartTotals(t *testing.T) {
	c := NewCart()
	p := mukhwas()
	require.NoError(t, c.Add(p, keyOf(models.UnitSmall, 0)))
	require.NoError(t, c.Add(p, keyOf(models.UnitSmall, 0)))

	lines := c.Lines()
	assert.True(t, dec(400).Equal(Subtotal(lines)))
	assert.True(t, dec(60).Equal(Savings(lines)))
	assert.True(t, dec(340).Equal(Total(lines)))
}

func TestDiscountAboveUnitPriceFloorsAtZero(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(mukhwas(), keyOf(models.UnitLarge, 0)))

	lines := c.Lines()
	assert.True(t, decimal.Zero.Equal(LineDiscountedPrice(lines[0])))
	assert.True(t, dec(380).Equal(Savings(lines)))
	assert.True(t, decimal.Zero.Equal(Total(lines)))
}

func TestLinesWithoutVariantsPriceAtZero(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(giftBox(), nil))
	require.NoError(t, c.Add(giftBox(), nil))

	lines := c.Lines()
	assert.True(t, decimal.Zero.Equal(Savings(lines)))
	assert.True(t, Subtotal(lines).Equal(Total(lines)))
}

func TestUnresolvedKeyIsNotDiscounted(t *testing.T) {
	p := supari()
	v := p.Variants.KG[0]
	l := Line{Product: p, Variant: &v, Key: keyOf(models.UnitLarge, 4), Quantity: 2}
	assert.True(t, LineOriginalPrice(l).Equal(LineDiscountedPrice(l)))

	l.Key = nil
	assert.True(t, LineOriginalPrice(l).Equal(LineDiscountedPrice(l)))
}

func TestTotalEqualsSubtotalMinusSavingsForRandomCarts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		var lines []Line
		n := rng.Intn(8)
		for i := 0; i < n; i++ {
			price := float64(rng.Intn(1000)) + float64(rng.Intn(100))/100
			discount := float64(rng.Intn(1200)) / 2
			p := models.Product{
				ID:       "p",
				Variants: models.Variants{GM: []models.Variant{{Weight: "x", Price: price, Discount: discount}}},
			}
			l := Line{Product: p, Quantity: 1 + rng.Intn(20)}
			if rng.Intn(4) > 0 {
				v := p.Variants.GM[0]
				l.Variant = &v
				l.Key = keyOf(models.UnitSmall, rng.Intn(2))
			}
			lines = append(lines, l)
		}

		sub, sav, tot := Subtotal(lines), Savings(lines), Total(lines)
		require.True(t, tot.Equal(sub.Sub(sav)), "round %d", round)
		require.False(t, sav.IsNegative(), "round %d", round)
		require.False(t, tot.IsNegative(), "round %d", round)

		sum := decimal.Zero
		for _, l := range lines {
			sum = sum.Add(LineDiscountedPrice(l))
		}
		require.True(t, tot.Equal(sum), "round %d", round)
	}
}

func TestSummarize(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(mukhwas(), keyOf(models.UnitSmall, 0)))
	require.NoError(t, c.Add(mukhwas(), keyOf(models.UnitSmall, 0)))
	require.NoError(t, c.Add(giftBox(), nil))

	s := Summarize(c.Lines())
	require.Len(t, s.Lines, 2)
	assert.Equal(t, 3, s.ItemCount)
	assert.Equal(t, "gm-0", s.Lines[0].VariantKey)
	assert.True(t, dec(60).Equal(s.Lines[0].Savings))
	assert.Equal(t, "₹340", s.Display.Total)
}

func TestFormatINR(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"₹0":         decimal.Zero,
		"₹999":       dec(999),
		"₹1,000":     dec(1000),
		"₹12,34,567": dec(1234567),
		"₹100":       decimal.RequireFromString("99.6"),
		"-₹1,500":    dec(-1500),
	}
	for want, in := range cases {
		assert.Equal(t, want, FormatINR(in))
	}
}
