package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aavkar_pos/internal/models"
)

func TestParseProductFullShape(t *testing.T) {
	raw := json.RawMessage(`{
		"_id": "p1",
		"name": "Rose Mukhwas",
		"description": "after-meal mix",
		"category": {"_id": "c1", "name": "Mukhwas"},
		"variants": {
			"gm": [{"weight": "500", "price": 200, "discount": 30}],
			"kg": [{"weight": 1, "price": "380"}]
		},
		"images": ["/uploads/a.jpg", {"url": "/uploads/b.jpg"}],
		"ingredients": ["fennel", "rose"],
		"benefits": ["digestion"],
		"isPremium": true,
		"isPopular": "true"
	}`)

	p, err := ParseProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Rose Mukhwas", p.Name)
	assert.Equal(t, models.CategoryRef{ID: "c1", Name: "Mukhwas"}, p.Category)
	assert.Equal(t, []models.Variant{{Weight: "500", Price: 200, Discount: 30}}, p.Variants.GM)
	assert.Equal(t, []models.Variant{{Weight: "1", Price: 380}}, p.Variants.KG)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, p.Images)
	assert.Equal(t, []string{"fennel", "rose"}, p.Ingredients)
	assert.True(t, p.IsPremium)
	assert.True(t, p.IsPopular)
}

func TestParseProductDefaults(t *testing.T) {
	p, err := ParseProduct(json.RawMessage(`{"id": "p2", "category": "c9", "variants": "broken", "ingredients": 4}`))
	require.NoError(t, err)

	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, UnnamedProduct, p.Name)
	assert.Equal(t, models.CategoryRef{ID: "c9"}, p.Category)
	assert.False(t, p.HasVariants())
	assert.Equal(t, []string{}, p.Images)
	assert.Equal(t, []string{}, p.Ingredients)
	assert.Equal(t, []string{}, p.Benefits)
	assert.False(t, p.IsPremium)
}

func TestParseProductUnwrapsData(t *testing.T) {
	p, err := ParseProduct(json.RawMessage(`{"data": {"_id": "p3", "name": "Supari"}}`))
	require.NoError(t, err)
	assert.Equal(t, "p3", p.ID)
	assert.Equal(t, "Supari", p.Name)
}

func TestParseProductRejectsNonObject(t *testing.T) {
	_, err := ParseProduct(json.RawMessage(`["p1"]`))
	assert.ErrorIs(t, err, ErrNotAnObject)

	_, err = ParseProduct(nil)
	assert.ErrorIs(t, err, ErrNotAnObject)
}

func TestParseProductPageMetadataAliases(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		total int
		page  int
		limit int
	}{
		{"plain", `{"results": [{"_id": "a"}], "total": 40, "page": 2, "limit": 10}`, 40, 2, 10},
		{"count", `{"results": [{"_id": "a"}], "count": 7, "currentPage": 3, "pageSize": 5}`, 7, 3, 5},
		{"totalResults", `{"data": {"results": [{"_id": "a"}], "totalResults": 9}}`, 9, 0, 0},
		{"no total", `{"results": [{"_id": "a"}, {"_id": "b"}]}`, 2, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := ParseProductPage(json.RawMessage(tc.raw))
			assert.Equal(t, tc.total, page.Total)
			assert.Equal(t, tc.page, page.Page)
			assert.Equal(t, tc.limit, page.Limit)
		})
	}
}

func TestParseProductPageSkipsBadEntries(t *testing.T) {
	page := ParseProductPage(json.RawMessage(`{"results": [{"_id": "a"}, "junk", 3, {"_id": "b"}]}`))
	require.Len(t, page.Results, 2)
	assert.Equal(t, "a", page.Results[0].ID)
	assert.Equal(t, "b", page.Results[1].ID)
}

func TestParseProductPageGarbage(t *testing.T) {
	page := ParseProductPage(json.RawMessage(`"oops"`))
	assert.Equal(t, []models.Product{}, page.Results)
	assert.Zero(t, page.Total)
}

func TestParseCategoryPage(t *testing.T) {
	page := ParseCategoryPage(json.RawMessage(`{"data": {"results": [
		{"_id": "c1", "name": "Mukhwas", "pricingEnabled": true},
		{"id": "c2"}
	], "total": 2}}`))
	require.Len(t, page.Results, 2)
	assert.Equal(t, models.Category{ID: "c1", Name: "Mukhwas", PricingEnabled: true}, page.Results[0])
	assert.Equal(t, "c2", page.Results[1].ID)
	assert.Equal(t, UnnamedProduct, page.Results[1].Name)
	assert.Equal(t, 2, page.Total)
}
