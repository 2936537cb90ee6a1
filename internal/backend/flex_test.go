package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexTypes(t *testing.T) {
	var doc struct {
		Weight   FlexString `json:"weight"`
		Count    FlexString `json:"count"`
		Price    FlexFloat  `json:"price"`
		Discount FlexFloat  `json:"discount"`
		Bad      FlexFloat  `json:"bad"`
		Premium  FlexBool   `json:"premium"`
		Popular  FlexBool   `json:"popular"`
		Note     FlexString `json:"note"`
	}
	raw := `{"weight": 500, "count": "3", "price": "199.5", "discount": 20,
		"bad": {"x": 1}, "premium": "true", "popular": true, "note": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, FlexString("500"), doc.Weight)
	assert.Equal(t, FlexString("3"), doc.Count)
	assert.Equal(t, FlexFloat(199.5), doc.Price)
	assert.Equal(t, FlexFloat(20), doc.Discount)
	assert.Zero(t, doc.Bad)
	assert.True(t, bool(doc.Premium))
	assert.True(t, bool(doc.Popular))
	assert.Equal(t, FlexString(""), doc.Note)
}

func TestFirstNonEmptyAndIsObject(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
	assert.True(t, IsObject(json.RawMessage(`  {"a":1}`)))
	assert.False(t, IsObject(json.RawMessage(`[1]`)))
	assert.False(t, IsObject(nil))
}

func TestParsePage(t *testing.T) {
	p, ok := ParsePage(json.RawMessage(`{"data": {"results": [1, 2], "count": 9, "currentPage": 2, "pageSize": 2}}`))
	require.True(t, ok)
	assert.Len(t, p.Results, 2)
	assert.Equal(t, 9, p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 2, p.Limit)

	p, ok = ParsePage(json.RawMessage(`[{"a": 1}]`))
	require.True(t, ok)
	assert.Len(t, p.Results, 1)
	assert.Zero(t, p.Total)

	_, ok = ParsePage(json.RawMessage(`"nope"`))
	assert.False(t, ok)
}
