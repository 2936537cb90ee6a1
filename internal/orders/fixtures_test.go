package orders

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/models"
	"aavkar_pos/internal/pos"
)

func mukhwas() models.Product {
	return models.Product{
		ID:   "p-mukhwas",
		Name: "Rose Mukhwas",
		Variants: models.Variants{
			GM: []models.Variant{{Weight: "500", Price: 200, Discount: 30}},
			KG: []models.Variant{{Weight: "1", Price: 380}},
		},
	}
}

func supari() models.Product {
	return models.Product{
		ID:       "p-supari",
		Name:     "Sweet Supari",
		Variants: models.Variants{KG: []models.Variant{{Weight: "2", Price: 100}}},
	}
}

func giftBox() models.Product {
	return models.Product{ID: "p-gift", Name: "Gift Box"}
}

func shopAddress() models.Address {
	return models.Address{AddressLine1: "12 MG Road", City: "Pune", State: "MH", Zip: "411001"}
}

// filledCart holds 2 x mukhwas 500gm, 1 x mukhwas 1kg and 1 gift box.
func filledCart(t *testing.T) *pos.Cart {
	t.Helper()
	c := pos.NewCart()
	gm := &pos.VariantKey{Unit: models.UnitSmall, Index: 0}
	kg := &pos.VariantKey{Unit: models.UnitLarge, Index: 0}
	require.NoError(t, c.Add(mukhwas(), gm))
	require.NoError(t, c.Add(mukhwas(), gm))
	require.NoError(t, c.Add(mukhwas(), kg))
	require.NoError(t, c.Add(giftBox(), nil))
	return c
}

func testAPI(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, time.Second, zap.NewNop())
}
