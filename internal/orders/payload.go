package orders

import (
	"aavkar_pos/internal/models"
	"aavkar_pos/internal/pos"
)

// Lines without a variant are sent with the smallest pack the backend
// knows, which is what it expects for loose items.
const (
	FallbackWeightVariant = models.UnitSmall
	FallbackWeight        = "100"
)

// BuildPayload turns a cart snapshot into the order body. Prices are left
// out: the backend reprices every line.
func BuildPayload(lines []pos.Line, address models.Address, phone string) models.OrderPayload {
	out := models.OrderPayload{
		Cart:        make([]models.OrderLine, 0, len(lines)),
		Address:     address,
		PhoneNumber: phone,
	}
	for _, l := range lines {
		ol := models.OrderLine{
			ProductID:     l.Product.ID,
			WeightVariant: FallbackWeightVariant,
			Weight:        FallbackWeight,
			TotalProduct:  l.Quantity,
		}
		if l.Variant != nil {
			ol.Weight = l.Variant.Weight
			if l.Key != nil {
				ol.WeightVariant = l.Key.Unit
			}
		}
		out.Cart = append(out.Cart, ol)
	}
	return out
}
