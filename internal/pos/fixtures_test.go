package pos

import "aavkar_pos/internal/models"

func mukhwas() models.Product {
	return models.Product{
		ID:   "p-mukhwas",
		Name: "Rose Mukhwas",
		Variants: models.Variants{
			GM: []models.Variant{
				{Weight: "500", Price: 200, Discount: 30},
				{Weight: "250", Price: 110},
			},
			KG: []models.Variant{
				{Weight: "1", Price: 380, Discount: 500},
			},
		},
	}
}

func supari() models.Product {
	return models.Product{
		ID:   "p-supari",
		Name: "Sweet Supari",
		Variants: models.Variants{
			KG: []models.Variant{{Weight: "2", Price: 100, Discount: 20}},
		},
	}
}

func giftBox() models.Product {
	return models.Product{ID: "p-gift", Name: "Gift Box"}
}

func keyOf(unit models.UnitType, idx int) *VariantKey {
	return &VariantKey{Unit: unit, Index: idx}
}
