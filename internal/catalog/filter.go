package catalog

import (
	"strings"

	"aavkar_pos/internal/models"
)

// GroupByCategory buckets products by category id. Products without a
// category are left out.
func GroupByCategory(products []models.Product) map[string][]models.Product {
	out := make(map[string][]models.Product)
	for _, p := range products {
		if p.Category.ID == "" {
			continue
		}
		out[p.Category.ID] = append(out[p.Category.ID], p)
	}
	return out
}

// FilterByCategory keeps the products of one category; an empty id keeps
// everything.
func FilterByCategory(products []models.Product, categoryID string) []models.Product {
	if categoryID == "" {
		return products
	}
	out := []models.Product{}
	for _, p := range products {
		if p.Category.ID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// FilterByName is a case-insensitive substring match on the name.
func FilterByName(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	out := []models.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
