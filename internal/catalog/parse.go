package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/images"
	"aavkar_pos/internal/models"
)

const UnnamedProduct = "Unnamed"

var ErrNotAnObject = errors.New("payload is not a JSON object")

// stringList reads a list of strings, skipping non-string members.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return out
	}
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}

type rawVariant struct {
	Weight   backend.FlexString `json:"weight"`
	Price    backend.FlexFloat  `json:"price"`
	Discount backend.FlexFloat  `json:"discount"`
}

type rawProduct struct {
	ID          string             `json:"id"`
	MongoID     string             `json:"_id"`
	Name        backend.FlexString `json:"name"`
	Description backend.FlexString `json:"description"`
	Category    json.RawMessage    `json:"category"`
	Variants    json.RawMessage    `json:"variants"`
	Images      json.RawMessage    `json:"images"`
	Ingredients json.RawMessage    `json:"ingredients"`
	Benefits    json.RawMessage    `json:"benefits"`
	IsPremium   backend.FlexBool   `json:"isPremium"`
	IsPopular   backend.FlexBool   `json:"isPopular"`
}

// ParseCategoryRef reads a category given either as an id string or as an
// embedded {_id, name} object.
func ParseCategoryRef(raw json.RawMessage) models.CategoryRef {
	var id string
	if json.Unmarshal(raw, &id) == nil {
		return models.CategoryRef{ID: id}
	}
	var obj struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return models.CategoryRef{ID: backend.FirstNonEmpty(obj.MongoID, obj.ID), Name: obj.Name}
	}
	return models.CategoryRef{}
}

// ParseVariants reads the {gm: [...], kg: [...]} groups. A malformed group
// comes back empty.
func ParseVariants(raw json.RawMessage) models.Variants {
	var groups struct {
		GM json.RawMessage `json:"gm"`
		KG json.RawMessage `json:"kg"`
	}
	if json.Unmarshal(raw, &groups) != nil {
		return models.Variants{GM: []models.Variant{}, KG: []models.Variant{}}
	}
	return models.Variants{GM: variantsOf(groups.GM), KG: variantsOf(groups.KG)}
}

func variantsOf(raw json.RawMessage) []models.Variant {
	var list []rawVariant
	if json.Unmarshal(raw, &list) != nil {
		return []models.Variant{}
	}
	out := make([]models.Variant, 0, len(list))
	for _, v := range list {
		out = append(out, models.Variant{
			Weight:   string(v.Weight),
			Price:    float64(v.Price),
			Discount: float64(v.Discount),
		})
	}
	return out
}

// ParseProduct maps a backend product onto models.Product. Missing fields
// are defaulted (empty lists, "Unnamed", false) instead of rejected; only
// a payload that is not an object at all is an error.
func ParseProduct(raw json.RawMessage) (models.Product, error) {
	raw = backend.Unwrap(raw)
	if !backend.IsObject(raw) {
		return models.Product{}, ErrNotAnObject
	}
	var rp rawProduct
	if err := json.Unmarshal(raw, &rp); err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:          backend.FirstNonEmpty(rp.MongoID, rp.ID),
		Name:        backend.FirstNonEmpty(strings.TrimSpace(string(rp.Name)), UnnamedProduct),
		Description: string(rp.Description),
		Category:    ParseCategoryRef(rp.Category),
		Variants:    ParseVariants(rp.Variants),
		Images:      images.Paths(rp.Images),
		Ingredients: stringList(rp.Ingredients),
		Benefits:    stringList(rp.Benefits),
		IsPremium:   bool(rp.IsPremium),
		IsPopular:   bool(rp.IsPopular),
	}
	return p, nil
}

// ParseProductPage reads a paginated product listing. Entries that are not
// objects are skipped; the total falls back to the number of results.
func ParseProductPage(raw json.RawMessage) models.ProductPage {
	page := models.ProductPage{Results: []models.Product{}}
	rp, ok := backend.ParsePage(raw)
	if !ok {
		return page
	}
	for _, r := range rp.Results {
		if p, err := ParseProduct(r); err == nil {
			page.Results = append(page.Results, p)
		}
	}
	page.Total, page.Page, page.Limit = rp.Total, rp.Page, rp.Limit
	if page.Total == 0 {
		page.Total = len(page.Results)
	}
	return page
}

func ParseCategory(raw json.RawMessage) (models.Category, error) {
	if !backend.IsObject(raw) {
		return models.Category{}, ErrNotAnObject
	}
	var rc struct {
		ID             string `json:"id"`
		MongoID        string `json:"_id"`
		Name           string `json:"name"`
		Description    string `json:"description"`
		PricingEnabled bool   `json:"pricingEnabled"`
	}
	if err := json.Unmarshal(raw, &rc); err != nil {
		return models.Category{}, err
	}
	return models.Category{
		ID:             backend.FirstNonEmpty(rc.MongoID, rc.ID),
		Name:           backend.FirstNonEmpty(strings.TrimSpace(rc.Name), UnnamedProduct),
		Description:    rc.Description,
		PricingEnabled: rc.PricingEnabled,
	}, nil
}

func ParseCategoryPage(raw json.RawMessage) models.CategoryPage {
	page := models.CategoryPage{Results: []models.Category{}}
	rp, ok := backend.ParsePage(raw)
	if !ok {
		return page
	}
	for _, r := range rp.Results {
		if c, err := ParseCategory(r); err == nil {
			page.Results = append(page.Results, c)
		}
	}
	page.Total = rp.Total
	if page.Total == 0 {
		page.Total = len(page.Results)
	}
	return page
}
