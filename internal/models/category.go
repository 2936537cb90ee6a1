package models

type Category struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PricingEnabled bool   `json:"pricingEnabled"`
}

type CategoryPage struct {
	Results []Category `json:"results"`
	Total   int        `json:"total"`
}
