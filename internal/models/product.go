package models

// UnitType tags which variant group a selection was drawn from.
type UnitType string

const (
	UnitSmall UnitType = "gm"
	UnitLarge UnitType = "kg"
)

func (u UnitType) Valid() bool {
	return u == UnitSmall || u == UnitLarge
}

// Variant is one purchasable weight of a product. Discount is an absolute
// amount taken off Price, never a percentage.
type Variant struct {
	Weight   string  `json:"weight"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount,omitempty"`
}

type Variants struct {
	GM []Variant `json:"gm"`
	KG []Variant `json:"kg"`
}

// Group returns the variant list for a unit type, nil for an unknown type.
func (v Variants) Group(unit UnitType) []Variant {
	switch unit {
	case UnitSmall:
		return v.GM
	case UnitLarge:
		return v.KG
	}
	return nil
}

func (v Variants) IsEmpty() bool {
	return len(v.GM) == 0 && len(v.KG) == 0
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Product as seen by the POS. The cart references it, never mutates it.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    CategoryRef `json:"category"`
	Variants    Variants    `json:"variants"`
	Images      []string    `json:"images"`
	Ingredients []string    `json:"ingredients"`
	Benefits    []string    `json:"benefits"`
	IsPremium   bool        `json:"isPremium"`
	IsPopular   bool        `json:"isPopular"`
}

func (p Product) HasVariants() bool {
	return !p.Variants.IsEmpty()
}

// ProductInput is the body accepted by the backend on create and update.
type ProductInput struct {
	Category    string    `json:"category" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description,omitempty"`
	IsPremium   bool      `json:"isPremium"`
	IsPopular   bool      `json:"isPopular"`
	Variants    *Variants `json:"variants,omitempty"`
	Images      []string  `json:"images"`
	Ingredients []string  `json:"ingredients"`
	Benefits    []string  `json:"benefits"`
}

type ProductPage struct {
	Results []Product `json:"results"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
}
