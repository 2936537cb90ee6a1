package models

// OrderLine is one cart line as the backend receives it. It carries no
// price: the backend recomputes pricing itself.
type OrderLine struct {
	ProductID     string   `json:"productId"`
	WeightVariant UnitType `json:"weightVariant"`
	Weight        string   `json:"weight"`
	TotalProduct  int      `json:"totalProduct"`
}

type OrderPayload struct {
	Cart        []OrderLine `json:"cart"`
	Address     Address     `json:"address"`
	PhoneNumber string      `json:"phoneNumber"`
}
