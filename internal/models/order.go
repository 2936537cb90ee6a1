package models

const (
	StatusPlaced     = "placed"
	StatusAccepted   = "accepted"
	StatusInProgress = "inprogress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusDelivered  = "delivered"
)

// OrderStatuses lists the statuses the order filters offer, in display order.
var OrderStatuses = []string{
	StatusPlaced, StatusAccepted, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusDelivered,
}

type OrderUser struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
	Name        string `json:"name,omitempty"`
	Country     string `json:"country,omitempty"`
}

// DisplayName picks the first non-empty of name, email and id.
func (u OrderUser) DisplayName() string {
	for _, s := range []string{u.Name, u.Email, u.ID} {
		if s != "" {
			return s
		}
	}
	return "—"
}

type OrderProductRef struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

type OrderProduct struct {
	ID            string           `json:"id"`
	Product       *OrderProductRef `json:"product,omitempty"`
	WeightVariant string           `json:"weightVariant"`
	Weight        string           `json:"weight"`
	PricePerUnit  float64          `json:"pricePerUnit"`
	Discount      float64          `json:"discount"`
	TotalUnit     int              `json:"totalUnit"`
}

type StatusHistoryEntry struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Note           string `json:"note,omitempty"`
	UpdatedBy      string `json:"updatedBy"`
	Date           string `json:"date"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	TrackingLink   string `json:"trackingLink,omitempty"`
	CourierName    string `json:"courierName,omitempty"`
	CustomMessage  string `json:"customMessage,omitempty"`
}

func (h StatusHistoryEntry) HasTracking() bool {
	return h.TrackingNumber != "" || h.TrackingLink != "" || h.CourierName != ""
}

type Order struct {
	ID              string               `json:"id"`
	User            OrderUser            `json:"user"`
	PhoneNumber     string               `json:"phoneNumber"`
	Status          string               `json:"status"`
	PaymentStatus   string               `json:"paymentStatus"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
	ShippingCharge  float64              `json:"shippingCharge"`
	Address         *Address             `json:"address,omitempty"`
	ProductsDetails []OrderProduct       `json:"productsDetails"`
	CancelReason    string               `json:"cancelReason,omitempty"`
	StatusHistory   []StatusHistoryEntry `json:"statusHistory"`
}

// IsFinal reports whether the order no longer accepts edits such as a new
// shipping charge.
func (o Order) IsFinal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

type OrderPage struct {
	Results []Order `json:"results"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
}
