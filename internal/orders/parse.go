package orders

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/images"
	"aavkar_pos/internal/models"
)

var ErrNotAnOrder = errors.New("payload is not an order object")

const DefaultPaymentStatus = "unpaid"

type rawUser struct {
	ID          string `json:"id"`
	MongoID     string `json:"_id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	Details     struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"user_details"`
}

// parseUser reads userId, which the backend sends either as a bare id or
// as the populated user document.
func parseUser(raw json.RawMessage) models.OrderUser {
	var id string
	if json.Unmarshal(raw, &id) == nil {
		return models.OrderUser{ID: id}
	}
	var ru rawUser
	if !backend.IsObject(raw) || json.Unmarshal(raw, &ru) != nil {
		return models.OrderUser{}
	}
	return models.OrderUser{
		ID:          backend.FirstNonEmpty(ru.MongoID, ru.ID),
		Email:       ru.Email,
		PhoneNumber: ru.PhoneNumber,
		Role:        ru.Role,
		Name:        ru.Details.Name,
		Country:     ru.Details.Country,
	}
}

func parseProductRef(raw json.RawMessage) *models.OrderProductRef {
	var id string
	if json.Unmarshal(raw, &id) == nil {
		return &models.OrderProductRef{ID: id, Images: []string{}}
	}
	if !backend.IsObject(raw) {
		return nil
	}
	var rp struct {
		ID      string             `json:"id"`
		MongoID string             `json:"_id"`
		Name    backend.FlexString `json:"name"`
		Images  json.RawMessage    `json:"images"`
	}
	if json.Unmarshal(raw, &rp) != nil {
		return nil
	}
	return &models.OrderProductRef{
		ID:     backend.FirstNonEmpty(rp.MongoID, rp.ID),
		Name:   string(rp.Name),
		Images: images.Paths(rp.Images),
	}
}

type rawOrderProduct struct {
	ID            string             `json:"_id"`
	Product       json.RawMessage    `json:"productId"`
	WeightVariant backend.FlexString `json:"weightVariant"`
	Weight        backend.FlexString `json:"weight"`
	PricePerUnit  backend.FlexFloat  `json:"pricePerUnit"`
	Discount      backend.FlexFloat  `json:"discount"`
	TotalUnit     backend.FlexFloat  `json:"totalUnit"`
}

type rawHistory struct {
	ID             string             `json:"_id"`
	Status         backend.FlexString `json:"status"`
	Note           backend.FlexString `json:"note"`
	UpdatedBy      backend.FlexString `json:"updatedBy"`
	Date           backend.FlexString `json:"date"`
	TrackingNumber backend.FlexString `json:"trackingNumber"`
	TrackingLink   backend.FlexString `json:"trackingLink"`
	CourierName    backend.FlexString `json:"courierName"`
	CustomMessage  backend.FlexString `json:"customMessage"`
}

type rawOrder struct {
	ID              string             `json:"id"`
	MongoID         string             `json:"_id"`
	User            json.RawMessage    `json:"userId"`
	PhoneNumber     backend.FlexString `json:"phoneNumber"`
	Status          backend.FlexString `json:"status"`
	PaymentStatus   backend.FlexString `json:"paymentStatus"`
	CreatedAt       backend.FlexString `json:"createdAt"`
	UpdatedAt       backend.FlexString `json:"updatedAt"`
	ShippingCharge  backend.FlexFloat  `json:"shippingCharge"`
	Address         json.RawMessage    `json:"address"`
	ProductsDetails []json.RawMessage  `json:"productsDetails"`
	CancelDetails   struct {
		Reason backend.FlexString `json:"reason"`
	} `json:"cancelDetails"`
	StatusHistory []json.RawMessage `json:"statusHistory"`
}

func parseAddress(raw json.RawMessage) *models.Address {
	if !backend.IsObject(raw) {
		return nil
	}
	var ra struct {
		AddressLine1 backend.FlexString `json:"addressLine1"`
		AddressLine2 backend.FlexString `json:"addressLine2"`
		City         backend.FlexString `json:"city"`
		State        backend.FlexString `json:"state"`
		Zip          backend.FlexString `json:"zip"`
		Country      backend.FlexString `json:"country"`
	}
	if json.Unmarshal(raw, &ra) != nil {
		return nil
	}
	return &models.Address{
		AddressLine1: string(ra.AddressLine1),
		AddressLine2: string(ra.AddressLine2),
		City:         string(ra.City),
		State:        string(ra.State),
		Zip:          string(ra.Zip),
		Country:      string(ra.Country),
	}
}

// ParseOrder maps a backend order onto models.Order, defaulting whatever is
// missing. Malformed product lines and history entries are skipped.
func ParseOrder(raw json.RawMessage) (models.Order, error) {
	raw = backend.Unwrap(raw)
	if !backend.IsObject(raw) {
		return models.Order{}, ErrNotAnOrder
	}
	var ro rawOrder
	if err := json.Unmarshal(raw, &ro); err != nil {
		return models.Order{}, err
	}

	o := models.Order{
		ID:              backend.FirstNonEmpty(ro.MongoID, ro.ID),
		User:            parseUser(ro.User),
		PhoneNumber:     string(ro.PhoneNumber),
		Status:          strings.ToLower(strings.TrimSpace(string(ro.Status))),
		PaymentStatus:   backend.FirstNonEmpty(string(ro.PaymentStatus), DefaultPaymentStatus),
		CreatedAt:       string(ro.CreatedAt),
		UpdatedAt:       string(ro.UpdatedAt),
		ShippingCharge:  float64(ro.ShippingCharge),
		Address:         parseAddress(ro.Address),
		ProductsDetails: []models.OrderProduct{},
		CancelReason:    string(ro.CancelDetails.Reason),
		StatusHistory:   []models.StatusHistoryEntry{},
	}
	for _, p := range ro.ProductsDetails {
		var rp rawOrderProduct
		if !backend.IsObject(p) || json.Unmarshal(p, &rp) != nil {
			continue
		}
		o.ProductsDetails = append(o.ProductsDetails, models.OrderProduct{
			ID:            rp.ID,
			Product:       parseProductRef(rp.Product),
			WeightVariant: string(rp.WeightVariant),
			Weight:        string(rp.Weight),
			PricePerUnit:  float64(rp.PricePerUnit),
			Discount:      float64(rp.Discount),
			TotalUnit:     int(math.Round(float64(rp.TotalUnit))),
		})
	}
	for _, h := range ro.StatusHistory {
		var rh rawHistory
		if !backend.IsObject(h) || json.Unmarshal(h, &rh) != nil {
			continue
		}
		o.StatusHistory = append(o.StatusHistory, models.StatusHistoryEntry{
			ID:             rh.ID,
			Status:         strings.ToLower(string(rh.Status)),
			Note:           string(rh.Note),
			UpdatedBy:      string(rh.UpdatedBy),
			Date:           string(rh.Date),
			TrackingNumber: string(rh.TrackingNumber),
			TrackingLink:   string(rh.TrackingLink),
			CourierName:    string(rh.CourierName),
			CustomMessage:  string(rh.CustomMessage),
		})
	}
	return o, nil
}

// ParseOrderPage reads a paginated order listing; the total falls back to
// the number of orders returned.
func ParseOrderPage(raw json.RawMessage) models.OrderPage {
	page := models.OrderPage{Results: []models.Order{}}
	rp, ok := backend.ParsePage(raw)
	if !ok {
		return page
	}
	for _, r := range rp.Results {
		if o, err := ParseOrder(r); err == nil {
			page.Results = append(page.Results, o)
		}
	}
	page.Total, page.Page, page.Limit = rp.Total, rp.Page, rp.Limit
	if page.Total == 0 {
		page.Total = len(page.Results)
	}
	return page
}
