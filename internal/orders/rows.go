package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"aavkar_pos/internal/images"
	"aavkar_pos/internal/models"
	"aavkar_pos/internal/pos"
)

type ProductRow struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId,omitempty"`
	Name          string          `json:"name"`
	Images        []string        `json:"images"`
	WeightVariant string          `json:"weightVariant"`
	Weight        string          `json:"weight"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	Discount      decimal.Decimal `json:"discount"`
	TotalUnit     int             `json:"totalUnit"`
}

// Row is an order as the orders table lists it. Totals are recomputed from
// the product lines: OriginalTotal before discounts, TotalAmount after,
// GrandTotal adds the shipping charge.
type Row struct {
	ID             string           `json:"id"`
	User           models.OrderUser `json:"user"`
	UserName       string           `json:"userName"`
	PhoneNumber    string           `json:"phoneNumber"`
	Status         string           `json:"status"`
	Badge          string           `json:"badge"`
	PaymentStatus  string           `json:"paymentStatus"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
	Images         []string         `json:"images"`
	OriginalTotal  decimal.Decimal  `json:"originalTotal"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	ShippingCharge decimal.Decimal  `json:"shippingCharge"`
	GrandTotal     decimal.Decimal  `json:"grandTotal"`
	Display        RowDisplay       `json:"display"`
	Address        *models.Address  `json:"address,omitempty"`
	Products       []ProductRow     `json:"products"`
	CancelReason   string           `json:"cancelReason,omitempty"`
}

type RowDisplay struct {
	OriginalTotal string `json:"originalTotal"`
	Savings       string `json:"savings"`
	TotalAmount   string `json:"totalAmount"`
	GrandTotal    string `json:"grandTotal"`
}

// OrderTotals returns the order total before and after per-unit discounts.
// Discounts larger than the price are not clamped here: the backend stored
// them and the row shows what it stored.
func OrderTotals(products []models.OrderProduct) (original, discounted decimal.Decimal) {
	original, discounted = decimal.Zero, decimal.Zero
	for _, p := range products {
		qty := decimal.NewFromInt(int64(p.TotalUnit))
		price := decimal.NewFromFloat(p.PricePerUnit)
		original = original.Add(price.Mul(qty))
		discounted = discounted.Add(price.Sub(decimal.NewFromFloat(p.Discount)).Mul(qty))
	}
	return original, discounted
}

// BuildRow normalizes one order for the table. The phone stored on the
// user wins over the one typed at checkout.
func BuildRow(ctx context.Context, o models.Order, r images.Resolver) Row {
	row := Row{
		ID:             o.ID,
		User:           o.User,
		UserName:       o.User.DisplayName(),
		PhoneNumber:    o.PhoneNumber,
		Status:         o.Status,
		Badge:          StatusBadge(o.Status),
		PaymentStatus:  o.PaymentStatus,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Images:         []string{},
		ShippingCharge: decimal.NewFromFloat(o.ShippingCharge),
		Address:        o.Address,
		Products:       make([]ProductRow, 0, len(o.ProductsDetails)),
		CancelReason:   o.CancelReason,
	}
	if o.User.PhoneNumber != "" {
		row.PhoneNumber = o.User.PhoneNumber
	}
	if row.PaymentStatus == "" {
		row.PaymentStatus = DefaultPaymentStatus
	}

	for _, p := range o.ProductsDetails {
		pr := ProductRow{
			ID:            p.ID,
			Images:        []string{},
			WeightVariant: p.WeightVariant,
			Weight:        p.Weight,
			PricePerUnit:  decimal.NewFromFloat(p.PricePerUnit),
			Discount:      decimal.NewFromFloat(p.Discount),
			TotalUnit:     p.TotalUnit,
		}
		if p.Product != nil {
			pr.ProductID = p.Product.ID
			pr.Name = p.Product.Name
			pr.Images = images.ResolveAll(ctx, r, p.Product.Images)
		}
		row.Images = append(row.Images, pr.Images...)
		row.Products = append(row.Products, pr)
	}

	row.OriginalTotal, row.TotalAmount = OrderTotals(o.ProductsDetails)
	row.GrandTotal = row.TotalAmount.Add(row.ShippingCharge)
	row.Display = RowDisplay{
		OriginalTotal: pos.FormatINR(row.OriginalTotal),
		Savings:       pos.FormatINR(row.OriginalTotal.Sub(row.TotalAmount)),
		TotalAmount:   pos.FormatINR(row.TotalAmount),
		GrandTotal:    pos.FormatINR(row.GrandTotal),
	}
	return row
}

func BuildRows(ctx context.Context, orders []models.Order, r images.Resolver) []Row {
	out := make([]Row, 0, len(orders))
	for _, o := range orders {
		out = append(out, BuildRow(ctx, o, r))
	}
	return out
}
