package pos

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineOriginalPrice is the variant price times quantity, zero for a line
// without a variant.
func LineOriginalPrice(l Line) decimal.Decimal {
	if l.Variant == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(l.Variant.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineDiscountedPrice takes the discount from the variant the line was
// selected from, not from the snapshot. A key that no longer resolves
// leaves the line undiscounted.
func LineDiscountedPrice(l Line) decimal.Decimal {
	if l.Variant == nil {
		return decimal.Zero
	}
	if l.Key == nil {
		return LineOriginalPrice(l)
	}
	selected, ok := l.Key.Resolve(l.Product)
	if !ok {
		return LineOriginalPrice(l)
	}
	unit := decimal.NewFromFloat(l.Variant.Price).Sub(decimal.NewFromFloat(selected.Discount))
	if unit.IsNegative() {
		unit = decimal.Zero
	}
	return unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func LineSavings(l Line) decimal.Decimal {
	return LineOriginalPrice(l).Sub(LineDiscountedPrice(l))
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineOriginalPrice(l))
	}
	return sum
}

func Savings(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineSavings(l))
	}
	return sum
}

func Total(lines []Line) decimal.Decimal {
	return Subtotal(lines).Sub(Savings(lines))
}

type LineSummary struct {
	ProductID       string          `json:"productId"`
	Name            string          `json:"name"`
	VariantKey      string          `json:"variantKey,omitempty"`
	VariantLabel    string          `json:"variantLabel,omitempty"`
	Quantity        int             `json:"quantity"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	Savings         decimal.Decimal `json:"savings"`
}

type Summary struct {
	Lines     []LineSummary   `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Savings   decimal.Decimal `json:"savings"`
	Total     decimal.Decimal `json:"total"`
	Display   DisplayTotals   `json:"display"`
}

type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Savings  string `json:"savings"`
	Total    string `json:"total"`
}

// Summarize prices a cart snapshot line by line.
func Summarize(lines []Line) Summary {
	s := Summary{Lines: make([]LineSummary, 0, len(lines))}
	for _, l := range lines {
		ls := LineSummary{
			ProductID:       l.Product.ID,
			Name:            l.Product.Name,
			VariantLabel:    l.Label(),
			Quantity:        l.Quantity,
			OriginalPrice:   LineOriginalPrice(l),
			DiscountedPrice: LineDiscountedPrice(l),
		}
		if l.Key != nil {
			ls.VariantKey = l.Key.String()
		}
		ls.Savings = ls.OriginalPrice.Sub(ls.DiscountedPrice)
		s.Lines = append(s.Lines, ls)
		s.ItemCount += l.Quantity
	}
	s.Subtotal = Subtotal(lines)
	s.Savings = Savings(lines)
	s.Total = s.Subtotal.Sub(s.Savings)
	s.Display = DisplayTotals{
		Subtotal: FormatINR(s.Subtotal),
		Savings:  FormatINR(s.Savings),
		Total:    FormatINR(s.Total),
	}
	return s
}

// FormatINR renders a whole-rupee amount with Indian digit grouping
// (₹12,34,567).
func FormatINR(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
