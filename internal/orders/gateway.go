package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/models"
	"aavkar_pos/internal/pos"
)

const posOrdersPath = "/orders/pos"

// FailedToPlaceOrder is shown when the backend rejects an order without
// saying why.
const FailedToPlaceOrder = "Failed to place order"

var (
	ErrEmptyCart         = errors.New("Cart is empty")
	ErrSubmissionPending = errors.New("an order for this cart is already being submitted")
)

// Receipt is what a successful checkout hands back to the terminal. The
// summary is the cart as it was priced locally when it was sent.
type Receipt struct {
	OrderID string        `json:"orderId,omitempty"`
	Order   *models.Order `json:"order,omitempty"`
	Summary pos.Summary   `json:"summary"`
}

type Gateway struct {
	api *backend.Client
	log *zap.Logger
}

func NewGateway(api *backend.Client, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{api: api, log: log.Named("checkout")}
}

// Submit places the cart as a POS order. Only one submission per cart may
// be in flight. Once the backend has accepted the order the submitted lines
// leave the cart; anything added meanwhile stays. On any failure the cart
// is left untouched for the cashier to retry.
func (g *Gateway) Submit(ctx context.Context, cart *pos.Cart, address models.Address, phone string) (Receipt, error) {
	if !cart.BeginCheckout() {
		return Receipt{}, ErrSubmissionPending
	}
	defer cart.EndCheckout()

	lines := cart.Lines()
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	payload := BuildPayload(lines, address, phone)
	summary := pos.Summarize(lines)

	var raw json.RawMessage
	err := g.api.JSON(ctx, http.MethodPost, posOrdersPath, nil, payload, &raw)
	if err != nil {
		g.log.Warn("order rejected",
			zap.Int("lines", len(lines)),
			zap.String("total", pos.FormatINR(summary.Total)),
			zap.Error(err),
		)
		var be *backend.Error
		if errors.As(err, &be) {
			if be.Message == "" {
				return Receipt{}, &backend.Error{Status: be.Status, Message: FailedToPlaceOrder}
			}
			return Receipt{}, be
		}
		return Receipt{}, fmt.Errorf("%s: %w", FailedToPlaceOrder, err)
	}

	cart.Settle(lines)

	rec := Receipt{Summary: summary}
	if o, err := ParseOrder(raw); err == nil && o.ID != "" {
		rec.OrderID = o.ID
		rec.Order = &o
	}
	g.log.Info("order placed",
		zap.String("order_id", rec.OrderID),
		zap.Int("lines", len(lines)),
		zap.Int("items", summary.ItemCount),
		zap.String("total", pos.FormatINR(summary.Total)),
	)
	return rec, nil
}
