package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/models"
	"aavkar_pos/internal/orders"
)

type orderDetail struct {
	Order    models.Order    `json:"order"`
	Row      orders.Row      `json:"row"`
	Address  []string        `json:"addressLines"`
	Tracking orders.Tracking `json:"tracking"`
}

func (h *Handler) detailOf(c *gin.Context, o models.Order) orderDetail {
	d := orderDetail{
		Order:    o,
		Row:      orders.BuildRow(c.Request.Context(), o, h.images),
		Address:  []string{},
		Tracking: orders.Track(o),
	}
	if o.Address != nil {
		d.Address = o.Address.Lines()
	}
	return d
}

// loadOrder answers 404 itself when the backend does not know the order.
func (h *Handler) loadOrder(c *gin.Context) (models.Order, bool) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if backend.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		} else {
			h.fail(c, err, "could not load order")
		}
		return models.Order{}, false
	}
	return o, true
}

// GET /api/orders
func (h *Handler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := h.orders.List(ctx, orders.ListParams{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		SortBy:   c.Query("sortBy"),
		POSOrder: queryBool(c, "posOrder"),
	})
	if err != nil {
		h.fail(c, err, "could not load orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results": orders.BuildRows(ctx, page.Results, h.images),
		"total":   page.Total,
		"page":    page.Page,
		"limit":   page.Limit,
	})
}

// GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.detailOf(c, o))
}

// GET /api/orders/:id/tracking-qr
func (h *Handler) TrackingQR(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}
	png, err := orders.TrackingQR(o, h.trackingURL, queryInt(c, "size", orders.DefaultQRSize))
	if err != nil {
		if errors.Is(err, orders.ErrNoTrackingLink) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

type shippingRequest struct {
	ShippingCharge *float64 `json:"shippingCharge" binding:"required"`
}

// PATCH /api/orders/:id/shipping
func (h *Handler) UpdateShipping(c *gin.Context) {
	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "shippingCharge is required")
		return
	}
	o, err := h.orders.UpdateShipping(c.Request.Context(), c.Param("id"), *req.ShippingCharge)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, h.detailOf(c, o))
	case errors.Is(err, orders.ErrNegativeShipping):
		badRequest(c, err.Error())
	case errors.Is(err, orders.ErrOrderFinal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case backend.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	default:
		h.fail(c, err, "could not update shipping charge")
	}
}
