package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/models"
	"aavkar_pos/internal/orders"
	"aavkar_pos/internal/pos"
)

type cartView struct {
	TerminalID string            `json:"terminalId"`
	Lines      []pos.Line        `json:"lines"`
	Selections map[string]string `json:"selections"`
	Summary    pos.Summary       `json:"summary"`
	Pending    bool              `json:"checkoutPending"`
}

func viewOf(id string, cart *pos.Cart) cartView {
	lines := cart.Lines()
	if lines == nil {
		lines = []pos.Line{}
	}
	return cartView{
		TerminalID: id,
		Lines:      lines,
		Selections: cart.Selections(),
		Summary:    pos.Summarize(lines),
		Pending:    cart.CheckoutPending(),
	}
}

// terminalCart returns the cart of the calling terminal, or answers the
// request itself and returns nil.
func (h *Handler) terminalCart(c *gin.Context) (string, *pos.Cart) {
	id, cart, err := h.sessions.Cart(c.Writer, c.Request)
	if err != nil {
		h.log.Error("terminal session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open terminal session"})
		return "", nil
	}
	return id, cart
}

// product loads a product for the cart, answering 404 when it is gone.
func (h *Handler) product(c *gin.Context, id string) (models.Product, bool) {
	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if backend.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		} else {
			h.fail(c, err, "could not load product")
		}
		return models.Product{}, false
	}
	return p, true
}

// GET /api/pos/cart
func (h *Handler) GetCart(c *gin.Context) {
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}
	c.JSON(http.StatusOK, viewOf(id, cart))
}

type addItemRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	VariantKey string `json:"variantKey"`
}

// POST /api/pos/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}
	p, ok := h.product(c, req.ProductID)
	if !ok {
		return
	}

	var err error
	if req.VariantKey == "" {
		err = cart.AddSelected(p)
	} else {
		var key pos.VariantKey
		if key, err = pos.ParseVariantKey(req.VariantKey); err == nil {
			err = cart.Add(p, &key)
		}
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, viewOf(id, cart))
}

type updateItemRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	VariantLabel string `json:"variantLabel"`
	Quantity     *int   `json:"quantity" binding:"required"`
}

// PATCH /api/pos/cart/items
func (h *Handler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId and quantity are required")
		return
	}
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}
	if !cart.UpdateQuantity(req.ProductID, *req.Quantity, req.VariantLabel) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	c.JSON(http.StatusOK, viewOf(id, cart))
}

type removeItemRequest struct {
	ProductID    string `json:"productId" form:"productId" binding:"required"`
	VariantLabel string `json:"variantLabel" form:"variantLabel"`
}

// DELETE /api/pos/cart/items, with a JSON body or query parameters. Removing
// a line that is not in the cart leaves it as is and still answers 200.
func (h *Handler) RemoveItem(c *gin.Context) {
	var req removeItemRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}
	cart.Remove(req.ProductID, req.VariantLabel)
	c.JSON(http.StatusOK, viewOf(id, cart))
}

// DELETE /api/pos/cart
func (h *Handler) ClearCart(c *gin.Context) {
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}
	cart.Clear()
	c.JSON(http.StatusOK, viewOf(id, cart))
}

type selectRequest struct {
	VariantKey string `json:"variantKey" binding:"required"`
}

// PUT /api/pos/selections/:productId
func (h *Handler) SelectVariant(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "variantKey is required")
		return
	}
	key, err := pos.ParseVariantKey(req.VariantKey)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}
	p, ok := h.product(c, c.Param("productId"))
	if !ok {
		return
	}
	if err := cart.Select(p, key); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, viewOf(id, cart))
}

type checkoutRequest struct {
	Address     models.Address `json:"address"`
	PhoneNumber string         `json:"phoneNumber" binding:"required"`
}

// POST /api/pos/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "address and phoneNumber are required")
		return
	}
	id, cart := h.terminalCart(c)
	if cart == nil {
		return
	}

	rec, err := h.gateway.Submit(c.Request.Context(), cart, req.Address, req.PhoneNumber)
	switch {
	case err == nil:
		h.log.Info("checkout done", zap.String("terminal_id", id), zap.String("order_id", rec.OrderID))
		c.JSON(http.StatusCreated, rec)
	case errors.Is(err, orders.ErrEmptyCart):
		badRequest(c, err.Error())
	case errors.Is(err, orders.ErrSubmissionPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.fail(c, err, orders.FailedToPlaceOrder)
	}
}
