package pos

import (
	"fmt"
	"sync"
	"sync/atomic"

	"aavkar_pos/internal/models"
)

// Line is one cart entry. Variant is the snapshot taken when the line was
// added; Key is the selection it came from and is used to look the
// discount up again at pricing time.
type Line struct {
	Product  models.Product  `json:"product"`
	Variant  *models.Variant `json:"variant,omitempty"`
	Key      *VariantKey     `json:"-"`
	Quantity int             `json:"quantity"`
}

// Label is the variant weight, empty for products without variants.
func (l Line) Label() string {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.Weight
}

func (l Line) matches(productID, label string) bool {
	return l.Product.ID == productID && l.Label() == label
}

// Cart is the in-memory POS cart of one terminal. Lines keep insertion
// order and no two lines share a (product id, variant label) pair.
type Cart struct {
	mu         sync.Mutex
	lines      []Line
	selections map[string]VariantKey
	pending    atomic.Bool
}

func NewCart() *Cart {
	return &Cart{selections: make(map[string]VariantKey)}
}

// Add puts one unit of the product in the cart. A nil key adds the product
// without a variant. Adding an existing (product, variant) bumps its
// quantity instead of appending a second line.
func (c *Cart) Add(product models.Product, key *VariantKey) error {
	var variant *models.Variant
	if key != nil {
		v, ok := key.Resolve(product)
		if !ok {
			return fmt.Errorf("%w: %s on product %s", ErrVariantNotFound, key, product.ID)
		}
		variant = &v
		k := *key
		key = &k
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	label := ""
	if variant != nil {
		label = variant.Weight
	}
	for i := range c.lines {
		if c.lines[i].matches(product.ID, label) {
			c.lines[i].Quantity++
			return nil
		}
	}
	c.lines = append(c.lines, Line{Product: product, Variant: variant, Key: key, Quantity: 1})
	return nil
}

// AddSelected adds the variant currently selected for the product, falling
// back to its default variant, or the bare product when it has none.
func (c *Cart) AddSelected(product models.Product) error {
	key, ok := c.Selected(product)
	if !ok {
		return c.Add(product, nil)
	}
	return c.Add(product, &key)
}

// Remove drops the matching line whatever its quantity. It reports whether
// a line was removed; a missing line leaves the cart as it was.
func (c *Cart) Remove(productID, variantLabel string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(productID, variantLabel)
}

func (c *Cart) removeLocked(productID, variantLabel string) bool {
	for i := range c.lines {
		if c.lines[i].matches(productID, variantLabel) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
// There is no upper bound.
func (c *Cart) UpdateQuantity(productID string, quantity int, variantLabel string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		return c.removeLocked(productID, variantLabel)
	}
	for i := range c.lines {
		if c.lines[i].matches(productID, variantLabel) {
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the cart together with the variant selections.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.selections = make(map[string]VariantKey)
}

// Settle takes a submitted snapshot out of the cart once its order was
// accepted. Only the submitted quantities are removed, so units added while
// the order was in flight stay for the next sale. Selections are reset.
func (c *Cart) Settle(submitted []Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sl := range submitted {
		for i := range c.lines {
			if !c.lines[i].matches(sl.Product.ID, sl.Label()) {
				continue
			}
			c.lines[i].Quantity -= sl.Quantity
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			break
		}
	}
	if len(c.lines) == 0 {
		c.lines = nil
	}
	c.selections = make(map[string]VariantKey)
}

// Lines returns a snapshot safe to read while the cart keeps changing.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// Select records the variant picked for a product on the POS screen.
func (c *Cart) Select(product models.Product, key VariantKey) error {
	if _, ok := key.Resolve(product); !ok {
		return fmt.Errorf("%w: %s on product %s", ErrVariantNotFound, key, product.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections[product.ID] = key
	return nil
}

// Selected returns the explicit selection for the product or its default.
func (c *Cart) Selected(product models.Product) (VariantKey, bool) {
	c.mu.Lock()
	key, ok := c.selections[product.ID]
	c.mu.Unlock()
	if ok {
		if _, resolves := key.Resolve(product); resolves {
			return key, true
		}
	}
	return DefaultVariantKey(product)
}

// Selections returns the explicit selections keyed by product id.
func (c *Cart) Selections() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.selections))
	for id, k := range c.selections {
		out[id] = k.String()
	}
	return out
}

// BeginCheckout marks a submission as in flight. It returns false when one
// already is.
func (c *Cart) BeginCheckout() bool {
	return c.pending.CompareAndSwap(false, true)
}

func (c *Cart) EndCheckout() {
	c.pending.Store(false)
}

func (c *Cart) CheckoutPending() bool {
	return c.pending.Load()
}
