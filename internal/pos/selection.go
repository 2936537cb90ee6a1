package pos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"aavkar_pos/internal/models"
)

var (
	ErrInvalidVariantKey = errors.New("invalid variant key")
	ErrVariantNotFound   = errors.New("variant not found")
)

// VariantKey points at one variant of a product: the unit group and the
// position inside it. Its text form is "gm-0", "kg-2", ...
type VariantKey struct {
	Unit  models.UnitType
	Index int
}

func ParseVariantKey(s string) (VariantKey, error) {
	unit, idx, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return VariantKey{}, fmt.Errorf("%w: %q", ErrInvalidVariantKey, s)
	}
	u := models.UnitType(unit)
	if !u.Valid() {
		return VariantKey{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidVariantKey, unit)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return VariantKey{}, fmt.Errorf("%w: bad index %q", ErrInvalidVariantKey, idx)
	}
	return VariantKey{Unit: u, Index: n}, nil
}

func (k VariantKey) String() string {
	return fmt.Sprintf("%s-%d", k.Unit, k.Index)
}

// Resolve looks the key up in the product's variant groups.
func (k VariantKey) Resolve(p models.Product) (models.Variant, bool) {
	group := p.Variants.Group(k.Unit)
	if k.Index < 0 || k.Index >= len(group) {
		return models.Variant{}, false
	}
	return group[k.Index], true
}

// DefaultVariantKey is the first small-unit variant, else the first
// large-unit one. ok is false for products without variants.
func DefaultVariantKey(p models.Product) (VariantKey, bool) {
	switch {
	case len(p.Variants.GM) > 0:
		return VariantKey{Unit: models.UnitSmall}, true
	case len(p.Variants.KG) > 0:
		return VariantKey{Unit: models.UnitLarge}, true
	}
	return VariantKey{}, false
}
