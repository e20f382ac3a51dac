package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in a cart, identified by its (product, variant) pair.
// VariantID is nil for simple products. Price is the unit price captured when
// the line was added; it is informational and never authoritative at checkout.
type CartItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID  `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariantID *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	Quantity  int        `gorm:"column:quantity;not null"`
	Price     int64      `gorm:"column:price;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// Matches reports whether the line refers to the given (product, variant)
// identity. Lines are always matched this way, never by position.
func (i CartItem) Matches(productID uuid.UUID, variantID *uuid.UUID) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}
	return *i.VariantID == *variantID
}
