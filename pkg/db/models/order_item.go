package models

import (
	"github.com/google/uuid"
)

// OrderItem is a frozen copy of a purchased line. ProductID is kept for
// reference only; there is deliberately no foreign key back to products.
type OrderItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName string    `gorm:"column:product_name;not null"`
	VariantName string    `gorm:"column:variant_name"`
	VariantSKU  string    `gorm:"column:variant_sku"`
	Price       int64     `gorm:"column:price;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Image       *string   `gorm:"column:image"`
}
