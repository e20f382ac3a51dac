package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Order is the immutable snapshot written at checkout. Nothing here references
// live catalog rows, so historical orders survive product edits and deletes.
type Order struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderCode  string     `gorm:"column:order_code;not null;uniqueIndex"`
	CustomerID *uuid.UUID `gorm:"column:customer_id;type:uuid;index"`

	CustomerName  string `gorm:"column:customer_name;not null"`
	CustomerEmail string `gorm:"column:customer_email;not null"`
	CustomerPhone string `gorm:"column:customer_phone;not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	ShippingSnapshot types.ShippingSnapshot `gorm:"column:shipping_snapshot;type:jsonb;serializer:json;not null"`

	PaymentMethod   enums.PaymentMethod    `gorm:"column:payment_method;not null"`
	PaymentStatus   enums.PaymentStatus    `gorm:"column:payment_status;not null;default:'unpaid'"`
	PaymentSnapshot *types.PaymentSnapshot `gorm:"column:payment_snapshot;type:jsonb;serializer:json"`

	Subtotal    int64 `gorm:"column:subtotal;not null"`
	Discount    int64 `gorm:"column:discount;not null;default:0"`
	ShippingFee int64 `gorm:"column:shipping_fee;not null;default:0"`
	Total       int64 `gorm:"column:total;not null"`

	Status   enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Timeline types.Timeline    `gorm:"column:timeline;type:jsonb;serializer:json;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
