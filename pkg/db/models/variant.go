package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Variant is one purchasable combination of a product's option values.
// Rows are created and deleted by the variant generator; price and stock are
// edited manually afterwards and survive regeneration.
type Variant struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID             `gorm:"column:product_id;type:uuid;not null;index"`
	Options        types.OptionSelection `gorm:"column:options;type:jsonb;serializer:json;not null"`
	SKU            string                `gorm:"column:sku;not null;uniqueIndex"`
	Price          int64                 `gorm:"column:price;not null"`
	CompareAtPrice *int64                `gorm:"column:compare_at_price"`
	Stock          int                   `gorm:"column:stock;not null;default:0"`
	IsActive       bool                  `gorm:"column:is_active;not null;default:true"`
	Image          *string               `gorm:"column:image"`
	SortOrder      int                   `gorm:"column:sort_order;not null;default:0"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
