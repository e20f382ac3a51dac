package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/hoangtv-dev/bemart-backend/pkg/db/types"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Product is the canonical catalog listing. Price/Stock act as the base values
// simple products sell at and new variants inherit. PriceMin/PriceMax are
// denormalized from active variant prices.
type Product struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string             `gorm:"column:title;not null"`
	Slug        string             `gorm:"column:slug;not null;uniqueIndex"`
	SKUCode     string             `gorm:"column:sku_code"`
	Description *string            `gorm:"column:description"`
	Price       int64              `gorm:"column:price;not null"`
	Stock       int                `gorm:"column:stock;not null;default:0"`
	PriceMin    int64              `gorm:"column:price_min;not null;default:0"`
	PriceMax    int64              `gorm:"column:price_max;not null;default:0"`
	IsActive    bool               `gorm:"column:is_active;not null;default:true"`
	Image       *string            `gorm:"column:image"`
	Options     types.OptionGroups `gorm:"column:options;type:jsonb;serializer:json"`
	CategoryIDs dbtypes.UUIDArray  `gorm:"column:category_ids;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	Variants    []Variant          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// HasOptions reports whether the product sells through variants.
func (p *Product) HasOptions() bool {
	return len(p.Options) > 0
}
