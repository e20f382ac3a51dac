package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for browsing. ProductCount is denormalized and
// recomputed whenever a product's category membership changes.
type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex"`
	Image        *string   `gorm:"column:image"`
	ProductCount int64     `gorm:"column:product_count;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
