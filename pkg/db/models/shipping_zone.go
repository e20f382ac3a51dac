package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingZone is an admin-configured delivery area with a flat fee.
type ShippingZone struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Fee       int64     `gorm:"column:fee;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
