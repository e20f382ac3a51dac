package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/internal/repo"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
)

// Repository provides read access to the checkout configuration rows:
// shipping zones and the bank-transfer payment config.
type Repository struct {
	repo.Base
}

// NewRepository constructs a checkout repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListActiveZones returns the selectable delivery areas in display order.
func (r *Repository) ListActiveZones(ctx context.Context) ([]models.ShippingZone, error) {
	var zones []models.ShippingZone
	err := r.DB(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// FindZoneByID loads one shipping zone.
func (r *Repository) FindZoneByID(ctx context.Context, id uuid.UUID) (*models.ShippingZone, error) {
	var zone models.ShippingZone
	if err := r.DB(ctx).First(&zone, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

// FindActivePaymentConfig returns the bank details currently published for
// transfers. gorm.ErrRecordNotFound means none is active.
func (r *Repository) FindActivePaymentConfig(ctx context.Context) (*models.PaymentConfig, error) {
	var config models.PaymentConfig
	err := r.DB(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}
