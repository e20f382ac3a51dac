package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// OrderRepository defines the persistence surface required by the order service.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindMine(ctx context.Context, id, customerID uuid.UUID) (*models.Order, error)
	ListMine(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListMineResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, timeline types.Timeline) error
}
