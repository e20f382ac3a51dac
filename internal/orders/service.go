package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
)

// Service exposes order history reads and the staff status-change operation.
type Service interface {
	ListMine(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListMineResult, error)
	GetMine(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	ApplyStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo OrderRepository
	now  func() time.Time
}

// NewService constructs an order service instance.
func NewService(repo OrderRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListMine(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListMineResult, error) {
	result, err := s.repo.ListMine(ctx, customerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return result, nil
}

func (s *service) GetMine(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindMine(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return order, nil
}

// ApplyStatus moves an order to a new status and appends the matching
// timeline entry. Re-applying the current status is a no-op; no transition
// legality is enforced beyond the status being a known value.
func (s *service) ApplyStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	if order.Status == status {
		return order, nil
	}

	order.Timeline = AppendStatus(order.Timeline, status, s.now().UTC())
	order.Status = status
	if err := s.repo.UpdateStatus(ctx, order.ID, status, order.Timeline); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}
	return order, nil
}
