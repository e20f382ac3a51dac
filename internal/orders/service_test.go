package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

type stubOrderRepo struct {
	orders       map[uuid.UUID]*models.Order
	statusWrites int
	lastTimeline types.Timeline
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (s *stubOrderRepo) WithTx(_ *gorm.DB) OrderRepository { return s }

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderRepo) FindMine(_ context.Context, id, customerID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok || order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderRepo) ListMine(_ context.Context, customerID uuid.UUID, _ pagination.Params) (*ListMineResult, error) {
	result := &ListMineResult{}
	for _, order := range s.orders {
		if order.CustomerID != nil && *order.CustomerID == customerID {
			result.Orders = append(result.Orders, *order)
		}
	}
	return result, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus, timeline types.Timeline) error {
	s.statusWrites++
	s.lastTimeline = timeline
	if order, ok := s.orders[id]; ok {
		order.Status = status
		order.Timeline = timeline
	}
	return nil
}

func seedOrder(repo *stubOrderRepo, customerID uuid.UUID) *models.Order {
	order := &models.Order{
		ID:         uuid.New(),
		OrderCode:  "ORD-" + uuid.NewString(),
		CustomerID: &customerID,
		Status:     enums.OrderStatusPending,
		Timeline:   InitialTimeline(time.Now().UTC()),
	}
	repo.orders[order.ID] = order
	return order
}

func TestStatusNoteFallback(t *testing.T) {
	t.Parallel()

	if got := StatusNote(enums.OrderStatusConfirmed); got != "Order confirmed" {
		t.Fatalf("StatusNote(confirmed) = %q", got)
	}
	if got := StatusNote(enums.OrderStatus("weird")); got != `Status changed to weird` {
		t.Fatalf("fallback note = %q", got)
	}
}

func TestInitialTimelineSeedsPending(t *testing.T) {
	t.Parallel()

	timeline := InitialTimeline(time.Now().UTC())
	if len(timeline) != 1 {
		t.Fatalf("expected exactly one seed entry, got %d", len(timeline))
	}
	if timeline[0].Status != string(enums.OrderStatusPending) || timeline[0].Note != "Order created" {
		t.Fatalf("seed entry = %+v", timeline[0])
	}
}

func TestApplyStatusAppendsEntry(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	order := seedOrder(repo, uuid.New())

	updated, err := svc.ApplyStatus(context.Background(), order.ID, enums.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("ApplyStatus: %v", err)
	}
	if updated.Status != enums.OrderStatusConfirmed {
		t.Fatalf("status = %q", updated.Status)
	}
	if len(updated.Timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(updated.Timeline))
	}
	if updated.Timeline[0].Note != "Order created" {
		t.Fatal("prior timeline entry was rewritten")
	}
	if updated.Timeline[1].Status != string(enums.OrderStatusConfirmed) || updated.Timeline[1].Note != "Order confirmed" {
		t.Fatalf("appended entry = %+v", updated.Timeline[1])
	}
}

func TestApplyStatusUnchangedIsNoOp(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	svc, _ := NewService(repo)
	order := seedOrder(repo, uuid.New())

	updated, err := svc.ApplyStatus(context.Background(), order.ID, enums.OrderStatusPending)
	if err != nil {
		t.Fatalf("ApplyStatus: %v", err)
	}
	if repo.statusWrites != 0 {
		t.Fatalf("no write expected for unchanged status, got %d", repo.statusWrites)
	}
	if len(updated.Timeline) != 1 {
		t.Fatalf("timeline grew on no-op: %d entries", len(updated.Timeline))
	}
}

func TestApplyStatusRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	svc, _ := NewService(repo)
	order := seedOrder(repo, uuid.New())

	_, err := svc.ApplyStatus(context.Background(), order.ID, enums.OrderStatus("teleported"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetMineScopedToOwner(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	svc, _ := NewService(repo)
	owner := uuid.New()
	order := seedOrder(repo, owner)

	if _, err := svc.GetMine(context.Background(), owner, order.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	_, err := svc.GetMine(context.Background(), uuid.New(), order.ID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign customer, got %v", err)
	}
}
