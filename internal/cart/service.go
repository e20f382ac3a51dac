package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/internal/catalog"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
)

// Service exposes the customer cart operations. Every operation is scoped to
// the authenticated customer id; there is no cross-customer access path.
type Service interface {
	GetMyCart(ctx context.Context, customerID uuid.UUID) (*CartDTO, error)
	Add(ctx context.Context, customerID uuid.UUID, input AddInput) error
	UpdateQuantity(ctx context.Context, customerID uuid.UUID, input UpdateQuantityInput) error
	Remove(ctx context.Context, customerID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
	MergeGuestCart(ctx context.Context, customerID uuid.UUID, input MergeInput) (*MergeResult, error)
}

// AddInput identifies what to add and how many.
type AddInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// UpdateQuantityInput replaces the quantity on an existing line.
type UpdateQuantityInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// MergeInput carries a guest cart captured client-side before login.
type MergeInput struct {
	SessionID string
	Lines     []GuestLine
}

// GuestLine is one locally held cart line to replay through Add.
type GuestLine struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// MergeResult reports how the replay went. Skipped counts lines dropped
// because their product/variant vanished or lacked stock.
type MergeResult struct {
	Merged  int `json:"merged"`
	Skipped int `json:"skipped"`
}

// CartDTO is the hydrated cart returned to clients: stored lines joined with
// the current catalog state.
type CartDTO struct {
	ID       uuid.UUID `json:"id"`
	Items    []LineDTO `json:"items"`
	Subtotal int64     `json:"subtotal"`
}

// LineDTO is one hydrated cart line.
type LineDTO struct {
	ProductID    uuid.UUID  `json:"product_id"`
	VariantID    *uuid.UUID `json:"variant_id,omitempty"`
	Title        string     `json:"title"`
	VariantLabel string     `json:"variant_label,omitempty"`
	SKU          string     `json:"sku,omitempty"`
	Image        *string    `json:"image,omitempty"`
	Price        int64      `json:"price"`
	Quantity     int        `json:"quantity"`
	LineTotal    int64      `json:"line_total"`
}

type service struct {
	repo     CartRepository
	products productLoader
	guard    mergeGuard
	guardTTL time.Duration
	logg     *logger.Logger
}

// NewService constructs a cart service instance.
func NewService(repo CartRepository, products productLoader, guard mergeGuard, guardTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if guard == nil {
		return nil, fmt.Errorf("merge guard required")
	}
	if guardTTL <= 0 {
		return nil, fmt.Errorf("merge guard ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, products: products, guard: guard, guardTTL: guardTTL, logg: logg}, nil
}

// GetMyCart returns the hydrated cart, or an empty DTO when the customer has
// none yet. Lines whose product vanished from the catalog are omitted.
func (s *service) GetMyCart(ctx context.Context, customerID uuid.UUID) (*CartDTO, error) {
	cart, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartDTO{Items: []LineDTO{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	dto := &CartDTO{ID: cart.ID, Items: make([]LineDTO, 0, len(cart.Items))}
	for _, item := range cart.Items {
		line, err := s.hydrateLine(ctx, item)
		if err != nil {
			return nil, err
		}
		if line == nil {
			continue
		}
		dto.Items = append(dto.Items, *line)
		dto.Subtotal += line.LineTotal
	}
	return dto, nil
}

func (s *service) hydrateLine(ctx context.Context, item models.CartItem) (*LineDTO, error) {
	product, err := s.products.FindProductByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	line := &LineDTO{
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Title:     product.Title,
		SKU:       product.SKUCode,
		Image:     product.Image,
		Price:     item.Price,
		Quantity:  item.Quantity,
		LineTotal: item.Price * int64(item.Quantity),
	}
	if item.VariantID != nil {
		variant, err := s.products.FindVariantByID(ctx, *item.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant")
		}
		line.VariantLabel = catalog.SelectionLabel(product.Options, variant.Options)
		line.SKU = variant.SKU
		if variant.Image != nil {
			line.Image = variant.Image
		}
	}
	return line, nil
}

// Add puts quantity units of a product (or one of its variants) into the
// customer's cart, creating the cart on first use. An existing line for the
// same (product, variant) pair absorbs the quantity instead of duplicating.
func (s *service) Add(ctx context.Context, customerID uuid.UUID, input AddInput) error {
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	price, stock, err := s.resolveTarget(ctx, input.ProductID, input.VariantID)
	if err != nil {
		return err
	}
	if stock < input.Quantity {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
	}

	cart, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
		}
		cart, err = s.repo.Create(ctx, &models.Cart{CustomerID: customerID})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create cart")
		}
	}

	for _, item := range cart.Items {
		if !item.Matches(input.ProductID, input.VariantID) {
			continue
		}
		total := item.Quantity + input.Quantity
		if stock < total {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
		}
		if err := s.repo.UpdateItemQuantity(ctx, item.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
		}
		return nil
	}

	err = s.repo.AddItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: input.ProductID,
		VariantID: input.VariantID,
		Quantity:  input.Quantity,
		Price:     price,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
	}
	return nil
}

// resolveTarget validates the product/variant pair and returns the unit price
// and available stock of whichever one actually sells.
func (s *service) resolveTarget(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (price int64, stock int, err error) {
	product, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !product.IsActive {
		return 0, 0, pkgerrors.New(pkgerrors.CodeStateConflict, "product is unavailable")
	}

	if product.HasOptions() {
		if variantID == nil {
			return 0, 0, pkgerrors.New(pkgerrors.CodeValidation, "variant is required for this product")
		}
		variant, err := s.products.FindVariantByID(ctx, *variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant")
		}
		if variant.ProductID != product.ID {
			return 0, 0, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		if !variant.IsActive {
			return 0, 0, pkgerrors.New(pkgerrors.CodeStateConflict, "variant is unavailable")
		}
		return variant.Price, variant.Stock, nil
	}

	if variantID != nil {
		return 0, 0, pkgerrors.New(pkgerrors.CodeValidation, "product has no variants")
	}
	return product.Price, product.Stock, nil
}

// UpdateQuantity replaces the quantity on an existing line. Stock is not
// re-validated here; checkout performs the authoritative check.
func (s *service) UpdateQuantity(ctx context.Context, customerID uuid.UUID, input UpdateQuantityInput) error {
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	cart, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	for _, item := range cart.Items {
		if !item.Matches(input.ProductID, input.VariantID) {
			continue
		}
		if err := s.repo.UpdateItemQuantity(ctx, item.ID, input.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// Remove deletes a line if present. Removing an absent line or acting on an
// absent cart succeeds trivially.
func (s *service) Remove(ctx context.Context, customerID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) error {
	cart, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	for _, item := range cart.Items {
		if item.Matches(productID, variantID) {
			if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
			}
			return nil
		}
	}
	return nil
}

// Clear empties the cart. Clearing an absent cart succeeds trivially.
func (s *service) Clear(ctx context.Context, customerID uuid.UUID) error {
	cart, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}
	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
	}
	return nil
}

// MergeGuestCart replays a client-held guest cart through Add after login.
// A redis SETNX latch keyed on (customer, session) ensures the replay runs at
// most once per session. Lines that no longer resolve or lack stock are
// skipped; an infrastructure failure releases the latch so the client can
// retry with its local cart intact.
func (s *service) MergeGuestCart(ctx context.Context, customerID uuid.UUID, input MergeInput) (*MergeResult, error) {
	if input.SessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	key := s.guard.CartMergeKey(customerID.String(), input.SessionID)
	acquired, err := s.guard.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.guardTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: merge guard")
	}
	if !acquired {
		return &MergeResult{}, nil
	}

	result := &MergeResult{}
	for _, line := range input.Lines {
		err := s.Add(ctx, customerID, AddInput{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
		})
		if err == nil {
			result.Merged++
			continue
		}
		if appErr := pkgerrors.As(err); appErr != nil {
			switch appErr.Code() {
			case pkgerrors.CodeNotFound, pkgerrors.CodeStateConflict, pkgerrors.CodeValidation:
				s.logg.Warn(ctx, "guest cart line skipped during merge")
				result.Skipped++
				continue
			}
		}
		if delErr := s.guard.Del(ctx, key); delErr != nil {
			s.logg.Error(ctx, "failed to release cart merge guard", delErr)
		}
		return nil, err
	}
	return result, nil
}
