package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/internal/cart"
	"github.com/hoangtv-dev/bemart-backend/internal/catalog"
	"github.com/hoangtv-dev/bemart-backend/internal/orders"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Identity is the authenticated caller placing the order. Nil means guest
// checkout; when present, its contact fields override whatever the client
// submitted.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Phone  string
}

// Item is one purchased line submitted at checkout.
type Item struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// Input is the full checkout payload.
type Input struct {
	Contact        Contact
	Items          []Item
	ShippingZoneID uuid.UUID
	Address        types.ShippingAddress
	PaymentMethod  enums.PaymentMethod
}

// Contact carries the client-submitted contact fields, used as-is for guests
// and as fallback defaults for authenticated callers.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Service builds immutable order snapshots and lists shipping zones.
type Service interface {
	Checkout(ctx context.Context, identity *Identity, input Input) (*models.Order, error)
	ListShippingZones(ctx context.Context) ([]models.ShippingZone, error)
}

type configStore interface {
	ListActiveZones(ctx context.Context) ([]models.ShippingZone, error)
	FindZoneByID(ctx context.Context, id uuid.UUID) (*models.ShippingZone, error)
	FindActivePaymentConfig(ctx context.Context) (*models.PaymentConfig, error)
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	config    configStore
	products  productLoader
	orderRepo orders.OrderRepository
	cartRepo  cart.CartRepository
	tx        txRunner
	now       func() time.Time
}

// NewService constructs a checkout service instance.
func NewService(config configStore, products productLoader, orderRepo orders.OrderRepository, cartRepo cart.CartRepository, tx txRunner) (Service, error) {
	if config == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		config:    config,
		products:  products,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		tx:        tx,
		now:       time.Now,
	}, nil
}

// Checkout freezes the submitted items into an order snapshot. Order creation
// and the clearing of the caller's cart happen in one transaction.
func (s *service) Checkout(ctx context.Context, identity *Identity, input Input) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if err := validateAddress(input.Address); err != nil {
		return nil, err
	}

	zone, err := s.resolveZone(ctx, input.ShippingZoneID)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := s.freezeItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &models.Order{
		OrderCode: "ORD-" + uuid.NewString(),
		Items:     items,
		ShippingSnapshot: types.ShippingSnapshot{
			ZoneName: zone.Name,
			Fee:      zone.Fee,
			Address:  input.Address,
		},
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enums.PaymentStatusUnpaid,
		Subtotal:      subtotal,
		Discount:      0,
		ShippingFee:   zone.Fee,
		Total:         subtotal + zone.Fee,
		Status:        enums.OrderStatusPending,
		Timeline:      orders.InitialTimeline(now),
	}

	applyContact(order, identity, input.Contact)
	if order.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact name is required")
	}
	if order.CustomerEmail == "" && order.CustomerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact email or phone is required")
	}
	if err := s.applyPaymentSnapshot(ctx, order); err != nil {
		return nil, err
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		if identity == nil {
			return nil
		}
		return s.clearCart(ctx, tx, identity.UserID)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}

	return order, nil
}

func (s *service) ListShippingZones(ctx context.Context) ([]models.ShippingZone, error) {
	zones, err := s.config.ListActiveZones(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list shipping zones")
	}
	return zones, nil
}

func (s *service) resolveZone(ctx context.Context, zoneID uuid.UUID) (*models.ShippingZone, error) {
	if zoneID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping zone is required")
	}
	zone, err := s.config.FindZoneByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipping zone not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load shipping zone")
	}
	if !zone.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "shipping zone is unavailable")
	}
	return zone, nil
}

// freezeItems resolves every submitted line against the live catalog and
// copies the display data into frozen order lines. The subtotal is summed
// here; client-submitted totals are never trusted.
func (s *service) freezeItems(ctx context.Context, items []Item) ([]models.OrderItem, int64, error) {
	frozen := make([]models.OrderItem, 0, len(items))
	var subtotal int64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		product, err := s.products.FindProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if !product.IsActive {
			return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%s is unavailable", product.Title))
		}

		line := models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Title,
			Quantity:    item.Quantity,
			Image:       product.Image,
		}
		switch {
		case product.HasOptions():
			if item.VariantID == nil {
				return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant is required for %s", product.Title))
			}
			variant, err := s.products.FindVariantByID(ctx, *item.VariantID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
				}
				return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant")
			}
			if variant.ProductID != product.ID {
				return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			if !variant.IsActive {
				return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%s is unavailable", product.Title))
			}
			if variant.Stock < item.Quantity {
				return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("insufficient stock for %s", product.Title))
			}
			line.VariantName = catalog.SelectionLabel(product.Options, variant.Options)
			line.VariantSKU = variant.SKU
			line.Price = variant.Price
			if variant.Image != nil {
				line.Image = variant.Image
			}
		default:
			if item.VariantID != nil {
				return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s has no variants", product.Title))
			}
			if product.Stock < item.Quantity {
				return nil, 0, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("insufficient stock for %s", product.Title))
			}
			line.Price = product.Price
		}

		subtotal += line.Price * int64(line.Quantity)
		frozen = append(frozen, line)
	}
	return frozen, subtotal, nil
}

// applyContact resolves the contact fields on the order. The authenticated
// identity wins; client-submitted values fill whatever it leaves blank, which
// is everything for guests.
func applyContact(order *models.Order, identity *Identity, contact Contact) {
	order.CustomerName = strings.TrimSpace(contact.Name)
	order.CustomerEmail = strings.TrimSpace(contact.Email)
	order.CustomerPhone = strings.TrimSpace(contact.Phone)
	if identity == nil {
		return
	}
	order.CustomerID = &identity.UserID
	if name := strings.TrimSpace(identity.Name); name != "" {
		order.CustomerName = name
	}
	if email := strings.TrimSpace(identity.Email); email != "" {
		order.CustomerEmail = email
	}
	if phone := strings.TrimSpace(identity.Phone); phone != "" {
		order.CustomerPhone = phone
	}
}

// applyPaymentSnapshot embeds the active bank config for transfer orders.
// Without one, a transfer order cannot be paid, so creation is aborted.
func (s *service) applyPaymentSnapshot(ctx context.Context, order *models.Order) error {
	if order.PaymentMethod != enums.PaymentMethodBank {
		return nil
	}
	config, err := s.config.FindActivePaymentConfig(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "no active payment configuration")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load payment config")
	}
	order.PaymentSnapshot = &types.PaymentSnapshot{
		BankName:      config.BankName,
		AccountName:   config.AccountName,
		AccountNumber: config.AccountNumber,
		QRCodeURL:     config.QRCodeURL,
		TransferNote:  "PAY-" + order.OrderCode,
	}
	return nil
}

func (s *service) clearCart(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	cartRepo := s.cartRepo.WithTx(tx)
	record, err := cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}
	if err := cartRepo.ClearItems(ctx, record.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
	}
	return nil
}

func validateAddress(address types.ShippingAddress) error {
	if strings.TrimSpace(address.FullName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient name is required")
	}
	if strings.TrimSpace(address.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient phone is required")
	}
	if strings.TrimSpace(address.AddressLine) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if strings.TrimSpace(address.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	return nil
}
