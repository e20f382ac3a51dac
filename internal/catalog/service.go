package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/pkg/db"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	dbtypes "github.com/hoangtv-dev/bemart-backend/pkg/db/types"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Service exposes catalog management and browsing operations. Every product
// write re-derives the dependent state in the same transaction: generated
// variants, the denormalized price range, and category product counts.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, input UpdateVariantInput) (*models.Variant, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// OptionValueInput is one selectable value submitted for an option group. ID
// is kept when resubmitting an existing value so variants stay matched; new
// values leave it empty and get a slug-derived id.
type OptionValueInput struct {
	ID    string
	Label string
}

// OptionGroupInput is one option axis submitted on a product write.
type OptionGroupInput struct {
	Label  string
	Values []OptionValueInput
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title       string
	SKUCode     string
	Description *string
	Price       int64
	Stock       int
	IsActive    bool
	Image       *string
	Options     []OptionGroupInput
	CategoryIDs []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product. Options
// and CategoryIDs replace the whole list when present.
type UpdateProductInput struct {
	Title       *string
	SKUCode     *string
	Description *string
	Price       *int64
	Stock       *int
	IsActive    *bool
	Image       *string
	Options     *[]OptionGroupInput
	CategoryIDs *[]uuid.UUID
}

// UpdateVariantInput carries the manual per-variant edits that survive
// regeneration.
type UpdateVariantInput struct {
	Price          *int64
	CompareAtPrice *int64
	Stock          *int
	IsActive       *bool
	Image          *string
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name  string
	Image *string
}

type service struct {
	store Store
	tx    txRunner
}

// NewService constructs a catalog service instance.
func NewService(store Store, tx txRunner) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{store: store, tx: tx}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	groups, err := buildOptionGroups(input.Options)
	if err != nil {
		return nil, err
	}
	slug := Slugify(title)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must contain at least one alphanumeric character")
	}

	product := &models.Product{
		Title:       title,
		Slug:        slug,
		SKUCode:     strings.ToUpper(strings.TrimSpace(input.SKUCode)),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		PriceMin:    input.Price,
		PriceMax:    input.Price,
		IsActive:    input.IsActive,
		Image:       input.Image,
		Options:     groups,
		CategoryIDs: dbtypes.UUIDArray(input.CategoryIDs),
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txStore := s.store.WithTx(tx)
		if _, err := txStore.CreateProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a product with this title already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return s.syncDerivedState(ctx, txStore, product, nil)
	}); err != nil {
		return nil, coerceDependency(err, "create product")
	}

	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	var updated *models.Product
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txStore := s.store.WithTx(tx)

		product, err := txStore.FindProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		oldCategories := append(dbtypes.UUIDArray(nil), product.CategoryIDs...)

		if err := applyProductUpdate(product, input); err != nil {
			return err
		}
		if err := txStore.SaveProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a product with this title already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
		}
		if err := s.syncDerivedState(ctx, txStore, product, oldCategories); err != nil {
			return err
		}
		updated = product
		return nil
	}); err != nil {
		return nil, coerceDependency(err, "update product")
	}

	return updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txStore := s.store.WithTx(tx)

		product, err := txStore.FindProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if err := txStore.DeleteProduct(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		return recountCategories(ctx, txStore, product.CategoryIDs)
	}); err != nil {
		return coerceDependency(err, "delete product")
	}
	return nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.store.FindProductBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.store.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return result, nil
}

func (s *service) UpdateVariant(ctx context.Context, variantID uuid.UUID, input UpdateVariantInput) (*models.Variant, error) {
	if input.Price != nil && *input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	var updated *models.Variant
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txStore := s.store.WithTx(tx)

		variant, err := txStore.FindVariantByID(ctx, variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant")
		}
		if input.Price != nil {
			variant.Price = *input.Price
		}
		if input.CompareAtPrice != nil {
			variant.CompareAtPrice = input.CompareAtPrice
		}
		if input.Stock != nil {
			variant.Stock = *input.Stock
		}
		if input.IsActive != nil {
			variant.IsActive = *input.IsActive
		}
		if input.Image != nil {
			variant.Image = input.Image
		}
		if err := txStore.SaveVariant(ctx, variant); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save variant")
		}

		product, err := txStore.FindProductByID(ctx, variant.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if err := refreshPriceRange(ctx, txStore, product); err != nil {
			return err
		}
		updated = variant
		return nil
	}); err != nil {
		return nil, coerceDependency(err, "update variant")
	}

	return updated, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must contain at least one alphanumeric character")
	}

	category, err := s.store.CreateCategory(ctx, &models.Category{
		Name:  name,
		Slug:  slug,
		Image: input.Image,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return categories, nil
}

// syncDerivedState reconciles generated variants, refreshes the price range,
// and recounts every category the product was added to or removed from. Runs
// inside the same transaction as the product write.
func (s *service) syncDerivedState(ctx context.Context, store Store, product *models.Product, oldCategories dbtypes.UUIDArray) error {
	existing, err := store.ListVariants(ctx, product.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list variants")
	}
	plan := PlanVariants(product, existing)
	if err := store.CreateVariants(ctx, plan.Create); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variants")
	}
	if err := store.DeleteVariants(ctx, plan.DeleteID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variants")
	}

	if err := refreshPriceRange(ctx, store, product); err != nil {
		return err
	}

	return recountCategories(ctx, store, unionCategories(oldCategories, product.CategoryIDs))
}

// refreshPriceRange recomputes min/max over active variant prices, falling
// back to the base price when none exist. The write is skipped when the
// stored bounds already match.
func refreshPriceRange(ctx context.Context, store Store, product *models.Product) error {
	min, max, found, err := store.ActivePriceBounds(ctx, product.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: price bounds")
	}
	if !found {
		min, max = product.Price, product.Price
	}
	if min == product.PriceMin && max == product.PriceMax {
		return nil
	}
	if err := store.UpdatePriceRange(ctx, product.ID, min, max); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update price range")
	}
	product.PriceMin = min
	product.PriceMax = max
	return nil
}

func recountCategories(ctx context.Context, store Store, categoryIDs dbtypes.UUIDArray) error {
	for _, categoryID := range categoryIDs {
		count, err := store.CountProductsInCategory(ctx, categoryID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count category products")
		}
		if err := store.UpdateCategoryCount(ctx, categoryID, count); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category count")
		}
	}
	return nil
}

func unionCategories(old, current dbtypes.UUIDArray) dbtypes.UUIDArray {
	seen := make(map[uuid.UUID]struct{}, len(old)+len(current))
	var union dbtypes.UUIDArray
	for _, ids := range []dbtypes.UUIDArray{old, current} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	return union
}

// buildOptionGroups derives group keys and value ids from submitted labels
// and enforces uniqueness of both within the product.
func buildOptionGroups(inputs []OptionGroupInput) (types.OptionGroups, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	groups := make(types.OptionGroups, 0, len(inputs))
	seenKeys := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		label := strings.TrimSpace(in.Label)
		key := Slugify(label)
		if key == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option group label is required")
		}
		if _, dup := seenKeys[key]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate option group %q", key))
		}
		seenKeys[key] = struct{}{}

		if len(in.Values) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option group %q needs at least one value", key))
		}
		values := make([]types.OptionValue, 0, len(in.Values))
		seenIDs := make(map[string]struct{}, len(in.Values))
		for _, v := range in.Values {
			valueLabel := strings.TrimSpace(v.Label)
			id := strings.TrimSpace(v.ID)
			if id == "" {
				id = Slugify(valueLabel)
			}
			if id == "" {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option value label is required in group %q", key))
			}
			if _, dup := seenIDs[id]; dup {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate option value %q in group %q", id, key))
			}
			seenIDs[id] = struct{}{}
			values = append(values, types.OptionValue{ID: id, Label: valueLabel})
		}
		groups = append(groups, types.OptionGroup{Key: key, Label: label, Values: values})
	}
	return groups, nil
}

func applyProductUpdate(product *models.Product, input UpdateProductInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		product.Title = title
	}
	if input.SKUCode != nil {
		product.SKUCode = strings.ToUpper(strings.TrimSpace(*input.SKUCode))
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Options != nil {
		groups, err := buildOptionGroups(*input.Options)
		if err != nil {
			return err
		}
		product.Options = groups
	}
	if input.CategoryIDs != nil {
		product.CategoryIDs = dbtypes.UUIDArray(*input.CategoryIDs)
	}
	return nil
}

// coerceDependency keeps typed errors intact and wraps anything else that
// escaped the transaction closure.
func coerceDependency(err error, op string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
