package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
)

// Store defines the persistence surface required by the catalog service.
type Store interface {
	WithTx(tx *gorm.DB) Store

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)

	ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	CreateVariants(ctx context.Context, variants []models.Variant) error
	DeleteVariants(ctx context.Context, ids []uuid.UUID) error
	SaveVariant(ctx context.Context, variant *models.Variant) error
	ActivePriceBounds(ctx context.Context, productID uuid.UUID) (min, max int64, found bool, err error)
	UpdatePriceRange(ctx context.Context, productID uuid.UUID, min, max int64) error

	CountProductsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	UpdateCategoryCount(ctx context.Context, categoryID uuid.UUID, count int64) error
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
