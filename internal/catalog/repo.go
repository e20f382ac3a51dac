package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoangtv-dev/bemart-backend/internal/repo"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
)

// Repository provides data access for products, variants, and categories.
type Repository struct {
	repo.Base
}

// NewRepository constructs a catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) Store {
	return &Repository{Base: repo.NewBase(tx)}
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SaveProduct writes all fields of an existing product.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Save(product).Error
}

// DeleteProduct removes a product; variants cascade at the database level.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindProductByID loads one product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductBySlug loads one product with its variants for detail pages.
func (r *Repository) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListVariants returns every variant of a product regardless of active flag.
func (r *Repository) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	var variants []models.Variant
	err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, created_at ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// FindVariantByID loads one variant.
func (r *Repository) FindVariantByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	if err := r.DB(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// CreateVariants batch-inserts generated variants.
func (r *Repository) CreateVariants(ctx context.Context, variants []models.Variant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&variants).Error
}

// DeleteVariants removes variants by id.
func (r *Repository) DeleteVariants(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB(ctx).Where("id IN ?", ids).Delete(&models.Variant{}).Error
}

// SaveVariant writes manual price/stock edits to one variant.
func (r *Repository) SaveVariant(ctx context.Context, variant *models.Variant) error {
	return r.DB(ctx).Save(variant).Error
}

// ActivePriceBounds returns the min and max price across a product's active
// variants. found is false when the product has no active variants.
func (r *Repository) ActivePriceBounds(ctx context.Context, productID uuid.UUID) (min, max int64, found bool, err error) {
	var row struct {
		Min *int64
		Max *int64
	}
	err = r.DB(ctx).
		Model(&models.Variant{}).
		Select("MIN(price) AS min, MAX(price) AS max").
		Where("product_id = ? AND is_active = ?", productID, true).
		Scan(&row).Error
	if err != nil {
		return 0, 0, false, err
	}
	if row.Min == nil || row.Max == nil {
		return 0, 0, false, nil
	}
	return *row.Min, *row.Max, true, nil
}

// UpdatePriceRange writes the denormalized price bounds without touching
// other product columns.
func (r *Repository) UpdatePriceRange(ctx context.Context, productID uuid.UUID, min, max int64) error {
	return r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{"price_min": min, "price_max": max}).Error
}

// CountProductsInCategory counts products currently referencing a category.
func (r *Repository) CountProductsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Product{}).
		Where("? = ANY(category_ids)", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateCategoryCount writes the denormalized product count for a category.
func (r *Repository) UpdateCategoryCount(ctx context.Context, categoryID uuid.UUID, count int64) error {
	return r.DB(ctx).
		Model(&models.Category{}).
		Where("id = ?", categoryID).
		Update("product_count", count).Error
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryByID loads one category.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
