package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	CategoryID *uuid.UUID
	PriceMin   *int64
	PriceMax   *int64
	Query      string
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
	IncludeAll bool // admin listings include inactive products
}

// ProductListResult is one page of products plus the cursor for the next one.
type ProductListResult struct {
	Products   []models.Product
	NextCursor string
}

// ListProducts returns a keyset-paginated page of products, newest first.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.DB(ctx).Model(&models.Product{})
	if !input.IncludeAll {
		query = query.Where("is_active = ?", true)
	}
	if input.Filters.CategoryID != nil {
		query = query.Where("? = ANY(category_ids)", *input.Filters.CategoryID)
	}
	if input.Filters.PriceMin != nil {
		query = query.Where("price_max >= ?", *input.Filters.PriceMin)
	}
	if input.Filters.PriceMax != nil {
		query = query.Where("price_min <= ?", *input.Filters.PriceMax)
	}
	if q := strings.TrimSpace(input.Filters.Query); q != "" {
		query = query.Where("title ILIKE ?", "%"+q+"%")
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var products []models.Product
	err = query.
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	result := &ProductListResult{Products: products}
	if len(products) > limit {
		result.Products = products[:limit]
		last := result.Products[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}
