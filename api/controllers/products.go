package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/api/responses"
	"github.com/hoangtv-dev/bemart-backend/api/validators"
	"github.com/hoangtv-dev/bemart-backend/internal/catalog"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// ProductList serves the public catalog browse endpoint.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := parseProductListQuery(r, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductListResponse(result))
	}
}

// ProductBySlug serves the public product detail endpoint.
func ProductBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		product, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// CategoryList serves the public category listing.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]categoryResponse, len(categories))
		for i, category := range categories {
			out[i] = newCategoryResponse(&category)
		}
		responses.WriteSuccess(w, out)
	}
}

func parseProductListQuery(r *http.Request, includeAll bool) (catalog.ListProductsInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return catalog.ListProductsInput{}, err
	}
	categoryID, err := validators.ParseQueryUUID(r, "category_id")
	if err != nil {
		return catalog.ListProductsInput{}, err
	}
	priceMin, err := validators.ParseQueryInt64(r, "price_min")
	if err != nil {
		return catalog.ListProductsInput{}, err
	}
	priceMax, err := validators.ParseQueryInt64(r, "price_max")
	if err != nil {
		return catalog.ListProductsInput{}, err
	}

	return catalog.ListProductsInput{
		Filters: catalog.ProductListFilters{
			CategoryID: categoryID,
			PriceMin:   priceMin,
			PriceMax:   priceMax,
			Query:      validators.SanitizeString(r.URL.Query().Get("q"), 120),
		},
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
		IncludeAll: includeAll,
	}, nil
}

type productListResponse struct {
	Products   []productResponse `json:"products"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

type productResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	SKUCode     string             `json:"sku_code,omitempty"`
	Description *string            `json:"description,omitempty"`
	Price       int64              `json:"price"`
	Stock       int                `json:"stock"`
	PriceMin    int64              `json:"price_min"`
	PriceMax    int64              `json:"price_max"`
	IsActive    bool               `json:"is_active"`
	Image       *string            `json:"image,omitempty"`
	Options     types.OptionGroups `json:"options,omitempty"`
	CategoryIDs []uuid.UUID        `json:"category_ids"`
	Variants    []variantResponse  `json:"variants,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type variantResponse struct {
	ID             uuid.UUID             `json:"id"`
	Options        types.OptionSelection `json:"options"`
	SKU            string                `json:"sku"`
	Price          int64                 `json:"price"`
	CompareAtPrice *int64                `json:"compare_at_price,omitempty"`
	Stock          int                   `json:"stock"`
	IsActive       bool                  `json:"is_active"`
	Image          *string               `json:"image,omitempty"`
	SortOrder      int                   `json:"sort_order"`
}

type categoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Image        *string   `json:"image,omitempty"`
	ProductCount int64     `json:"product_count"`
}

func newProductListResponse(result *catalog.ProductListResult) productListResponse {
	products := make([]productResponse, len(result.Products))
	for i := range result.Products {
		products[i] = newProductResponse(&result.Products[i])
	}
	return productListResponse{Products: products, NextCursor: result.NextCursor}
}

func newProductResponse(product *models.Product) productResponse {
	variants := make([]variantResponse, len(product.Variants))
	for i, variant := range product.Variants {
		variants[i] = newVariantResponse(&variant)
	}
	return productResponse{
		ID:          product.ID,
		Title:       product.Title,
		Slug:        product.Slug,
		SKUCode:     product.SKUCode,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		PriceMin:    product.PriceMin,
		PriceMax:    product.PriceMax,
		IsActive:    product.IsActive,
		Image:       product.Image,
		Options:     product.Options,
		CategoryIDs: []uuid.UUID(product.CategoryIDs),
		Variants:    variants,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func newVariantResponse(variant *models.Variant) variantResponse {
	return variantResponse{
		ID:             variant.ID,
		Options:        variant.Options,
		SKU:            variant.SKU,
		Price:          variant.Price,
		CompareAtPrice: variant.CompareAtPrice,
		Stock:          variant.Stock,
		IsActive:       variant.IsActive,
		Image:          variant.Image,
		SortOrder:      variant.SortOrder,
	}
}

func newCategoryResponse(category *models.Category) categoryResponse {
	return categoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Image:        category.Image,
		ProductCount: category.ProductCount,
	}
}
