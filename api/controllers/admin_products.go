package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/api/responses"
	"github.com/hoangtv-dev/bemart-backend/api/validators"
	"github.com/hoangtv-dev/bemart-backend/internal/catalog"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
)

// AdminProductList lists the catalog for staff, inactive products included.
func AdminProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := parseProductListQuery(r, true)
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

// AdminCreateProduct creates a product and generates its variants.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(product))
	}
}

// AdminUpdateProduct applies a partial update and regenerates derived state.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// AdminDeleteProduct removes a product and recounts its categories.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminUpdateVariant edits the manually managed fields on one variant.
func AdminUpdateVariant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := uuid.Parse(chi.URLParam(r, "variantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}

		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.UpdateVariant(r.Context(), variantID, catalog.UpdateVariantInput{
			Price:          payload.Price,
			CompareAtPrice: payload.CompareAtPrice,
			Stock:          payload.Stock,
			IsActive:       payload.IsActive,
			Image:          payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newVariantResponse(variant))
	}
}

// AdminCreateCategory creates a browsing category.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Name:  payload.Name,
			Image: payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCategoryResponse(category))
	}
}

type optionValuePayload struct {
	ID    string `json:"id"`
	Label string `json:"label" validate:"required"`
}

type optionGroupPayload struct {
	Label  string               `json:"label" validate:"required"`
	Values []optionValuePayload `json:"values" validate:"required,min=1,dive"`
}

type createProductRequest struct {
	Title       string               `json:"title" validate:"required"`
	SKUCode     string               `json:"sku_code"`
	Description *string              `json:"description,omitempty"`
	Price       int64                `json:"price" validate:"min=0"`
	Stock       int                  `json:"stock" validate:"min=0"`
	IsActive    bool                 `json:"is_active"`
	Image       *string              `json:"image,omitempty"`
	Options     []optionGroupPayload `json:"options,omitempty" validate:"omitempty,dive"`
	CategoryIDs []uuid.UUID          `json:"category_ids,omitempty"`
}

type updateProductRequest struct {
	Title       *string               `json:"title,omitempty"`
	SKUCode     *string               `json:"sku_code,omitempty"`
	Description *string               `json:"description,omitempty"`
	Price       *int64                `json:"price,omitempty" validate:"omitempty,min=0"`
	Stock       *int                  `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool                 `json:"is_active,omitempty"`
	Image       *string               `json:"image,omitempty"`
	Options     *[]optionGroupPayload `json:"options,omitempty" validate:"omitempty,dive"`
	CategoryIDs *[]uuid.UUID          `json:"category_ids,omitempty"`
}

type updateVariantRequest struct {
	Price          *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	CompareAtPrice *int64  `json:"compare_at_price,omitempty" validate:"omitempty,min=0"`
	Stock          *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool   `json:"is_active,omitempty"`
	Image          *string `json:"image,omitempty"`
}

type createCategoryRequest struct {
	Name  string  `json:"name" validate:"required"`
	Image *string `json:"image,omitempty"`
}

func (r createProductRequest) toInput() catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Title:       r.Title,
		SKUCode:     r.SKUCode,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
		Image:       r.Image,
		Options:     toOptionGroupInputs(r.Options),
		CategoryIDs: r.CategoryIDs,
	}
}

func (r updateProductRequest) toInput() catalog.UpdateProductInput {
	input := catalog.UpdateProductInput{
		Title:       r.Title,
		SKUCode:     r.SKUCode,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
		Image:       r.Image,
		CategoryIDs: r.CategoryIDs,
	}
	if r.Options != nil {
		groups := toOptionGroupInputs(*r.Options)
		input.Options = &groups
	}
	return input
}

func toOptionGroupInputs(payloads []optionGroupPayload) []catalog.OptionGroupInput {
	if len(payloads) == 0 {
		return nil
	}
	groups := make([]catalog.OptionGroupInput, len(payloads))
	for i, group := range payloads {
		values := make([]catalog.OptionValueInput, len(group.Values))
		for j, value := range group.Values {
			values[j] = catalog.OptionValueInput{ID: value.ID, Label: value.Label}
		}
		groups[i] = catalog.OptionGroupInput{Label: group.Label, Values: values}
	}
	return groups
}
