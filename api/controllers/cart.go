package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/api/middleware"
	"github.com/hoangtv-dev/bemart-backend/api/responses"
	"github.com/hoangtv-dev/bemart-backend/api/validators"
	cartsvc "github.com/hoangtv-dev/bemart-backend/internal/cart"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
)

// CartFetch returns the caller's hydrated cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, svc == nil, logg)
		if !ok {
			return
		}

		cart, err := svc.GetMyCart(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartAddItem adds a product (or one of its variants) to the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, svc == nil, logg)
		if !ok {
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.Add(r.Context(), customerID, cartsvc.AddInput{
			ProductID: payload.ProductID,
			VariantID: payload.VariantID,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCart(w, r, svc, customerID, logg)
	}
}

// CartUpdateItem replaces the quantity on an existing line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, svc == nil, logg)
		if !ok {
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.UpdateQuantity(r.Context(), customerID, cartsvc.UpdateQuantityInput{
			ProductID: payload.ProductID,
			VariantID: payload.VariantID,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCart(w, r, svc, customerID, logg)
	}
}

// CartRemoveItem drops a line from the cart. The line is addressed via query
// parameters so the DELETE carries no body.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, svc == nil, logg)
		if !ok {
			return
		}

		productID, err := validators.ParseQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if productID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required"))
			return
		}
		variantID, err := validators.ParseQueryUUID(r, "variant_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), customerID, *productID, variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCart(w, r, svc, customerID, logg)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, svc == nil, logg)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CartMerge replays a guest cart captured client-side before login.
func CartMerge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := requireCustomer(w, r, svc == nil, logg)
		if !ok {
			return
		}

		var payload mergeCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]cartsvc.GuestLine, len(payload.Lines))
		for i, line := range payload.Lines {
			lines[i] = cartsvc.GuestLine{
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
			}
		}

		result, err := svc.MergeGuestCart(r.Context(), customerID, cartsvc.MergeInput{
			SessionID: payload.SessionID,
			Lines:     lines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type cartItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

type guestLinePayload struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

type mergeCartRequest struct {
	SessionID string             `json:"session_id" validate:"required"`
	Lines     []guestLinePayload `json:"lines" validate:"dive"`
}

func requireCustomer(w http.ResponseWriter, r *http.Request, svcMissing bool, logg *logger.Logger) (uuid.UUID, bool) {
	if svcMissing {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return uuid.Nil, false
	}
	customerID := middleware.UserIDFromContext(r.Context())
	if customerID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
		return uuid.Nil, false
	}
	return customerID, true
}

// writeCart re-reads and returns the cart after a mutation so clients do not
// need a follow-up fetch.
func writeCart(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, customerID uuid.UUID, logg *logger.Logger) {
	cart, err := svc.GetMyCart(r.Context(), customerID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, cart)
}
