package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/api/middleware"
	"github.com/hoangtv-dev/bemart-backend/api/responses"
	"github.com/hoangtv-dev/bemart-backend/api/validators"
	checkoutsvc "github.com/hoangtv-dev/bemart-backend/internal/checkout"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// Checkout turns the submitted items into an immutable order. Works for both
// guests and logged-in customers; an authenticated identity overrides the
// submitted contact fields.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		items := make([]checkoutsvc.Item, len(payload.Items))
		for i, item := range payload.Items {
			items[i] = checkoutsvc.Item{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			}
		}

		var identity *checkoutsvc.Identity
		if caller := middleware.IdentityFromContext(r.Context()); caller != nil {
			phone := ""
			if caller.Phone != nil {
				phone = *caller.Phone
			}
			identity = &checkoutsvc.Identity{
				UserID: caller.UserID,
				Name:   caller.Name,
				Email:  caller.Email,
				Phone:  phone,
			}
		}

		order, err := svc.Checkout(r.Context(), identity, checkoutsvc.Input{
			Contact: checkoutsvc.Contact{
				Name:  payload.Contact.Name,
				Email: payload.Contact.Email,
				Phone: payload.Contact.Phone,
			},
			Items:          items,
			ShippingZoneID: payload.ShippingZoneID,
			Address:        payload.Address,
			PaymentMethod:  method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

// ShippingZoneList returns the active delivery zones shown at checkout.
func ShippingZoneList(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		zones, err := svc.ListShippingZones(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]shippingZoneResponse, len(zones))
		for i, zone := range zones {
			out[i] = newShippingZoneResponse(&zone)
		}
		responses.WriteSuccess(w, out)
	}
}

type checkoutContactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type checkoutItemPayload struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

type checkoutRequest struct {
	Contact        checkoutContactPayload `json:"contact"`
	Items          []checkoutItemPayload  `json:"items" validate:"dive"`
	ShippingZoneID uuid.UUID              `json:"shipping_zone_id" validate:"required"`
	Address        types.ShippingAddress  `json:"address"`
	PaymentMethod  string                 `json:"payment_method" validate:"required"`
}

type shippingZoneResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Fee  int64     `json:"fee"`
}

func newShippingZoneResponse(zone *models.ShippingZone) shippingZoneResponse {
	return shippingZoneResponse{ID: zone.ID, Name: zone.Name, Fee: zone.Fee}
}
