package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/api/middleware"
	"github.com/hoangtv-dev/bemart-backend/api/responses"
	"github.com/hoangtv-dev/bemart-backend/api/validators"
	ordersvc "github.com/hoangtv-dev/bemart-backend/internal/orders"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
	"github.com/hoangtv-dev/bemart-backend/pkg/types"
)

// OrderListMine returns the caller's order history, newest first.
func OrderListMine(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customerID := middleware.UserIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMine(r.Context(), customerID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders := make([]orderResponse, len(result.Orders))
		for i := range result.Orders {
			orders[i] = newOrderResponse(&result.Orders[i])
		}
		responses.WriteSuccess(w, orderListResponse{Orders: orders, NextCursor: result.NextCursor})
	}
}

// OrderGetMine returns one of the caller's orders by id.
func OrderGetMine(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customerID := middleware.UserIDFromContext(r.Context())
		if customerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetMine(r.Context(), customerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// AdminUpdateOrderStatus moves an order through its fulfillment lifecycle.
func AdminUpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.ApplyStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderListResponse struct {
	Orders     []orderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type orderResponse struct {
	ID               uuid.UUID              `json:"id"`
	OrderCode        string                 `json:"order_code"`
	CustomerName     string                 `json:"customer_name"`
	CustomerEmail    string                 `json:"customer_email"`
	CustomerPhone    string                 `json:"customer_phone"`
	Items            []orderItemResponse    `json:"items"`
	ShippingSnapshot types.ShippingSnapshot `json:"shipping_snapshot"`
	PaymentMethod    enums.PaymentMethod    `json:"payment_method"`
	PaymentStatus    enums.PaymentStatus    `json:"payment_status"`
	PaymentSnapshot  *types.PaymentSnapshot `json:"payment_snapshot,omitempty"`
	Subtotal         int64                  `json:"subtotal"`
	Discount         int64                  `json:"discount"`
	ShippingFee      int64                  `json:"shipping_fee"`
	Total            int64                  `json:"total"`
	Status           enums.OrderStatus      `json:"status"`
	Timeline         types.Timeline         `json:"timeline"`
	CreatedAt        time.Time              `json:"created_at"`
}

type orderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name,omitempty"`
	VariantSKU  string    `json:"variant_sku,omitempty"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	Image       *string   `json:"image,omitempty"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			VariantSKU:  item.VariantSKU,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Image:       item.Image,
		}
	}
	return orderResponse{
		ID:               order.ID,
		OrderCode:        order.OrderCode,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		Items:            items,
		ShippingSnapshot: order.ShippingSnapshot,
		PaymentMethod:    order.PaymentMethod,
		PaymentStatus:    order.PaymentStatus,
		PaymentSnapshot:  order.PaymentSnapshot,
		Subtotal:         order.Subtotal,
		Discount:         order.Discount,
		ShippingFee:      order.ShippingFee,
		Total:            order.Total,
		Status:           order.Status,
		Timeline:         order.Timeline,
		CreatedAt:        order.CreatedAt,
	}
}
