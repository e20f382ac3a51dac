package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/api/middleware"
	checkoutsvc "github.com/hoangtv-dev/bemart-backend/internal/checkout"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
)

type stubCheckoutService struct {
	order    *models.Order
	err      error
	identity *checkoutsvc.Identity
	input    checkoutsvc.Input
}

func (s *stubCheckoutService) Checkout(ctx context.Context, identity *checkoutsvc.Identity, input checkoutsvc.Input) (*models.Order, error) {
	s.identity = identity
	s.input = input
	return s.order, s.err
}

func (s *stubCheckoutService) ListShippingZones(ctx context.Context) ([]models.ShippingZone, error) {
	return nil, nil
}

func checkoutBody(productID, zoneID uuid.UUID) string {
	return `{
		"contact": {"name": "Linh", "phone": "0901234567"},
		"items": [{"product_id": "` + productID.String() + `", "quantity": 2}],
		"shipping_zone_id": "` + zoneID.String() + `",
		"address": {"full_name": "Linh", "phone": "0901234567", "address_line": "1 Le Loi", "district": "1", "city": "HCMC"},
		"payment_method": "cod"
	}`
}

func TestCheckoutGuestPassesNilIdentity(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	zoneID := uuid.New()
	svc := &stubCheckoutService{order: &models.Order{OrderCode: "ORD-test"}}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody(productID, zoneID)))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.identity != nil {
		t.Fatal("expected nil identity for guest checkout")
	}
	if svc.input.PaymentMethod != enums.PaymentMethodCOD {
		t.Fatalf("expected cod got %s", svc.input.PaymentMethod)
	}
	if len(svc.input.Items) != 1 || svc.input.Items[0].ProductID != productID || svc.input.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", svc.input.Items)
	}
}

func TestCheckoutForwardsAuthenticatedIdentity(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	phone := "0907777777"
	svc := &stubCheckoutService{order: &models.Order{}}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody(uuid.New(), uuid.New())))
	ctx := middleware.WithIdentity(req.Context(), middleware.Identity{
		UserID: userID,
		Email:  "linh@example.com",
		Name:   "Linh Nguyen",
		Phone:  &phone,
		Role:   enums.UserRoleCustomer,
	})
	resp := httptest.NewRecorder()
	handler(resp, req.WithContext(ctx))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.identity == nil {
		t.Fatal("expected identity to be forwarded")
	}
	if svc.identity.UserID != userID || svc.identity.Email != "linh@example.com" || svc.identity.Phone != phone {
		t.Fatalf("unexpected identity %+v", svc.identity)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{order: &models.Order{}}
	handler := Checkout(svc, nil)

	body := strings.Replace(checkoutBody(uuid.New(), uuid.New()), `"cod"`, `"crypto"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
}

func TestCheckoutPropagatesServiceErrors(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeConfiguration, "no active payment configuration")}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody(uuid.New(), uuid.New())))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
