package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/hoangtv-dev/bemart-backend/internal/auth"
	cartsvc "github.com/hoangtv-dev/bemart-backend/internal/cart"
	"github.com/hoangtv-dev/bemart-backend/internal/catalog"
	checkoutsvc "github.com/hoangtv-dev/bemart-backend/internal/checkout"
	ordersvc "github.com/hoangtv-dev/bemart-backend/internal/orders"
	pkgAuth "github.com/hoangtv-dev/bemart-backend/pkg/auth"
	"github.com/hoangtv-dev/bemart-backend/pkg/config"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
	"github.com/hoangtv-dev/bemart-backend/pkg/pagination"
	"github.com/hoangtv-dev/bemart-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, input authsvc.RegisterInput) (*authsvc.Result, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.Result, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubCatalogService struct{}

func (stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input catalog.UpdateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return nil
}

func (stubCatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return &models.Product{Slug: slug}, nil
}

func (stubCatalogService) ListProducts(ctx context.Context, input catalog.ListProductsInput) (*catalog.ProductListResult, error) {
	return &catalog.ProductListResult{}, nil
}

func (stubCatalogService) UpdateVariant(ctx context.Context, variantID uuid.UUID, input catalog.UpdateVariantInput) (*models.Variant, error) {
	return &models.Variant{}, nil
}

func (stubCatalogService) CreateCategory(ctx context.Context, input catalog.CreateCategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) GetMyCart(ctx context.Context, customerID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) Add(ctx context.Context, customerID uuid.UUID, input cartsvc.AddInput) error {
	return nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, input cartsvc.UpdateQuantityInput) error {
	return nil
}

func (stubCartService) Remove(ctx context.Context, customerID uuid.UUID, productID uuid.UUID, variantID *uuid.UUID) error {
	return nil
}

func (stubCartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	return nil
}

func (stubCartService) MergeGuestCart(ctx context.Context, customerID uuid.UUID, input cartsvc.MergeInput) (*cartsvc.MergeResult, error) {
	return &cartsvc.MergeResult{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Checkout(ctx context.Context, identity *checkoutsvc.Identity, input checkoutsvc.Input) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubCheckoutService) ListShippingZones(ctx context.Context) ([]models.ShippingZone, error) {
	return nil, nil
}

type stubOrderService struct{}

func (stubOrderService) ListMine(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ordersvc.ListMineResult, error) {
	return &ordersvc.ListMineResult{}, nil
}

func (stubOrderService) GetMine(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrderService) ApplyStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	return &models.Order{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "bemart-test", ExpirationMinutes: 30},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubAuthService{},
		stubCatalogService{},
		stubCartService{},
		stubCheckoutService{},
		stubOrderService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "router@example.com",
		Name:   "Router Test",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/api/v1/products", "/api/v1/products/ao-thun", "/api/v1/categories", "/api/v1/shipping-zones"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestCartRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCartSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCheckoutAllowsGuests(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := strings.NewReader(`{"contact":{"name":"Linh","phone":"0901234567"},"items":[{"product_id":"` + uuid.NewString() + `","quantity":1}],"shipping_zone_id":"` + uuid.NewString() + `","address":{"full_name":"Linh","phone":"0901234567","address_line":"1 Le Loi","district":"1","city":"HCMC"},"payment_method":"cod"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for guest checkout got %d", resp.Code)
	}
}

func TestAdminGroupRequiresStaffRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	staff := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d", resp.Code)
	}
}

func TestOrdersRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}
