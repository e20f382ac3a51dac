package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoangtv-dev/bemart-backend/api/controllers"
	"github.com/hoangtv-dev/bemart-backend/api/middleware"
	authsvc "github.com/hoangtv-dev/bemart-backend/internal/auth"
	cartsvc "github.com/hoangtv-dev/bemart-backend/internal/cart"
	"github.com/hoangtv-dev/bemart-backend/internal/catalog"
	checkoutsvc "github.com/hoangtv-dev/bemart-backend/internal/checkout"
	ordersvc "github.com/hoangtv-dev/bemart-backend/internal/orders"
	"github.com/hoangtv-dev/bemart-backend/pkg/config"
	"github.com/hoangtv-dev/bemart-backend/pkg/db"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
	"github.com/hoangtv-dev/bemart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	authService authsvc.Service,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	orderService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront surface.
		r.Get("/products", controllers.ProductList(catalogService, logg))
		r.Get("/products/{slug}", controllers.ProductBySlug(catalogService, logg))
		r.Get("/categories", controllers.CategoryList(catalogService, logg))
		r.Get("/shipping-zones", controllers.ShippingZoneList(checkoutService, logg))

		// Checkout works for guests too; a valid token upgrades the order to
		// the authenticated customer.
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Patch("/items", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/items", controllers.CartRemoveItem(cartService, logg))
				r.Post("/clear", controllers.CartClear(cartService, logg))
				r.Post("/merge", controllers.CartMerge(cartService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderListMine(orderService, logg))
				r.Get("/{orderId}", controllers.OrderGetMine(orderService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.UserRoleStaff, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(catalogService, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(catalogService, logg))
		})
		r.Patch("/variants/{variantId}", controllers.AdminUpdateVariant(catalogService, logg))
		r.Post("/categories", controllers.AdminCreateCategory(catalogService, logg))
		r.Patch("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(orderService, logg))
	})

	return r
}
