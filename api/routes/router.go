package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/electronicsstore/storefront/api/controllers"
	"github.com/electronicsstore/storefront/api/middleware"
	"github.com/electronicsstore/storefront/api/web"
	"github.com/electronicsstore/storefront/internal/cart"
	"github.com/electronicsstore/storefront/internal/catalog"
	"github.com/electronicsstore/storefront/internal/checkout"
	"github.com/electronicsstore/storefront/pkg/config"
	"github.com/electronicsstore/storefront/pkg/db"
	"github.com/electronicsstore/storefront/pkg/logger"
	"github.com/electronicsstore/storefront/pkg/metrics"
	"github.com/electronicsstore/storefront/pkg/redis"
)

type fixedWindowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	storefrontMetrics *metrics.StorefrontMetrics,
	metricsHandler http.Handler,
	catalogService catalog.Service,
	cartService cart.Service,
	checkoutService checkout.Service,
	viewBuilder controllers.ViewBuilder,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, storefrontMetrics),
	)

	// Typed nils must not reach the interfaces below.
	readiness := map[string]controllers.Pinger{"db": nil, "redis": nil}
	var limiter fixedWindowLimiter
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
		limiter = redisClient
	}

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	cartPolicy := middleware.NewRateLimitPolicy("cart", cfg.RateLimit.CartWindow, cfg.RateLimit.CartLimit)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.SecureCookies(),
		}, logg))
		r.Use(middleware.RateLimit(cartPolicy, limiter, logg))

		r.Get("/", web.Page(viewBuilder, logg))
		r.Route("/cart", func(r chi.Router) {
			r.Post("/add", web.CartAdd(cartService, logg))
			r.Post("/update", web.CartUpdate(cartService, logg))
			r.Post("/remove", web.CartRemove(cartService, logg))
		})
		r.Get("/checkout", web.Checkout(checkoutService, logg))

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.CORS(cfg.App.CORSOrigins))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", controllers.CatalogList(catalogService, logg))
				r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
				r.Get("/{productId}", controllers.CatalogProduct(catalogService, logg))
			})
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
			})
			r.Post("/checkout", controllers.CheckoutRequest(checkoutService, logg))
			r.Get("/storefront", controllers.StorefrontView(viewBuilder, logg))
		})
	})

	return r
}
