package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storefrontlabs/storefront-backend/api/controllers"
	"github.com/storefrontlabs/storefront-backend/api/middleware"
	checkoutsvc "github.com/storefrontlabs/storefront-backend/internal/checkout"
	internalorders "github.com/storefrontlabs/storefront-backend/internal/orders"
	product "github.com/storefrontlabs/storefront-backend/internal/products"
	"github.com/storefrontlabs/storefront-backend/pkg/config"
	"github.com/storefrontlabs/storefront-backend/pkg/db"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
	"github.com/storefrontlabs/storefront-backend/pkg/redis"
)

// RouterParams bundles the dependencies the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              *db.Client
	Redis           *redis.Client
	ProductService  product.Service
	OrderService    internalorders.Service
	CheckoutService checkoutsvc.Service
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var dbPinger db.Pinger
	if params.DB != nil {
		dbPinger = params.DB
	}
	var cachePinger redis.Pinger
	if params.Redis != nil {
		cachePinger = params.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, cachePinger, logg))
	})

	if params.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(params.ProductService, logg))
		r.Get("/{productID}", controllers.GetProduct(params.ProductService, logg))
	})

	placementPolicy := middleware.RateLimitPolicy{
		Name:   "order-placement",
		Window: cfg.Checkout.PlacementRateWindow,
		Limit:  cfg.Checkout.PlacementRateLimit,
	}

	var idempotencyStore redis.IdempotencyStore
	if params.Redis != nil {
		idempotencyStore = params.Redis
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, cfg.Checkout.IdempotencyTTL, logg))

		r.With(middleware.RateLimit(placementPolicy, params.Redis, logg)).
			Post("/", controllers.PlaceOrder(params.CheckoutService, params.OrderService, logg))
		r.Get("/", controllers.ListOrders(params.OrderService, logg))
		r.Get("/{orderID}", controllers.GetOrder(params.OrderService, logg))
		r.Post("/{orderID}/cancel", controllers.CancelOrder(params.CheckoutService, params.OrderService, logg))
	})

	return r
}
