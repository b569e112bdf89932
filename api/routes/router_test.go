package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	checkoutsvc "github.com/storefrontlabs/storefront-backend/internal/checkout"
	internalorders "github.com/storefrontlabs/storefront-backend/internal/orders"
	product "github.com/storefrontlabs/storefront-backend/internal/products"
	pkgauth "github.com/storefrontlabs/storefront-backend/pkg/auth"
	"github.com/storefrontlabs/storefront-backend/pkg/config"
	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
	"github.com/storefrontlabs/storefront-backend/pkg/pagination"
)

type stubProductService struct{}

func (stubProductService) GetProduct(context.Context, uuid.UUID) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (stubProductService) ListProducts(context.Context, pagination.Params, product.ProductListFilters) (*product.ProductListResult, error) {
	return &product.ProductListResult{}, nil
}

func (stubProductService) LoadVariantsForPurchase(context.Context, []uuid.UUID) (map[uuid.UUID]models.ProductVariant, error) {
	return nil, nil
}

type stubOrderService struct{}

func (stubOrderService) GetOrder(context.Context, uuid.UUID, uuid.UUID) (*internalorders.OrderDetail, error) {
	return &internalorders.OrderDetail{}, nil
}

func (stubOrderService) ListOrders(context.Context, uuid.UUID, pagination.Params, internalorders.OrderFilters) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) PlaceOrder(context.Context, uuid.UUID, checkoutsvc.PlaceOrderInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubCheckoutService) CancelOrder(context.Context, uuid.UUID, uuid.UUID, string) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubCheckoutService) RecoverStuckOrders(context.Context) (int, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "storefront-test",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "routes-test", Output: io.Discard})
	return NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logg,
		ProductService:  stubProductService{},
		OrderService:    stubOrderService{},
		CheckoutService: stubCheckoutService{},
	})
}

func TestPublicRoutesAreOpen(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testConfig())

	for _, path := range []string{"/health/live", "/health/ready", "/api/v1/products"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestOrderRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", rec.Code)
	}
}

func TestOrderRoutesAcceptValidToken(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	router := newTestRouter(cfg)

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		CustomerID: uuid.New(),
		Role:       "customer",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/warehouses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
