package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storefrontlabs/storefront-backend/api/middleware"
	checkoutsvc "github.com/storefrontlabs/storefront-backend/internal/checkout"
	internalorders "github.com/storefrontlabs/storefront-backend/internal/orders"
	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	"github.com/storefrontlabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
	"github.com/storefrontlabs/storefront-backend/pkg/pagination"
)

type fakeCheckoutService struct {
	order     *models.Order
	placeErr  error
	cancelErr error
	lastInput checkoutsvc.PlaceOrderInput
}

func (f *fakeCheckoutService) PlaceOrder(_ context.Context, _ uuid.UUID, input checkoutsvc.PlaceOrderInput) (*models.Order, error) {
	f.lastInput = input
	return f.order, f.placeErr
}

func (f *fakeCheckoutService) CancelOrder(_ context.Context, _, _ uuid.UUID, _ string) (*models.Order, error) {
	return f.order, f.cancelErr
}

func (f *fakeCheckoutService) RecoverStuckOrders(context.Context) (int, error) {
	return 0, nil
}

type fakeOrderService struct {
	detail *internalorders.OrderDetail
	list   *internalorders.OrderList
	err    error
}

func (f *fakeOrderService) GetOrder(_ context.Context, _, _ uuid.UUID) (*internalorders.OrderDetail, error) {
	return f.detail, f.err
}

func (f *fakeOrderService) ListOrders(_ context.Context, _ uuid.UUID, _ pagination.Params, _ internalorders.OrderFilters) (*internalorders.OrderList, error) {
	return f.list, f.err
}

func ordersRouter(checkout checkoutsvc.Service, orders internalorders.Service, customerID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	if customerID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := middleware.WithCustomerID(req.Context(), customerID.String())
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Post("/api/v1/orders", PlaceOrder(checkout, orders, testLogger()))
	r.Get("/api/v1/orders", ListOrders(orders, testLogger()))
	r.Get("/api/v1/orders/{orderID}", GetOrder(orders, testLogger()))
	r.Post("/api/v1/orders/{orderID}/cancel", CancelOrder(checkout, orders, testLogger()))
	return r
}

func TestPlaceOrderCreatesOrder(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	orderID := uuid.New()
	checkout := &fakeCheckoutService{order: &models.Order{ID: orderID, Status: enums.OrderStatusConfirmed}}
	orders := &fakeOrderService{detail: &internalorders.OrderDetail{ID: orderID, Status: enums.OrderStatusConfirmed}}
	router := ordersRouter(checkout, orders, customerID)

	body := `{"currency":"USD","items":[{"variant_id":"` + uuid.NewString() + `","qty":2}],"payment":{"source_id":"cnon:ok"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "place-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if checkout.lastInput.Payment.SourceID != "cnon:ok" {
		t.Fatalf("source id %q", checkout.lastInput.Payment.SourceID)
	}
	if checkout.lastInput.Payment.IdempotencyKey != "place-1" {
		t.Fatalf("idempotency key %q", checkout.lastInput.Payment.IdempotencyKey)
	}
	if checkout.lastInput.Currency != enums.CurrencyUSD {
		t.Fatalf("currency %q", checkout.lastInput.Currency)
	}
}

func TestPlaceOrderRejectsUnknownCurrency(t *testing.T) {
	t.Parallel()

	router := ordersRouter(&fakeCheckoutService{}, &fakeOrderService{}, uuid.New())

	body := `{"currency":"XXX","items":[{"variant_id":"` + uuid.NewString() + `","qty":1}],"payment":{"source_id":"cnon:ok"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPlaceOrderRequiresCustomerContext(t *testing.T) {
	t.Parallel()

	router := ordersRouter(&fakeCheckoutService{}, &fakeOrderService{}, uuid.Nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPlaceOrderMapsInsufficientStock(t *testing.T) {
	t.Parallel()

	checkout := &fakeCheckoutService{
		placeErr: pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock"),
	}
	router := ordersRouter(checkout, &fakeOrderService{}, uuid.New())

	body := `{"currency":"USD","items":[{"variant_id":"` + uuid.NewString() + `","qty":9}],"payment":{"source_id":"cnon:ok"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCancelOrderAcceptsEmptyBody(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	checkout := &fakeCheckoutService{order: &models.Order{ID: orderID, Status: enums.OrderStatusCancelled}}
	orders := &fakeOrderService{detail: &internalorders.OrderDetail{ID: orderID, Status: enums.OrderStatusCancelled}}
	router := ordersRouter(checkout, orders, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetOrderRejectsBadID(t *testing.T) {
	t.Parallel()

	router := ordersRouter(&fakeCheckoutService{}, &fakeOrderService{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListOrdersRejectsBadStatusFilter(t *testing.T) {
	t.Parallel()

	router := ordersRouter(&fakeCheckoutService{}, &fakeOrderService{list: &internalorders.OrderList{}}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
