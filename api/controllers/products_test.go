package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	product "github.com/storefrontlabs/storefront-backend/internal/products"
	"github.com/storefrontlabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
	"github.com/storefrontlabs/storefront-backend/pkg/logger"
	"github.com/storefrontlabs/storefront-backend/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}

type fakeProductService struct {
	product     *product.ProductDTO
	list        *product.ProductListResult
	err         error
	lastFilters product.ProductListFilters
	lastParams  pagination.Params
}

func (f *fakeProductService) GetProduct(_ context.Context, _ uuid.UUID) (*product.ProductDTO, error) {
	return f.product, f.err
}

func (f *fakeProductService) ListProducts(_ context.Context, params pagination.Params, filters product.ProductListFilters) (*product.ProductListResult, error) {
	f.lastParams = params
	f.lastFilters = filters
	return f.list, f.err
}

func (f *fakeProductService) LoadVariantsForPurchase(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]models.ProductVariant, error) {
	return nil, nil
}

func productsRouter(svc product.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/products", ListProducts(svc, testLogger()))
	r.Get("/api/v1/products/{productID}", GetProduct(svc, testLogger()))
	return r
}

func TestListProductsParsesFilters(t *testing.T) {
	t.Parallel()

	svc := &fakeProductService{list: &product.ProductListResult{}}
	router := productsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=hoodie&price_min_cents=1000&in_stock=true&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastFilters.Query != "hoodie" {
		t.Fatalf("query filter %q", svc.lastFilters.Query)
	}
	if svc.lastFilters.PriceMinCents == nil || *svc.lastFilters.PriceMinCents != 1000 {
		t.Fatal("price_min_cents not parsed")
	}
	if !svc.lastFilters.InStockOnly {
		t.Fatal("in_stock not parsed")
	}
	if svc.lastParams.Limit != 10 {
		t.Fatalf("limit %d", svc.lastParams.Limit)
	}
}

func TestListProductsRejectsBadPriceFilter(t *testing.T) {
	t.Parallel()

	router := productsRouter(&fakeProductService{list: &product.ProductListResult{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?price_min_cents=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetProductReturnsDetail(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc := &fakeProductService{product: &product.ProductDTO{ID: productID, Title: "Hoodie"}}
	router := productsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data product.ProductDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.ID != productID {
		t.Fatalf("unexpected product id %s", envelope.Data.ID)
	}
}

func TestGetProductRejectsBadID(t *testing.T) {
	t.Parallel()

	router := productsRouter(&fakeProductService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetProductMapsNotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	router := productsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
