package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/storefrontlabs/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
}

type fakeRateStore struct {
	counts map[string]int64
	limit  int64
}

func (s *fakeRateStore) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[scope]++
	count := s.counts[scope]
	return count <= limit, count, nil
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	t.Parallel()

	policy := RateLimitPolicy{Name: "order-placement", Window: time.Minute, Limit: 2}
	handler := RateLimit(policy, &fakeRateStore{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
		req = req.WithContext(WithCustomerID(req.Context(), "cust-1"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	t.Parallel()

	policy := RateLimitPolicy{Name: "order-placement", Window: time.Minute, Limit: 1}
	store := &fakeRateStore{}
	handler := RateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req = req.WithContext(WithCustomerID(req.Context(), "cust-1"))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req.Clone(req.Context()))
	if first.Code != http.StatusCreated {
		t.Fatalf("first request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req.Clone(req.Context()))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be throttled, got %d", second.Code)
	}
}

func TestRateLimitScopesByCustomer(t *testing.T) {
	t.Parallel()

	policy := RateLimitPolicy{Name: "order-placement", Window: time.Minute, Limit: 1}
	store := &fakeRateStore{}
	handler := RateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for _, customer := range []string{"cust-a", "cust-b"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
		req = req.WithContext(WithCustomerID(req.Context(), customer))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("customer %s should have their own window, got %d", customer, rec.Code)
		}
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	t.Parallel()

	handler := RateLimit(RateLimitPolicy{}, &fakeRateStore{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("disabled policy must pass through, got %d", rec.Code)
	}
}
