package square

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	sqcore "github.com/square/square-go-sdk/core"

	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
)

func TestEnsureIdempotencyKey(t *testing.T) {
	c := &Client{}
	if got := c.ensureIdempotencyKey("pref", "custom-key"); got != "custom-key" {
		t.Fatalf("expected provided key, got %q", got)
	}
	if got := c.ensureIdempotencyKey("prefix", ""); !strings.HasPrefix(got, "prefix-") {
		t.Fatalf("generated idempotency key %q missing prefix", got)
	}
}

func TestRedact(t *testing.T) {
	c := &Client{}
	if out := c.redact("payment_token", "abc123"); out != "[REDACTED]" {
		t.Fatalf("expected redacted value, got %v", out)
	}
	if v := c.redact("status", "ok"); v != "ok" {
		t.Fatalf("unexpected redaction for safe key")
	}
}

func TestDomainCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusTooManyRequests, pkgerrors.CodeRateLimit},
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnprocessableEntity, pkgerrors.CodeStateConflict},
		{http.StatusBadGateway, pkgerrors.CodeGatewayUnavailable},
		{http.StatusServiceUnavailable, pkgerrors.CodeGatewayUnavailable},
		{http.StatusInternalServerError, pkgerrors.CodeGatewayUnavailable},
	}
	for _, tt := range tests {
		if got := domainCodeForStatus(tt.status); got != tt.code {
			t.Fatalf("status %d expected %s got %s", tt.status, tt.code, got)
		}
	}
}

func TestMapSquareError(t *testing.T) {
	c := &Client{}
	table := []struct {
		name     string
		status   int
		payload  string
		wantCode pkgerrors.Code
	}{
		{
			name:     "authentication error",
			status:   http.StatusUnauthorized,
			payload:  `{"errors":[{"category":"AUTHENTICATION_ERROR","code":"UNAUTHORIZED"}]}`,
			wantCode: pkgerrors.CodeUnauthorized,
		},
		{
			name:     "idempotency key reused",
			status:   http.StatusConflict,
			payload:  `{"errors":[{"category":"API_ERROR","code":"IDEMPOTENCY_KEY_REUSED"}]}`,
			wantCode: pkgerrors.CodeIdempotency,
		},
		{
			name:     "card declined",
			status:   http.StatusPaymentRequired,
			payload:  `{"errors":[{"category":"PAYMENT_METHOD_ERROR","code":"GENERIC_DECLINE"}]}`,
			wantCode: pkgerrors.CodePaymentDeclined,
		},
		{
			name:     "gateway outage",
			status:   http.StatusServiceUnavailable,
			payload:  `{"errors":[{"category":"API_ERROR","code":"SERVICE_UNAVAILABLE"}]}`,
			wantCode: pkgerrors.CodeGatewayUnavailable,
		},
	}
	for _, tt := range table {
		err := sqcore.NewAPIError(tt.status, errors.New(tt.payload))
		mapped := c.mapSquareError(err, "operation")
		if mapped == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		typed := pkgerrors.As(mapped)
		if typed == nil {
			t.Fatalf("%s: result is not pkgerror", tt.name)
		}
		if typed.Code() != tt.wantCode {
			t.Fatalf("%s: expected code %s, got %s", tt.name, tt.wantCode, typed.Code())
		}
	}
}

func TestMapCaptureError(t *testing.T) {
	c := &Client{}

	outage := sqcore.NewAPIError(http.StatusServiceUnavailable, errors.New(`{"errors":[{"category":"API_ERROR","code":"SERVICE_UNAVAILABLE"}]}`))
	mapped := c.mapCaptureError(outage)
	typed := pkgerrors.As(mapped)
	if typed == nil || typed.Code() != pkgerrors.CodeCaptureFailed {
		t.Fatalf("expected capture failure classification, got %v", mapped)
	}

	declined := sqcore.NewAPIError(http.StatusPaymentRequired, errors.New(`{"errors":[{"category":"PAYMENT_METHOD_ERROR","code":"GENERIC_DECLINE"}]}`))
	mapped = c.mapCaptureError(declined)
	typed = pkgerrors.As(mapped)
	if typed == nil || typed.Code() != pkgerrors.CodePaymentDeclined {
		t.Fatalf("expected declined classification to pass through, got %v", mapped)
	}
}
