package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/storefrontlabs/storefront-backend/pkg/errors"
)

type samplePayload struct {
	Title string `json:"title" validate:"required"`
	Qty   int    `json:"qty" validate:"required,gt=0"`
}

func decodeRequest(t *testing.T, body string, dest any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return DecodeJSONBody(req, dest)
}

func TestDecodeJSONBody(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, `{"title":"hoodie","qty":2}`, &payload)
	require.NoError(t, err)
	assert.Equal(t, "hoodie", payload.Title)
	assert.Equal(t, 2, payload.Qty)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, `{"title":"hoodie","qty":1,"bogus":true}`, &payload)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	t.Parallel()

	var payload samplePayload
	err := decodeRequest(t, `{"qty":0}`, &payload)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "must be greater than 0", details["qty"])
}

func TestParseQueryInt(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=42", nil)
	value, err := ParseQueryInt(req, "limit", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	value, err = ParseQueryInt(req, "limit", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 25, value)

	req = httptest.NewRequest(http.MethodGet, "/?limit=500", nil)
	_, err = ParseQueryInt(req, "limit", 25, 1, 100)
	require.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	_, err = ParseQueryInt(req, "limit", 25, 1, 100)
	require.Error(t, err)
}

func TestParseQueryTime(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?date_from=2026-08-01T00:00:00Z", nil)
	value, err := ParseQueryTime(req, "date_from")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), value.UTC())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	value, err = ParseQueryTime(req, "date_from")
	require.NoError(t, err)
	assert.Nil(t, value)

	req = httptest.NewRequest(http.MethodGet, "/?date_from=yesterday", nil)
	_, err = ParseQueryTime(req, "date_from")
	require.Error(t, err)
}
