package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetSwagger(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)

	assert.Equal(t, "Points Exchange API", swagger.Info.Title)
	for _, path := range []string{
		"/api/v1/points/deposits",
		"/api/v1/points/exchanges",
		"/api/v1/points/exchanges/lookup",
		"/api/v1/points/exchanges/{exchangeID}/verify",
		"/api/v1/points/transactions",
		"/api/v1/products/{productID}",
		"/api/v1/accounts/{ownerID}/lock",
	} {
		assert.NotNil(t, swagger.Paths.Value(path), path)
	}
}

func TestDocsRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterDocsRoutes(r)

	t.Run("root redirects to docs", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/docs", rec.Header().Get("Location"))
	})

	t.Run("swagger ui", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "/docs/openapi")
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
	})
}

func newValidatedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()

	swagger, err := GetSwagger()
	require.NoError(t, err)
	validate, err := RequestValidator(swagger, testLogger())
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		body, _ := io.ReadAll(r.Body) //nolint:errcheck // test helper
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body) //nolint:errcheck // test helper
	})
	return validate(next), &called
}

func TestRequestValidator(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid deposit",
			method:     http.MethodPost,
			target:     "/api/v1/points/deposits",
			body:       `{"amount":100,"memo":"welcome"}`,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "zero deposit amount",
			method:     http.MethodPost,
			target:     "/api/v1/points/deposits",
			body:       `{"amount":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing deposit amount",
			method:     http.MethodPost,
			target:     "/api/v1/points/deposits",
			body:       `{"memo":"no amount"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "exchange without quantity",
			method:     http.MethodPost,
			target:     "/api/v1/points/exchanges",
			body:       `{"product_id":"7f0c2a4e-2d1b-4c55-9a43-0d2f3e6b8a11"}`,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "exchange quantity above limit",
			method:     http.MethodPost,
			target:     "/api/v1/points/exchanges",
			body:       `{"product_id":"7f0c2a4e-2d1b-4c55-9a43-0d2f3e6b8a11","quantity":6}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "exchange with malformed product id",
			method:     http.MethodPost,
			target:     "/api/v1/points/exchanges",
			body:       `{"product_id":"not-a-uuid","quantity":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed path id",
			method:     http.MethodGet,
			target:     "/api/v1/points/exchanges/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "page size below minimum",
			method:     http.MethodGet,
			target:     "/api/v1/points/transactions?page=1&size=0",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "page number beyond maximum",
			method:     http.MethodGet,
			target:     "/api/v1/points/transactions?page=9223372036854775807",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown voucher status",
			method:     http.MethodGet,
			target:     "/api/v1/points/exchanges?status=USED",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid listing",
			method:     http.MethodGet,
			target:     "/api/v1/points/exchanges?status=PENDING&page=2&size=20",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "undocumented path passes through",
			method:     http.MethodGet,
			target:     "/metrics",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "undocumented method passes through",
			method:     http.MethodPut,
			target:     "/api/v1/points/deposits",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, called := newValidatedHandler(t)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, *called)
			if tt.wantStatus == http.StatusBadRequest {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "validation_error", resp["error"])
				assert.NotEmpty(t, resp["message"])
			}
		})
	}
}

func TestRequestValidator_BodyIsReadableDownstream(t *testing.T) {
	handler, called := newValidatedHandler(t)

	payload := `{"amount":250}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/points/deposits", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.True(t, *called)
	assert.JSONEq(t, payload, rec.Body.String())
}
