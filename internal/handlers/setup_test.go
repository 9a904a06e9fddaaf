//nolint:errcheck // unchecked errors are acceptable in test files
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benx421/points-exchange/internal/api"
	"github.com/benx421/points-exchange/internal/auth"
	"github.com/benx421/points-exchange/internal/models"
	repomocks "github.com/benx421/points-exchange/internal/repository/mocks"
	"github.com/benx421/points-exchange/internal/service/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "points-exchange"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testServices holds one mock per service interface
type testServices struct {
	accounts  *mocks.MockAccountManager
	depositor *mocks.MockDepositor
	exchanger *mocks.MockExchanger
	vouchers  *mocks.MockVoucherRedeemer
	ledger    *mocks.MockLedgerReader
	catalog   *mocks.MockCatalog
	health    *mocks.MockHealthChecker
}

func newTestServices(t *testing.T) *testServices {
	return &testServices{
		accounts:  mocks.NewMockAccountManager(t),
		depositor: mocks.NewMockDepositor(t),
		exchanger: mocks.NewMockExchanger(t),
		vouchers:  mocks.NewMockVoucherRedeemer(t),
		ledger:    mocks.NewMockLedgerReader(t),
		catalog:   mocks.NewMockCatalog(t),
		health:    mocks.NewMockHealthChecker(t),
	}
}

// newTestRouter builds the full router over mocked services. Every
// idempotency key is fresh.
func newTestRouter(t *testing.T, svc *testServices) http.Handler {
	t.Helper()

	handler := NewHandler(svc.accounts, svc.depositor, svc.exchanger, svc.vouchers, svc.ledger, svc.catalog, svc.health, testLogger())

	store := repomocks.NewMockIdempotencyRepository(t)
	store.On("Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Maybe()
	store.On("Complete", mock.Anything, mock.Anything).Return(nil).Maybe()
	store.On("Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	swagger, err := api.GetSwagger()
	require.NoError(t, err)

	router, err := Routes(handler, RouterConfig{
		Verifier:    auth.NewVerifier(testSecret, testIssuer),
		Idempotency: store,
		Swagger:     swagger,
		Logger:      testLogger(),
	})
	require.NoError(t, err)
	return router
}

func tokenFor(t *testing.T, actor models.Actor) string {
	t.Helper()

	claims := auth.Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newActor(role models.Role) models.Actor {
	return models.Actor{ID: uuid.New(), Role: role}
}

// doRequest sends a request through router. A nil actor sends no token.
func doRequest(t *testing.T, router http.Handler, method, path string, actor *models.Actor, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, *actor))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}
