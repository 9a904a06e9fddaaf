package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/benx421/points-exchange/internal/api"
	"github.com/benx421/points-exchange/internal/auth"
	"github.com/benx421/points-exchange/internal/config"
	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/middleware"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/benx421/points-exchange/internal/service"
	"github.com/benx421/points-exchange/internal/voucher"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the request-level collaborators of the router
type RouterConfig struct {
	Verifier    *auth.Verifier
	Idempotency middleware.IdempotencyStore
	Swagger     *openapi3.T
	Logger      *slog.Logger
}

// NewRouter wires the services on top of database and returns the HTTP
// handler for the whole API.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	logger *slog.Logger,
) (http.Handler, error) {
	runner := service.NewRunner(database, service.RunnerConfig{
		LockTimeout: cfg.Database.LockTimeout,
		Backoff:     cfg.App.TxRetryBackoff,
		MaxAttempts: cfg.App.TxMaxAttempts,
	}, logger)

	handler := NewHandler(
		service.NewAccountService(database),
		service.NewDepositService(runner),
		service.NewExchangeService(runner, voucher.NewGenerator()),
		service.NewVoucherService(database, runner),
		service.NewTransactionService(database),
		service.NewProductService(database, runner),
		database,
		logger,
	)

	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	return Routes(handler, RouterConfig{
		Verifier:    auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		Idempotency: repository.NewIdempotencyRepository(database),
		Swagger:     swagger,
		Logger:      logger,
	})
}

// Routes mounts every endpoint of h with its middleware chain.
func Routes(h *Handler, rc RouterConfig) (http.Handler, error) {
	validate, err := api.RequestValidator(rc.Swagger, rc.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	var (
		member       = auth.RequireRole(models.RoleMember)
		store        = auth.RequireRole(models.RoleStore)
		admin        = auth.RequireRole(models.RoleAdmin)
		storeOrAdmin = auth.RequireRole(models.RoleStore, models.RoleAdmin)
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(rc.Logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	api.RegisterDocsRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(validate)

			r.Get("/products", h.ListProducts)
			r.Get("/products/{productID}", h.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(rc.Verifier, rc.Logger))
			r.Use(validate)
			r.Use(middleware.Idempotency(rc.Idempotency, rc.Logger))

			r.With(admin).Post("/accounts", h.CreateAccount)
			r.Get("/accounts/me", h.GetMyAccount)
			r.Get("/accounts/{ownerID}", h.GetAccount)
			r.With(admin).Post("/accounts/{ownerID}/lock", h.LockAccount)
			r.With(admin).Post("/accounts/{ownerID}/unlock", h.UnlockAccount)

			r.With(member).Post("/points/deposits", h.CreateDeposit)
			r.With(member).Post("/points/exchanges", h.CreateExchange)
			r.Get("/points/exchanges", h.ListExchanges)
			r.Get("/points/exchanges/lookup", h.LookupExchange)
			r.Get("/points/exchanges/{exchangeID}", h.GetExchange)
			r.With(storeOrAdmin).Post("/points/exchanges/{exchangeID}/verify", h.VerifyExchange)

			r.Get("/points/transactions", h.ListTransactions)
			r.Get("/points/transactions/{transactionID}", h.GetTransaction)

			r.With(store).Post("/products", h.CreateProduct)
			r.With(storeOrAdmin).Patch("/products/{productID}", h.UpdateProduct)
			r.With(storeOrAdmin).Delete("/products/{productID}", h.DeactivateProduct)
		})
	})

	return r, nil
}
