// Package handlers implements HTTP handlers for the points exchange API.
package handlers

import (
	"log/slog"

	"github.com/benx421/points-exchange/internal/service"
)

// Handler serves every API endpoint on top of the service layer
type Handler struct {
	accounts      service.AccountManager
	depositor     service.Depositor
	exchanger     service.Exchanger
	vouchers      service.VoucherRedeemer
	ledger        service.LedgerReader
	catalog       service.Catalog
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	accounts service.AccountManager,
	depositor service.Depositor,
	exchanger service.Exchanger,
	vouchers service.VoucherRedeemer,
	ledger service.LedgerReader,
	catalog service.Catalog,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:      accounts,
		depositor:     depositor,
		exchanger:     exchanger,
		vouchers:      vouchers,
		ledger:        ledger,
		catalog:       catalog,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
