package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// DepositRequest is the body of POST /api/v1/points/deposits
type DepositRequest struct {
	Memo   string `json:"memo"`
	Amount int64  `json:"amount"`
}

// defaultExchangeQuantity applies when an exchange request omits quantity
const defaultExchangeQuantity = 1

// ExchangeRequest is the body of POST /api/v1/points/exchanges
type ExchangeRequest struct {
	Quantity  *int      `json:"quantity"`
	ProductID uuid.UUID `json:"product_id"`
}

// CreateDeposit handles POST /api/v1/points/deposits. Members deposit into
// their own account.
func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	var req DepositRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	result, err := h.depositor.Deposit(r.Context(), actor.ID, req.Amount, req.Memo)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("deposit committed",
		"owner_id", actor.ID,
		"transaction_id", result.Transaction.ID,
		"amount", req.Amount,
		"balance_after", result.BalanceAfter,
	)
	writeJSON(w, http.StatusCreated, newDepositResponse(result))
}

// CreateExchange handles POST /api/v1/points/exchanges
func (h *Handler) CreateExchange(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	var req ExchangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.ProductID == uuid.Nil {
		writeValidationError(w, "product_id is required")
		return
	}
	quantity := defaultExchangeQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := h.exchanger.Exchange(r.Context(), actor.ID, req.ProductID, quantity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("exchange committed",
		"owner_id", actor.ID,
		"product_id", req.ProductID,
		"exchange_id", result.Voucher.ID,
		"quantity", quantity,
		"points_spent", result.Voucher.PointsSpent,
	)
	writeJSON(w, http.StatusCreated, newExchangeResponse(result))
}
