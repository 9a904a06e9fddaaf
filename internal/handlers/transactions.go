package handlers

import (
	"net/http"

	"github.com/benx421/points-exchange/internal/models"
)

// ListTransactions handles GET /api/v1/points/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	var filter models.TransactionFilter
	for name, dest := range map[string]any{
		"tx_type":    &filter.Type,
		"is_success": &filter.IsSuccess,
		"owner_id":   &filter.OwnerID,
	} {
		if err := bindQuery(query, name, dest); err != nil {
			writeValidationError(w, err.Error())
			return
		}
	}
	page, err := bindPage(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	txns, total, err := h.ledger.ListTransactions(r.Context(), actor, filter, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeList(w, page, txns, total)
}

// GetTransaction handles GET /api/v1/points/transactions/{transactionID}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "transactionID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	txn, err := h.ledger.GetTransaction(r.Context(), actor, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
