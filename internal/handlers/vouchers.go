package handlers

import (
	"net/http"

	"github.com/benx421/points-exchange/internal/models"
)

// ListExchanges handles GET /api/v1/points/exchanges. Members see their own
// vouchers and stores see vouchers for their products.
func (h *Handler) ListExchanges(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	var filter models.VoucherFilter
	for name, dest := range map[string]any{
		"status":     &filter.Status,
		"product_id": &filter.ProductID,
		"owner_id":   &filter.OwnerID,
		"store_id":   &filter.StoreID,
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

	views, total, err := h.vouchers.ListVouchers(r.Context(), actor, filter, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeList(w, page, newVoucherResponses(views), total)
}

// LookupExchange handles GET /api/v1/points/exchanges/lookup?code=
func (h *Handler) LookupExchange(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	view, err := h.vouchers.LookupVoucherByCode(r.Context(), r.URL.Query().Get("code"), actor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newVoucherResponse(view))
}

// GetExchange handles GET /api/v1/points/exchanges/{exchangeID}
func (h *Handler) GetExchange(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}
	voucherID, err := pathUUID(r, "exchangeID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	view, err := h.vouchers.GetVoucher(r.Context(), voucherID, actor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newVoucherResponse(view))
}

// VerifyExchange handles POST /api/v1/points/exchanges/{exchangeID}/verify
func (h *Handler) VerifyExchange(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}
	voucherID, err := pathUUID(r, "exchangeID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	view, err := h.vouchers.VerifyVoucher(r.Context(), voucherID, actor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("voucher verified",
		"exchange_id", voucherID,
		"verified_by", actor.ID,
		"code", view.Voucher.Code,
	)
	writeJSON(w, http.StatusOK, newVoucherResponse(view))
}
