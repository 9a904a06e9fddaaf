package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// CreateAccountRequest is the body of POST /api/v1/accounts
type CreateAccountRequest struct {
	OwnerID uuid.UUID `json:"owner_id"`
}

// CreateAccount handles POST /api/v1/accounts. It answers 201 for a new
// account and 200 when the owner already had one.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	account, created, err := h.accounts.CreateAccount(r.Context(), req.OwnerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, account)
}

// GetMyAccount handles GET /api/v1/accounts/me
func (h *Handler) GetMyAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), actor, actor.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// GetAccount handles GET /api/v1/accounts/{ownerID}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}
	ownerID, err := pathUUID(r, "ownerID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), actor, ownerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// LockAccount handles POST /api/v1/accounts/{ownerID}/lock
func (h *Handler) LockAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	account, err := h.accounts.LockAccount(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// UnlockAccount handles POST /api/v1/accounts/{ownerID}/unlock
func (h *Handler) UnlockAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathUUID(r, "ownerID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	account, err := h.accounts.UnlockAccount(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}
