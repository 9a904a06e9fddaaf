package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/benx421/points-exchange/internal/auth"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Details map[string]int64 `json:"details,omitempty"`
	Error   string           `json:"error"`
	Message string           `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, service.ErrCodeValidation, message)
}

// writeServiceError maps a service failure to its HTTP status and error body
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}

	status := statusForCode(svcErr.Code)
	switch {
	case status == http.StatusServiceUnavailable:
		h.logger.Warn("request failed after retries", "error", err, "path", r.URL.Path)
		w.Header().Set("Retry-After", "1")
	case status >= http.StatusInternalServerError:
		h.logger.Error("request failed", "error", err, "path", r.URL.Path)
	}

	message := svcErr.Message
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	writeJSON(w, status, ErrorResponse{
		Error:   svcErr.Code,
		Message: message,
		Details: svcErr.Details,
	})
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeValidation:
		return http.StatusBadRequest
	case service.ErrCodeUnauthorized:
		return http.StatusForbidden
	case service.ErrCodeNotFound,
		service.ErrCodeAccountNotFound,
		service.ErrCodeProductNotFound,
		service.ErrCodeVoucherNotFound,
		service.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case service.ErrCodeProductUnavailable,
		service.ErrCodeInsufficientStock,
		service.ErrCodeInsufficientBalance,
		service.ErrCodeWalletLocked:
		return http.StatusUnprocessableEntity
	case service.ErrCodeAlreadyVerified, service.ErrCodeConflict:
		return http.StatusConflict
	case service.ErrCodeTransientFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// decodeJSON reads a single JSON object from the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return id, nil
}

// actorFrom returns the authenticated caller and answers 401 when there is none
func (h *Handler) actorFrom(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
	}
	return actor, ok
}
