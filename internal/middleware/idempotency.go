// Package middleware provides HTTP middleware components for the points API.
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/benx421/points-exchange/internal/auth"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
)

// idempotentPaths lists the balance-changing POST endpoints whose responses
// are replayed for a repeated key
var idempotentPaths = []string{
	"/api/v1/points/deposits",
	"/api/v1/points/exchanges",
}

// IdempotencyStore persists replayable responses. Reserve claims a key
// before the request runs so concurrent retries cannot both execute.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, actorID uuid.UUID, requestPath string) (bool, error)
	Get(ctx context.Context, key string, actorID uuid.UUID, requestPath string) (*models.IdempotencyKey, error)
	Complete(ctx context.Context, idemKey *models.IdempotencyKey) error
	Release(ctx context.Context, key string, actorID uuid.UUID, requestPath string) error
}

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key. Keys are scoped to the authenticated actor and the path,
// so it must run after the auth middleware. The key is reserved before the
// handler runs; a request arriving while the first is still in flight gets a
// 409. Failed responses release the key so the client can retry. A storage
// error while reserving lets the request through.
func Idempotency(store IdempotencyStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get(idempotencyKeyHeader)
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, ok := auth.ActorFrom(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			requestPath := normalizeRequestPath(r.URL.Path)
			ctx := r.Context()

			reserved, err := store.Reserve(ctx, idempotencyKey, actor.ID, requestPath)
			if err != nil {
				logger.Error("failed to reserve idempotency key", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !reserved {
				replay(w, r, store, logger, idempotencyKey, actor.ID, requestPath)
				return
			}

			completed := false
			defer func() {
				if completed {
					return
				}
				if err := store.Release(context.WithoutCancel(ctx), idempotencyKey, actor.ID, requestPath); err != nil {
					logger.Error("failed to release idempotency key",
						"error", err,
						"key", idempotencyKey,
					)
				}
			}()

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if !shouldCacheResponse(capture.statusCode) {
				return
			}
			// The side effects are committed. Keep the key even if the
			// response cannot be stored so a retry is not executed again.
			completed = true

			idemKey := &models.IdempotencyKey{
				Key:            idempotencyKey,
				ActorID:        actor.ID,
				RequestPath:    requestPath,
				ResponseStatus: capture.statusCode,
				ResponseBody:   capture.body.String(),
			}
			if err := store.Complete(context.WithoutCancel(ctx), idemKey); err != nil {
				logger.Error("failed to store idempotency key",
					"error", err,
					"key", idempotencyKey,
				)
			}
		})
	}
}

// replay answers a request whose key is already taken: the stored response
// when the first request finished, a 409 while it is still running
func replay(w http.ResponseWriter, r *http.Request, store IdempotencyStore, logger *slog.Logger, key string, actorID uuid.UUID, requestPath string) {
	cached, err := store.Get(r.Context(), key, actorID, requestPath)
	if err != nil {
		logger.Error("failed to check idempotency cache", "error", err)
		writeInProgress(w)
		return
	}

	if cached == nil || cached.Pending() {
		writeInProgress(w)
		return
	}

	logger.Debug("returning cached idempotent response",
		"key", key,
		"actor_id", actorID,
		"path", requestPath,
		"status", cached.ResponseStatus,
	)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(cached.ResponseStatus)
	//nolint:errcheck // Best effort response writing
	w.Write([]byte(cached.ResponseBody))
}

func writeInProgress(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusConflict)
	//nolint:errcheck // Best effort response writing
	w.Write([]byte(`{"error":"conflict","message":"a request with this Idempotency-Key is still in progress"}`))
}

func requiresIdempotency(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	path := normalizeRequestPath(r.URL.Path)
	for _, p := range idempotentPaths {
		if path == p {
			return true
		}
	}
	return false
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
