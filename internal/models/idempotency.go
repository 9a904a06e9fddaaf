package models

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey tracks processed requests so a retried deposit or exchange
// replays the first response
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
	ActorID        uuid.UUID `db:"actor_id"`
}

// Pending reports whether the request holding the key has not finished yet
func (k *IdempotencyKey) Pending() bool {
	return k.ResponseStatus == 0
}
