package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*Scheduler, *mocks.MockIdempotencyRepository, *mocks.MockVoucherRepository) {
	keys := mocks.NewMockIdempotencyRepository(t)
	vouchers := mocks.NewMockVoucherRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := NewScheduler(keys, vouchers, Config{
		IdempotencyTTL:   24 * time.Hour,
		PurgeSpec:        "@every 1h",
		PendingGaugeSpec: "@every 1m",
	}, logger)
	return s, keys, vouchers
}

func TestPurgeIdempotencyKeys(t *testing.T) {
	s, keys, _ := newTestScheduler(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	before := testutil.ToFloat64(purgedKeysTotal)
	keys.On("DeleteOlderThan", mock.Anything, now.Add(-24*time.Hour)).Return(int64(7), nil)

	s.PurgeIdempotencyKeys(context.Background())

	assert.Equal(t, before+7, testutil.ToFloat64(purgedKeysTotal))
}

func TestPurgeIdempotencyKeys_Error(t *testing.T) {
	s, keys, _ := newTestScheduler(t)

	before := testutil.ToFloat64(purgedKeysTotal)
	keys.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	s.PurgeIdempotencyKeys(context.Background())

	assert.Equal(t, before, testutil.ToFloat64(purgedKeysTotal))
}

func TestRecordPendingVouchers(t *testing.T) {
	s, _, vouchers := newTestScheduler(t)

	vouchers.On("CountByStatus", mock.Anything, models.VoucherStatusPending).Return(int64(12), nil).Once()
	s.RecordPendingVouchers(context.Background())
	assert.Equal(t, float64(12), testutil.ToFloat64(pendingVouchers))

	vouchers.On("CountByStatus", mock.Anything, models.VoucherStatusPending).Return(int64(0), errors.New("timeout")).Once()
	s.RecordPendingVouchers(context.Background())
	assert.Equal(t, float64(12), testutil.ToFloat64(pendingVouchers), "gauge keeps the last good value")
}

func TestStart_InvalidSpec(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	s.cfg.PurgeSpec = "not a schedule"

	err := s.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "idempotency purge")
}

func TestStartStop(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
