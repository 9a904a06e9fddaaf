// Package jobs runs the periodic maintenance tasks of the points service.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

var (
	pendingVouchers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "points_pending_vouchers",
		Help: "Number of issued vouchers awaiting verification",
	})

	purgedKeysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "points_idempotency_keys_purged_total",
		Help: "Total idempotency keys removed after expiry",
	})
)

// KeyPurger removes expired idempotency keys
type KeyPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// VoucherCounter counts vouchers by status
type VoucherCounter interface {
	CountByStatus(ctx context.Context, status models.VoucherStatus) (int64, error)
}

// Config holds the cron specs and retention of the scheduled jobs
type Config struct {
	IdempotencyTTL   time.Duration
	PurgeSpec        string
	PendingGaugeSpec string
}

// Scheduler runs the background jobs on a cron schedule
type Scheduler struct {
	cron     *cron.Cron
	keys     KeyPurger
	vouchers VoucherCounter
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler in UTC. Jobs are registered by Start.
func NewScheduler(keys KeyPurger, vouchers VoucherCounter, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		keys:     keys,
		vouchers: vouchers,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler. ctx is passed to every
// run, so cancelling it aborts in-flight jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.PurgeSpec, func() { s.PurgeIdempotencyKeys(ctx) }); err != nil {
		return fmt.Errorf("invalid idempotency purge schedule %q: %w", s.cfg.PurgeSpec, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.PendingGaugeSpec, func() { s.RecordPendingVouchers(ctx) }); err != nil {
		return fmt.Errorf("invalid pending voucher schedule %q: %w", s.cfg.PendingGaugeSpec, err)
	}

	s.cron.Start()
	s.logger.Info("job scheduler started",
		"purge_spec", s.cfg.PurgeSpec,
		"pending_gauge_spec", s.cfg.PendingGaugeSpec,
	)
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("job scheduler stopped")
}

// PurgeIdempotencyKeys deletes replay records older than the configured TTL
func (s *Scheduler) PurgeIdempotencyKeys(ctx context.Context) {
	cutoff := s.now().Add(-s.cfg.IdempotencyTTL)

	removed, err := s.keys.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to purge idempotency keys", "error", err)
		return
	}

	purgedKeysTotal.Add(float64(removed))
	if removed > 0 {
		s.logger.Info("purged idempotency keys", "count", removed, "cutoff", cutoff)
	}
}

// RecordPendingVouchers refreshes the pending voucher gauge
func (s *Scheduler) RecordPendingVouchers(ctx context.Context) {
	count, err := s.vouchers.CountByStatus(ctx, models.VoucherStatusPending)
	if err != nil {
		s.logger.Error("failed to count pending vouchers", "error", err)
		return
	}
	pendingVouchers.Set(float64(count))
}
