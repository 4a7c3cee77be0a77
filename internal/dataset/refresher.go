package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
)

// SampleLoader fetches and parses the anomaly CSV.
type SampleLoader interface {
	Load(ctx context.Context) (LoadResult, error)
}

// Refresher owns the in-memory dataset. It loads once at startup, optionally
// re-loads on an interval, and retries failed loads with exponential backoff
// so a flaky source does not leave the service permanently empty.
type Refresher struct {
	loader   SampleLoader
	logger   *slog.Logger
	metrics  *observability.Metrics
	interval time.Duration

	samples atomic.Pointer[[]domain.Sample]
	ready   atomic.Bool
}

// NewRefresher creates a Refresher. An interval of 0 disables periodic
// re-loading; the initial load is still retried until it succeeds.
func NewRefresher(loader SampleLoader, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		loader:   loader,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
	}
}

// Samples returns the current dataset. Nil until the first successful load.
func (r *Refresher) Samples() []domain.Sample {
	p := r.samples.Load()
	if p == nil {
		return nil
	}
	return *p
}

// CheckReadiness returns nil once a dataset load has succeeded.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("dataset has not loaded yet")
	}
	return nil
}

// Run executes the load loop until the context is cancelled. It always
// returns nil on cancellation; load failures are logged and retried.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("dataset refresher started", "interval", r.interval)
	r.metrics.RefresherActive.Set(1)
	defer r.metrics.RefresherActive.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		if err := r.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Error("dataset load failed", "error", err)
			r.metrics.DatasetLoads.WithLabelValues("error").Inc()
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond

		if r.interval <= 0 {
			r.logger.Info("dataset refresher stopping", "reason", "one-shot load complete")
			return nil
		}
		if !sleepWithContext(ctx, r.interval) {
			return nil
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) error {
	result, err := r.loader.Load(ctx)
	if err != nil {
		return err
	}

	r.samples.Store(&result.Samples)
	r.ready.Store(true)

	r.metrics.DatasetLoads.WithLabelValues("success").Inc()
	r.metrics.DatasetRows.Set(float64(len(result.Samples)))
	r.metrics.RowsSkipped.Add(float64(result.Skipped))
	r.metrics.DatasetReady.Set(1)

	r.logger.Info("dataset loaded", "rows", len(result.Samples), "skipped", result.Skipped)
	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
