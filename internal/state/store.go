// Package state owns the session grouping shared across HTTP requests.
package state

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
)

// Publisher delivers grouping activity events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, evt domain.GroupingEvent) error
}

// Store is the mutex-guarded grouping state. All mutations flow through it,
// which is the service-side equivalent of the page's single-threaded click
// handler. Event publishing is best-effort: a sink failure never fails the
// user's operation.
type Store struct {
	mu        sync.Mutex
	grouping  domain.Grouping
	publisher Publisher // nil when activity events are disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewStore creates a Store seeded with the given grouping. Pass a nil
// publisher to disable activity events.
func NewStore(initial domain.Grouping, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		grouping:  initial,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Grouping returns the current assignment.
func (s *Store) Grouping() domain.Grouping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grouping
}

// Cycle advances one band through the click cycle and returns the new state.
func (s *Store) Cycle(ctx context.Context, band int) (domain.Grouping, error) {
	s.mu.Lock()
	next, err := s.grouping.Cycle(band)
	if err != nil {
		cur := s.grouping
		s.mu.Unlock()
		return cur, err
	}
	s.grouping = next
	s.mu.Unlock()

	s.metrics.BandClicks.WithLabelValues(strconv.Itoa(band)).Inc()
	s.publish(ctx, domain.NewGroupingEvent(domain.ActionCycle, &band, next))
	return next, nil
}

// Clear unassigns every band.
func (s *Store) Clear(ctx context.Context) domain.Grouping {
	next := s.set(domain.EmptyGrouping())
	s.metrics.StateResets.WithLabelValues("clear").Inc()
	s.publish(ctx, domain.NewGroupingEvent(domain.ActionClear, nil, next))
	return next
}

// Defaults restores the poles/mid-latitudes/tropics preset.
func (s *Store) Defaults(ctx context.Context) domain.Grouping {
	next := s.set(domain.DefaultGrouping())
	s.metrics.StateResets.WithLabelValues("defaults").Inc()
	s.publish(ctx, domain.NewGroupingEvent(domain.ActionDefaults, nil, next))
	return next
}

func (s *Store) set(g domain.Grouping) domain.Grouping {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grouping = g
	return g
}

func (s *Store) publish(ctx context.Context, evt domain.GroupingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish grouping event failed", "action", evt.Action, "error", err)
		s.metrics.EventPublishErrors.Inc()
		return
	}
	s.metrics.EventsPublished.Inc()
}
