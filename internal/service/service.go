// Package service exposes ledger operations over a persistent store.
//
// Every mutating call follows the same sequence under a process-wide lock:
// load the group, validate and apply the change through package ledger,
// save the whole group, and only then return.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
)

// LedgerService implements the group ledger operations.
type LedgerService struct {
	store   storage.Store
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics

	// mu serializes load-mutate-save so concurrent calls never lose writes.
	mu sync.Mutex
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *LedgerService) { s.logger = l }
}

// WithMetrics enables operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// update loads groupID, applies fn and persists the result. Nothing is saved
// when fn fails.
func (s *LedgerService) update(ctx context.Context, groupID string, fn func(g *models.Group, now time.Time) error) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := fn(g, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.SaveGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	return g, nil
}

// observe logs the outcome of op and counts it.
func (s *LedgerService) observe(op string, err error, attrs ...any) {
	outcome := outcomeOf(err)
	s.metrics.ObserveOperation(op, outcome)

	switch outcome {
	case metrics.OutcomeOK:
		s.logger.Info(op+" successful", attrs...)
	case metrics.OutcomeError:
		s.logger.Error(op+" failed", append(attrs, "error", err)...)
	default:
		s.logger.Warn(op+" rejected", append(attrs, "error", err)...)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, models.ErrNotFound):
		return metrics.OutcomeNotFound
	case models.IsValidation(err), errors.Is(err, models.ErrDuplicateMember):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
