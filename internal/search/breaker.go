package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

// ErrCircuitOpen is returned while the breaker is refusing index calls.
var ErrCircuitOpen = errors.New("search index circuit open")

// CircuitBreaker stops calls to an unhealthy backend for resetTimeout after
// failureThreshold consecutive failures.
type CircuitBreaker struct {
	failureThreshold int
	resetTimeout     time.Duration
	now              func() time.Time
	logger           *slog.Logger

	mutex               sync.Mutex
	consecutiveFailures int
	totalFailures       int
	isOpen              bool
	openedAt            time.Time
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration, logger *slog.Logger) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		now:              time.Now,
		logger:           logger,
	}
}

// RecordSuccess closes the breaker and clears the failure streak
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	cb.consecutiveFailures = 0
	cb.isOpen = false
}

// RecordFailure counts a failed call and opens the breaker at the threshold
func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.consecutiveFailures++
	cb.totalFailures++
	if !cb.isOpen && cb.consecutiveFailures >= cb.failureThreshold {
		cb.isOpen = true
		cb.openedAt = cb.now()
		cb.logger.Warn("Search circuit breaker open",
			"consecutive_failures", cb.consecutiveFailures, "retry_after", cb.resetTimeout)
	}
}

// CanProceed reports whether a call may be attempted. After resetTimeout one
// trial call is let through; its outcome decides whether the breaker closes.
func (cb *CircuitBreaker) CanProceed() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if !cb.isOpen {
		return true
	}
	if cb.now().Sub(cb.openedAt) >= cb.resetTimeout {
		cb.logger.Info("Search circuit breaker half-open")
		// a failing trial reopens immediately
		cb.openedAt = cb.now()
		cb.consecutiveFailures = cb.failureThreshold - 1
		return true
	}
	return false
}

// GetStatus returns current circuit breaker status
func (cb *CircuitBreaker) GetStatus() (isOpen bool, consecutive int, total int) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.isOpen, cb.consecutiveFailures, cb.totalFailures
}

// GuardedIndex wraps a search index with a circuit breaker.
type GuardedIndex struct {
	index   catalog.SearchIndex
	breaker *CircuitBreaker
}

var _ catalog.SearchIndex = (*GuardedIndex)(nil)

func NewGuardedIndex(index catalog.SearchIndex, breaker *CircuitBreaker) *GuardedIndex {
	return &GuardedIndex{index: index, breaker: breaker}
}

func (g *GuardedIndex) call(fn func() error) error {
	if !g.breaker.CanProceed() {
		return ErrCircuitOpen
	}
	if err := fn(); err != nil {
		// a query the index cannot express says nothing about its health
		if !errors.Is(err, filter.ErrUnsupported) {
			g.breaker.RecordFailure()
		}
		return err
	}
	g.breaker.RecordSuccess()
	return nil
}

func (g *GuardedIndex) IndexProperty(ctx context.Context, p *models.Property, tags []string, images []models.PropertyImage) error {
	return g.call(func() error { return g.index.IndexProperty(ctx, p, tags, images) })
}

func (g *GuardedIndex) RemoveProperty(ctx context.Context, id string) error {
	return g.call(func() error { return g.index.RemoveProperty(ctx, id) })
}

func (g *GuardedIndex) SearchIDs(ctx context.Context, pred filter.Predicate, q pagination.Query) ([]string, int64, error) {
	var (
		ids   []string
		total int64
	)
	err := g.call(func() error {
		var err error
		ids, total, err = g.index.SearchIDs(ctx, pred, q)
		return err
	})
	return ids, total, err
}
