package recordstore

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// WithRateLimit wraps a store so that queries are throttled to qps queries
// per second with the given burst. Waiting respects context cancellation.
//
// The resolver issues one network round trip per query and can issue many
// per resolution on hostile inputs; this decorator keeps that from
// saturating the remote store.
func WithRateLimit(s Store, qps float64, burst int) Store {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedStore{next: s, limiter: rate.NewLimiter(rate.Limit(qps), burst)}
}

type rateLimitedStore struct {
	next    Store
	limiter *rate.Limiter
}

func (s *rateLimitedStore) Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: err}
	}
	return s.next.Search(ctx, entity, field, pred, value, limit)
}

func (s *rateLimitedStore) Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, &StoreError{Op: "count", Entity: entity, Field: field, Err: err}
	}
	return s.next.Count(ctx, entity, field, pred, value)
}

func (s *rateLimitedStore) Close() error {
	return s.next.Close()
}

// WithTimeout wraps a store so that every query runs under its own deadline.
// The core resolver carries no timeout policy of its own; binaries apply
// this decorator at wiring time.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

func (s *timeoutStore) Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Search(ctx, entity, field, pred, value, limit)
}

func (s *timeoutStore) Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Count(ctx, entity, field, pred, value)
}

func (s *timeoutStore) Close() error {
	return s.next.Close()
}
