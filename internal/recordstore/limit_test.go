package recordstore

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore blocks until its context is done, counting calls.
type slowStore struct {
	calls  atomic.Int64
	closed atomic.Bool
}

func (s *slowStore) Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error) {
	s.calls.Add(1)
	<-ctx.Done()
	return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: ctx.Err()}
}

func (s *slowStore) Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error) {
	s.calls.Add(1)
	<-ctx.Done()
	return 0, &StoreError{Op: "count", Entity: entity, Field: field, Err: ctx.Err()}
}

func (s *slowStore) Close() error {
	s.closed.Store(true)
	return nil
}

func TestWithTimeoutBoundsQueries(t *testing.T) {
	slow := &slowStore{}
	store := WithTimeout(slow, 10*time.Millisecond)

	start := time.Now()
	_, err := store.Search(context.Background(), "res.partner", "name", Contains, "acme", 10)
	require.Error(t, err)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, storeErr.Err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithTimeoutZeroIsPassthrough(t *testing.T) {
	slow := &slowStore{}
	assert.Same(t, Store(slow), WithTimeout(slow, 0))
}

func TestWithRateLimitHonorsCancellation(t *testing.T) {
	slow := &slowStore{}
	// One query per hour with a burst of one: the second query must wait.
	store := WithRateLimit(WithTimeout(slow, time.Millisecond), 1.0/3600, 1)

	_, err := store.Search(context.Background(), "res.partner", "name", Contains, "a", 1)
	require.Error(t, err) // times out inside slowStore, but we got through the limiter

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = store.Search(ctx, "res.partner", "name", Contains, "b", 1)
	require.Error(t, err)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, int64(1), slow.calls.Load(), "throttled query must not reach the store")
}

func TestDecoratorsPropagateClose(t *testing.T) {
	slow := &slowStore{}
	store := WithMetrics(WithRateLimit(WithTimeout(slow, time.Second), 10, 1), "test")
	require.NoError(t, store.Close())
	assert.True(t, slow.closed.Load())
}
