package recordstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts store queries.
	// Labels: driver, op (search, count), predicate (equals, contains), result (success, error)
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resolvd",
			Subsystem: "recordstore",
			Name:      "queries_total",
			Help:      "Total number of record store queries",
		},
		[]string{"driver", "op", "predicate", "result"},
	)

	// QueryDuration tracks query round-trip latency.
	// Labels: driver, op
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resolvd",
			Subsystem: "recordstore",
			Name:      "query_duration_seconds",
			Help:      "Record store query round-trip time in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"driver", "op"},
	)
)

// WithMetrics wraps a store so that every query is counted and timed under
// the given driver label.
func WithMetrics(s Store, driver string) Store {
	return &instrumentedStore{next: s, driver: driver}
}

type instrumentedStore struct {
	next   Store
	driver string
}

func (s *instrumentedStore) Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error) {
	start := time.Now()
	records, err := s.next.Search(ctx, entity, field, pred, value, limit)
	s.observe("search", pred, start, err)
	return records, err
}

func (s *instrumentedStore) Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error) {
	start := time.Now()
	n, err := s.next.Count(ctx, entity, field, pred, value)
	s.observe("count", pred, start, err)
	return n, err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}

func (s *instrumentedStore) observe(op string, pred Predicate, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	QueriesTotal.WithLabelValues(s.driver, op, pred.String(), result).Inc()
	QueryDuration.WithLabelValues(s.driver, op).Observe(time.Since(start).Seconds())
}
