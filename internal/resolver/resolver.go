package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/resolvd/internal/normalize"
	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
)

// Config tunes the resolution core.
type Config struct {
	// FetchLimit bounds the result count of every store query and the size
	// of each candidate pool. Defaults to 100.
	FetchLimit int
}

// Service resolves free-text fragments to record identifiers. It is
// stateless between calls and safe for concurrent use.
type Service struct {
	store  recordstore.Store
	logger *zap.Logger
	limit  int
}

// NewService creates a resolver backed by the given store. The logger is
// required: resolution decisions must be auditable.
func NewService(store recordstore.Store, logger *zap.Logger, cfg Config) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for the resolution audit trail")
	}
	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = 100
	}
	return &Service{store: store, logger: logger, limit: limit}, nil
}

// FindID resolves input to exactly one record identifier of the given
// entity, searching fields in priority order. All fields are eventually
// considered if earlier ones fail; an exact match in an earlier field stops
// the search (see below).
//
// Exact-match policy: fetching stops at the first field whose pool contains
// a normalized exact match, and the tie-break runs over the exact matches
// present in every pool fetched up to that point. Lower-priority fields are
// not fetched once an exact match exists — each fetch is a series of
// network round trips, and an exact match in a higher-priority field is
// already authoritative.
//
// Failures are typed: *InvalidInputError for input that can never resolve,
// *recordstore.StoreError for store communication failures (propagated
// unchanged, no internal retry), *NoMatchError when the whole search space
// is exhausted.
func (s *Service) FindID(ctx context.Context, entity, input string, fields []string) (Resolution, error) {
	start := time.Now()

	if len(fields) == 0 {
		return s.reject("at least one lookup field is required")
	}
	if input == "" {
		return s.reject("input value is empty")
	}
	normalized := normalize.Token(input)
	if normalized == "" {
		return s.reject(fmt.Sprintf("input %q normalizes to nothing", input))
	}

	logger := s.logger.With(
		zap.String("call_id", uuid.NewString()),
		zap.String("entity", entity),
		zap.String("input", input),
		zap.String("normalized", normalized),
	)

	pools := make([]fieldPool, 0, len(fields))
	for _, field := range fields {
		pool, err := s.fetchCandidates(ctx, entity, field, input)
		if err != nil {
			ResolutionsTotal.WithLabelValues("store_error").Inc()
			logger.Error("candidate fetch failed", zap.String("field", field), zap.Error(err))
			return Resolution{}, err
		}
		pools = append(pools, fieldPool{field: field, candidates: pool})
		s.logFieldDiagnostics(ctx, logger, entity, field, len(pool))

		if hasExact(pool, normalized) {
			return s.finish(logger, exactMatches(pools, normalized), normalized, true, start)
		}
	}

	observe := func(field, window string, offset, length int, matched []Candidate) {
		logger.Debug("window evaluated",
			zap.String("field", field),
			zap.String("window", window),
			zap.Int("offset", offset),
			zap.Int("length", length),
			zap.Int("candidates", len(matched)),
		)
	}
	matched, window := matchWindow(normalized, pools, observe)
	if len(matched) == 0 {
		ResolutionsTotal.WithLabelValues("no_match").Inc()
		logger.Warn("search space exhausted without a candidate")
		return Resolution{}, &NoMatchError{Entity: entity, Input: input}
	}

	return s.finish(logger, matched, window, false, start)
}

// reject records and returns an invalid-input failure.
func (s *Service) reject(reason string) (Resolution, error) {
	ResolutionsTotal.WithLabelValues("invalid_input").Inc()
	return Resolution{}, &InvalidInputError{Reason: reason}
}

// finish tie-breaks the surviving candidates and emits the audit summary.
func (s *Service) finish(logger *zap.Logger, matched []Candidate, window string, exact bool, start time.Time) (Resolution, error) {
	winner := selectCandidate(matched)

	outcome := "window"
	if exact {
		outcome = "exact"
	} else {
		// The original input was silently replaced by the closest record;
		// operators need to see that loudly.
		logger.Warn("input not exactly found, replaced by closest record",
			zap.Int64("record_id", winner.ID),
			zap.String("winner_value", winner.Raw),
		)
	}

	windowLen := len([]rune(window))
	ResolutionsTotal.WithLabelValues(outcome).Inc()
	ResolutionDuration.Observe(time.Since(start).Seconds())
	WindowLength.Observe(float64(windowLen))

	logger.Info("record resolved",
		zap.Int64("record_id", winner.ID),
		zap.String("winner_value", winner.Raw),
		zap.String("window", window),
		zap.Int("window_length", windowLen),
		zap.Bool("exact", exact),
		zap.Int("candidates", len(matched)),
		zap.Duration("duration", time.Since(start)),
	)

	return Resolution{
		ID:         winner.ID,
		Raw:        winner.Raw,
		Window:     window,
		Exact:      exact,
		Candidates: len(matched),
	}, nil
}

// logFieldDiagnostics compares the fetched pool against the store's total
// for the field. Costs one extra round trip, so it only runs when debug
// logging is on; a failed count never fails the resolution.
func (s *Service) logFieldDiagnostics(ctx context.Context, logger *zap.Logger, entity, field string, fetched int) {
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	available, err := s.store.Count(ctx, entity, field, recordstore.Contains, "")
	if err != nil {
		logger.Debug("field count unavailable", zap.String("field", field), zap.Error(err))
		return
	}
	logger.Debug("field pool fetched",
		zap.String("field", field),
		zap.Int("fetched", fetched),
		zap.Int("available", available),
	)
}

// hasExact reports whether the pool contains a normalized exact match.
func hasExact(pool []Candidate, normalized string) bool {
	for _, c := range pool {
		if c.Normalized == normalized {
			return true
		}
	}
	return false
}
