package resolver

import (
	"context"
	"strings"

	"github.com/fyrsmithlabs/resolvd/internal/normalize"
	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
)

// fetchCandidates pulls a bounded candidate pool for one (entity, field)
// pair, spending as few round trips as possible:
//
//  1. An exact-equality query. Exact matches are authoritative and bypass
//     fuzzy search entirely.
//  2. A progressive substring scan: substring length from len(input) down
//     to 1, prefix offset before interior offsets. The first query that
//     returns usable records ends the scan.
//  3. Fallbacks: an interleaved-wildcard pattern over the normalized input,
//     then the trimmed input as a plain substring.
//
// The same literal query is never issued twice within one call, and nothing
// is remembered across calls. Records whose value normalizes to nothing are
// discarded; the pool is deduplicated by record ID and capped at the
// configured limit.
func (s *Service) fetchCandidates(ctx context.Context, entity, field, input string) ([]Candidate, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}

	f := &fieldFetch{
		svc:    s,
		entity: entity,
		field:  field,
		seen:   make(map[string]struct{}),
		byID:   make(map[int64]struct{}),
	}

	if err := f.query(ctx, recordstore.Equals, trimmed); err != nil {
		return nil, err
	}
	if len(f.pool) > 0 {
		return f.pool, nil
	}

	runes := []rune(trimmed)
	for length := len(runes); length >= 1; length-- {
		for offset := 0; offset+length <= len(runes); offset++ {
			sub := string(runes[offset : offset+length])
			if normalize.Token(sub) == "" {
				continue
			}
			if err := f.query(ctx, recordstore.Contains, sub); err != nil {
				return nil, err
			}
			if len(f.pool) > 0 {
				return f.pool, nil
			}
		}
	}

	if token := normalize.Token(trimmed); token != "" {
		if err := f.query(ctx, recordstore.Contains, interleave(token)); err != nil {
			return nil, err
		}
		if len(f.pool) > 0 {
			return f.pool, nil
		}
	}

	// A plain contains query on the trimmed input. Usually already covered
	// by the scan above (and skipped by the memo), but reached when the
	// input normalizes to nothing substring by substring.
	if err := f.query(ctx, recordstore.Contains, trimmed); err != nil {
		return nil, err
	}
	return f.pool, nil
}

// fieldFetch accumulates the candidate pool for a single fetchCandidates
// call. seen memoizes issued queries, byID deduplicates records.
type fieldFetch struct {
	svc    *Service
	entity string
	field  string
	pool   []Candidate
	seen   map[string]struct{}
	byID   map[int64]struct{}
}

// query issues one store query unless the identical query already ran in
// this call, and folds usable records into the pool.
func (f *fieldFetch) query(ctx context.Context, pred recordstore.Predicate, value string) error {
	key := pred.String() + "\x00" + value
	if _, done := f.seen[key]; done {
		return nil
	}
	f.seen[key] = struct{}{}

	records, err := f.svc.store.Search(ctx, f.entity, f.field, pred, value, f.svc.limit)
	if err != nil {
		return err
	}

	for _, r := range records {
		if len(f.pool) >= f.svc.limit {
			break
		}
		if _, dup := f.byID[r.ID]; dup {
			continue
		}
		token := normalize.Token(r.Value)
		if token == "" {
			continue
		}
		f.byID[r.ID] = struct{}{}
		f.pool = append(f.pool, Candidate{ID: r.ID, Normalized: token, Raw: r.Value})
	}
	return nil
}

// interleave turns "abc" into "a%b%c": every character in order with
// anything between. Contains wraps the pattern in % itself.
func interleave(token string) string {
	runes := []rune(token)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, "%")
}
