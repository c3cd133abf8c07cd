package resolver

import (
	"context"
	"strings"
	"sync"

	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
)

// loggedQuery captures one store query for assertions.
type loggedQuery struct {
	field string
	pred  recordstore.Predicate
	value string
}

// fakeStore is an in-memory Store with LIKE-style matching, mirroring the
// adapters' semantics: Equals is exact, Contains is case-insensitive with
// `%` wildcard passthrough. It logs every query it receives.
type fakeStore struct {
	mu      sync.Mutex
	records map[string][]recordstore.Record // keyed by field
	queries []loggedQuery
	err     error // returned by every query when set

	// canned, when set, answers Search from scripted responses keyed by
	// "<predicate>\x00<value>" instead of simulating LIKE. Useful for
	// store collations the simulation cannot reproduce.
	canned map[string][]recordstore.Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string][]recordstore.Record)}
}

func (f *fakeStore) add(field string, id int64, value string) {
	f.records[field] = append(f.records[field], recordstore.Record{ID: id, Value: value})
}

func (f *fakeStore) Search(ctx context.Context, entity, field string, pred recordstore.Predicate, value string, limit int) ([]recordstore.Record, error) {
	f.mu.Lock()
	f.queries = append(f.queries, loggedQuery{field: field, pred: pred, value: value})
	f.mu.Unlock()

	if f.err != nil {
		return nil, &recordstore.StoreError{Op: "search", Entity: entity, Field: field, Err: f.err}
	}

	if f.canned != nil {
		return f.canned[pred.String()+"\x00"+value], nil
	}

	var out []recordstore.Record
	for _, r := range f.records[field] {
		var ok bool
		if pred == recordstore.Equals {
			ok = r.Value == value
		} else {
			ok = likeContains(r.Value, value)
		}
		if ok {
			out = append(out, r)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Count(ctx context.Context, entity, field string, pred recordstore.Predicate, value string) (int, error) {
	if f.err != nil {
		return 0, &recordstore.StoreError{Op: "count", Entity: entity, Field: field, Err: f.err}
	}
	n := 0
	for _, r := range f.records[field] {
		if pred == recordstore.Equals && r.Value == value {
			n++
		} else if pred == recordstore.Contains && likeContains(r.Value, value) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Close() error { return nil }

// queriesFor returns the logged queries against one field.
func (f *fakeStore) queriesFor(field string) []loggedQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []loggedQuery
	for _, q := range f.queries {
		if q.field == field {
			out = append(out, q)
		}
	}
	return out
}

// likeContains matches value like SQL `LIKE '%'||pattern||'%'`:
// case-insensitive, with embedded % matching any run of characters.
func likeContains(value, pattern string) bool {
	v := strings.ToLower(value)
	pos := 0
	for _, part := range strings.Split(strings.ToLower(pattern), "%") {
		if part == "" {
			continue
		}
		i := strings.Index(v[pos:], part)
		if i < 0 {
			return false
		}
		pos += i + len(part)
	}
	return true
}
