package recordstore

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for record store construction and configuration.
var (
	// ErrInvalidConfig indicates invalid adapter configuration.
	ErrInvalidConfig = errors.New("invalid record store configuration")

	// ErrUnknownDriver is returned by the factory for an unrecognized driver name.
	ErrUnknownDriver = errors.New("unknown record store driver")

	// ErrAuthFailed indicates the store rejected the configured credentials.
	ErrAuthFailed = errors.New("record store authentication failed")
)

// Predicate selects how a query value is compared against a field.
type Predicate int

const (
	// Equals matches the field value exactly as stored.
	Equals Predicate = iota

	// Contains matches fields containing the value as a case-insensitive
	// substring. The value may itself contain `%` wildcard characters;
	// adapters pass them through unescaped, so "a%b%c" matches any field
	// containing a, b and c in order.
	Contains
)

// String returns the predicate name for logs and metrics labels.
func (p Predicate) String() string {
	switch p {
	case Equals:
		return "equals"
	case Contains:
		return "contains"
	default:
		return fmt.Sprintf("predicate(%d)", int(p))
	}
}

// Record is one row returned by a search: the record identifier and the
// value of the queried field.
type Record struct {
	ID    int64
	Value string
}

// Store is the read-only query interface to the remote record store.
//
// Implementations must be safe for concurrent use; the resolver issues
// queries from concurrent FindID calls without any coordination.
type Store interface {
	// Search returns up to limit records of the given entity whose field
	// matches value under the predicate. A limit <= 0 means no explicit
	// bound (adapters may still cap it).
	Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error)

	// Count returns the number of records of the given entity whose field
	// matches value under the predicate. Diagnostics only; the resolution
	// path never depends on it.
	Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error)

	// Close releases the underlying connection.
	Close() error
}

// StoreError wraps any failure communicating with the record store:
// network, auth, malformed response. The resolver propagates it unchanged
// so callers can apply their own backoff policy.
type StoreError struct {
	Op     string // "search" or "count"
	Entity string
	Field  string
	Err    error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("record store %s %s.%s: %v", e.Op, e.Entity, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}
