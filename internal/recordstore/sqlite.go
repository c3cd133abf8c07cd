package recordstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // CGO-free sqlite driver
)

// SQLiteConfig holds settings for a locally hosted record store.
type SQLiteConfig struct {
	// Path is the database file path, or ":memory:" for tests.
	Path string
}

// Validate checks the configuration.
func (c *SQLiteConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidConfig)
	}
	return nil
}

// Entities map to table names (dots allowed, mirroring ERP model names) and
// fields to column names. Both are interpolated into SQL as quoted
// identifiers, so they are validated against a strict charset first.
var (
	entityPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	fieldPattern  = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// SQLiteStore serves record lookups from a local SQLite database.
//
// Each entity is a table with an integer `id` column plus one column per
// searchable field. Contains queries use LIKE, which is case-insensitive
// for ASCII and passes `%` wildcards in the value through, matching the
// Contains contract.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at cfg.Path.
// The caller owns the returned store and must Close it.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", cfg.Path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite database %s: %w", cfg.Path, err)
	}

	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle for test fixtures.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Search implements Store.
func (s *SQLiteStore) Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error) {
	if err := validateIdentifiers(entity, field); err != nil {
		return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: err}
	}

	query := fmt.Sprintf(`SELECT id, %q FROM %q WHERE %s`, field, entity, predicateClause(field, pred))
	args := []interface{}{value}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: err}
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			id  int64
			val sql.NullString
		)
		if err := rows.Scan(&id, &val); err != nil {
			return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: err}
		}
		records = append(records, Record{ID: id, Value: val.String})
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: err}
	}
	return records, nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error) {
	if err := validateIdentifiers(entity, field); err != nil {
		return 0, &StoreError{Op: "count", Entity: entity, Field: field, Err: err}
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %q WHERE %s`, entity, predicateClause(field, pred))

	var n int
	if err := s.db.QueryRowContext(ctx, query, value).Scan(&n); err != nil {
		return 0, &StoreError{Op: "count", Entity: entity, Field: field, Err: err}
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func validateIdentifiers(entity, field string) error {
	if !entityPattern.MatchString(entity) {
		return fmt.Errorf("invalid entity name %q", entity)
	}
	if !fieldPattern.MatchString(field) {
		return fmt.Errorf("invalid field name %q", field)
	}
	return nil
}

func predicateClause(field string, pred Predicate) string {
	if pred == Equals {
		return fmt.Sprintf("%q = ?", field)
	}
	return fmt.Sprintf("%q LIKE '%%' || ? || '%%'", field)
}
