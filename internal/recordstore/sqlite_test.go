package recordstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.DB().Exec(`
		CREATE TABLE "res.partner" (id INTEGER PRIMARY KEY, name TEXT);
		INSERT INTO "res.partner" (id, name) VALUES
			(1, 'ACME-123'),
			(2, 'ACME Inc'),
			(3, 'Globex Corporation'),
			(4, NULL);
	`)
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreSearchEquals(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Search(context.Background(), "res.partner", "name", Equals, "ACME-123", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "ACME-123", records[0].Value)

	// Equals is exact, not a substring match.
	records, err = store.Search(context.Background(), "res.partner", "name", Equals, "ACME", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStoreSearchContains(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Search(context.Background(), "res.partner", "name", Contains, "acme", 10)
	require.NoError(t, err)
	assert.Len(t, records, 2, "LIKE must be case-insensitive")

	// The limit bounds the result count.
	records, err = store.Search(context.Background(), "res.partner", "name", Contains, "acme", 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStoreContainsWildcardPassthrough(t *testing.T) {
	store := newTestStore(t)

	// "g%corp" must match "Globex Corporation": embedded % wildcards pass
	// through unescaped. This is how the interleaved-wildcard fallback
	// reaches the store.
	records, err := store.Search(context.Background(), "res.partner", "name", Contains, "g%corp", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].ID)
}

func TestSQLiteStoreCount(t *testing.T) {
	store := newTestStore(t)

	n, err := store.Count(context.Background(), "res.partner", "name", Contains, "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.Count(context.Background(), "res.partner", "name", Equals, "nothing")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteStoreNullValuesExcluded(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Search(context.Background(), "res.partner", "name", Contains, "", 10)
	require.NoError(t, err)
	assert.Len(t, records, 3, "NULL field values never match")
}

func TestSQLiteStoreRejectsBadIdentifiers(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), `res"partner`, "name", Equals, "x", 10)
	require.Error(t, err)
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "search", storeErr.Op)

	_, err = store.Count(context.Background(), "res.partner", "name; DROP TABLE", Equals, "x")
	require.Error(t, err)
}

func TestSQLiteStoreConfigValidation(t *testing.T) {
	_, err := NewSQLiteStore(SQLiteConfig{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
