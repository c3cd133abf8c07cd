package recordstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kolo/xmlrpc"
)

// OdooConfig holds connection settings for an Odoo record store.
type OdooConfig struct {
	// URL is the base server URL, e.g. https://erp.example.com.
	URL string

	// Database is the Odoo database name.
	Database string

	// Username and Password authenticate against /xmlrpc/2/common.
	Username string
	Password string
}

// Validate checks that all required connection settings are present.
func (c *OdooConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidConfig)
	}
	if _, err := url.Parse(c.URL); err != nil {
		return fmt.Errorf("%w: invalid url: %v", ErrInvalidConfig, err)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database is required", ErrInvalidConfig)
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidConfig)
	}
	return nil
}

// OdooStore queries an Odoo ERP over XML-RPC.
//
// Entities map to Odoo model names (res.partner, product.product, ...) and
// fields to model field names. Search uses search_read restricted to the
// queried field; Count uses search_count. The store is read-only.
type OdooStore struct {
	client   *xmlrpc.Client
	database string
	password string
	uid      int64
}

// NewOdooStore connects and authenticates against an Odoo server.
// The caller owns the returned store and must Close it.
func NewOdooStore(cfg OdooConfig) (*OdooStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := strings.TrimRight(cfg.URL, "/")

	common, err := xmlrpc.NewClient(base+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}
	defer common.Close()

	// Odoo returns boolean false instead of a fault on bad credentials,
	// so decode into an untyped reply and coerce.
	var reply interface{}
	err = common.Call("authenticate", []interface{}{
		cfg.Database,
		cfg.Username,
		cfg.Password,
		map[string]interface{}{},
	}, &reply)
	if err != nil {
		return nil, fmt.Errorf("authenticate against %s: %w", cfg.URL, err)
	}
	uid, ok := asInt64(reply)
	if !ok || uid <= 0 {
		return nil, fmt.Errorf("%w: check credentials for database %q", ErrAuthFailed, cfg.Database)
	}

	object, err := xmlrpc.NewClient(base+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.URL, err)
	}

	return &OdooStore{
		client:   object,
		database: cfg.Database,
		password: cfg.Password,
		uid:      uid,
	}, nil
}

// Search implements Store using search_read restricted to the queried field.
func (s *OdooStore) Search(ctx context.Context, entity, field string, pred Predicate, value string, limit int) ([]Record, error) {
	options := map[string]interface{}{"fields": []string{field}}
	if limit > 0 {
		options["limit"] = limit
	}

	var reply interface{}
	err := s.call(ctx, entity, "search_read", []interface{}{domain(field, pred, value)}, options, &reply)
	if err != nil {
		return nil, &StoreError{Op: "search", Entity: entity, Field: field, Err: err}
	}

	rows, ok := reply.([]interface{})
	if !ok {
		return nil, &StoreError{Op: "search", Entity: entity, Field: field,
			Err: fmt.Errorf("unexpected search_read reply type %T", reply)}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := asInt64(m["id"])
		if !ok {
			continue
		}
		// Unset fields come back as boolean false.
		raw, _ := m[field].(string)
		records = append(records, Record{ID: id, Value: raw})
	}
	return records, nil
}

// Count implements Store using search_count.
func (s *OdooStore) Count(ctx context.Context, entity, field string, pred Predicate, value string) (int, error) {
	var reply interface{}
	err := s.call(ctx, entity, "search_count", []interface{}{domain(field, pred, value)}, nil, &reply)
	if err != nil {
		return 0, &StoreError{Op: "count", Entity: entity, Field: field, Err: err}
	}
	n, ok := asInt64(reply)
	if !ok {
		return 0, &StoreError{Op: "count", Entity: entity, Field: field,
			Err: fmt.Errorf("unexpected search_count reply type %T", reply)}
	}
	return int(n), nil
}

// Close releases the XML-RPC connection.
func (s *OdooStore) Close() error {
	return s.client.Close()
}

// call invokes execute_kw, honoring context cancellation. The underlying
// XML-RPC client has no context support, so a cancelled call is abandoned
// rather than interrupted; the transport finishes in the background.
func (s *OdooStore) call(ctx context.Context, entity, method string, args []interface{}, options map[string]interface{}, reply *interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := []interface{}{s.database, s.uid, s.password, entity, method, args}
	if options != nil {
		params = append(params, options)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.client.Call("execute_kw", params, reply)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// domain builds the single-clause Odoo search domain for a predicate.
func domain(field string, pred Predicate, value string) []interface{} {
	var clause []interface{}
	switch pred {
	case Equals:
		clause = []interface{}{field, "=", value}
	default:
		clause = []interface{}{field, "ilike", "%" + value + "%"}
	}
	return []interface{}{clause}
}

// asInt64 coerces the numeric types the XML-RPC decoder may produce.
func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
