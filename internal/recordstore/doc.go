// Package recordstore defines the read-only query interface to the
// authoritative record store and its adapters.
//
// The store is the system of record holding canonical entities (customers,
// products, people), each keyed by an opaque integer identifier. The resolver
// never holds a local copy of its contents and never writes to it; every
// lookup is a live query.
//
// Two adapters are provided:
//   - OdooStore speaks XML-RPC to an Odoo ERP (search_read / search_count on
//     /xmlrpc/2/object, authentication on /xmlrpc/2/common).
//   - SQLiteStore serves locally hosted record tables and the test suite.
//
// Connections are explicit injected dependencies with an Open/Close
// lifecycle; there is no ambient shared client state.
//
// Decorators compose caller-side policy around any Store:
//
//	store, err := recordstore.NewStore(cfg, logger)
//	store = recordstore.WithTimeout(store, 10*time.Second)
//	store = recordstore.WithRateLimit(store, 20, 5)
//	store = recordstore.WithMetrics(store, "odoo")
//	defer store.Close()
//
// The core resolver deliberately carries no timeout or retry logic of its
// own; adapters surface every communication failure as a *StoreError and the
// caller decides what to do about it.
package recordstore
