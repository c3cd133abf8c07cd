package recordstore

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resolvd/internal/config"
)

// NewStore creates a record store from configuration.
//
// The driver field selects the adapter ("odoo" or "sqlite"); the configured
// query timeout, rate limit, and metrics instrumentation are layered on as
// decorators, outermost first:
//
//	metrics -> rate limit -> timeout -> adapter
//
// so that throttle waiting and the query deadline are both visible in the
// recorded latency.
func NewStore(cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case "odoo":
		store, err = NewOdooStore(OdooConfig{
			URL:      cfg.URL,
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password.Value(),
		})
	case "sqlite":
		store, err = NewSQLiteStore(SQLiteConfig{Path: cfg.Path})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("record store opened",
		zap.String("driver", cfg.Driver),
		zap.Duration("query_timeout", cfg.QueryTimeout.Duration()),
		zap.Float64("rate_limit", cfg.RateLimit),
	)

	store = WithTimeout(store, cfg.QueryTimeout.Duration())
	if cfg.RateLimit > 0 {
		store = WithRateLimit(store, cfg.RateLimit, cfg.RateBurst)
	}
	return WithMetrics(store, cfg.Driver), nil
}
