package tools

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/catalog/postgresengine"
	"github.com/pricingworks/pricing-mcp-go/config"
)

var ErrConnectingToDatabase = errors.New("connecting to the database failed")

// Startup builds the bridge.StartupFunc for the pricing operations.
//
// The returned function runs on the worker goroutine: it validates the
// configuration, constructs the pgx connection pool, verifies connectivity
// with a bounded ping, and returns the handler table bound to the catalog.
// The pool lives for the lifetime of the worker.
func Startup(cfg config.Config, options ...postgresengine.Option) bridge.StartupFunc {
	return func(ctx context.Context) (bridge.HandlerTable, error) {
		if validateErr := cfg.Validate(); validateErr != nil {
			return nil, validateErr
		}

		poolConfig, configErr := cfg.PGXPoolConfig()
		if configErr != nil {
			return nil, configErr
		}

		pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
		if poolErr != nil {
			return nil, errors.Join(ErrConnectingToDatabase, poolErr)
		}

		// pgxpool connects lazily; ping so an unreachable database fails
		// startup instead of the first operation.
		pingCtx, cancel := context.WithTimeout(ctx, cfg.AcquireTimeout)
		defer cancel()

		if pingErr := pool.Ping(pingCtx); pingErr != nil {
			pool.Close()
			return nil, errors.Join(ErrConnectingToDatabase, pingErr)
		}

		cat, catalogErr := postgresengine.NewCatalogFromPGXPool(pool, options...)
		if catalogErr != nil {
			pool.Close()
			return nil, catalogErr
		}

		return Handlers(cat), nil
	}
}
