package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/pricingworks/pricing-mcp-go/catalog/postgresengine"
	"github.com/pricingworks/pricing-mcp-go/testutil/postgrescatalog/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// EnvAdapterType selects the adapter the wrapper is built on.
const EnvAdapterType = "ADAPTER_TYPE"

// Wrapper interface to abstract over the different adapter types.
type Wrapper interface {
	GetCatalog() *postgresengine.Catalog
	Exec(t testing.TB, sqlStatement string)
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing.
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	cat  *postgresengine.Catalog
}

func (w *PGXPoolWrapper) GetCatalog() *postgresengine.Catalog {
	return w.cat
}

func (w *PGXPoolWrapper) Exec(t testing.TB, sqlStatement string) {
	if _, err := w.pool.Exec(context.Background(), sqlStatement); err != nil {
		t.Fatalf("failed to execute %q: %v", sqlStatement, err)
	}
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	db  *sql.DB
	cat *postgresengine.Catalog
}

func (w *SQLDBWrapper) GetCatalog() *postgresengine.Catalog {
	return w.cat
}

func (w *SQLDBWrapper) Exec(t testing.TB, sqlStatement string) {
	if _, err := w.db.ExecContext(context.Background(), sqlStatement); err != nil {
		t.Fatalf("failed to execute %q: %v", sqlStatement, err)
	}
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing.
type SQLXWrapper struct {
	db  *sqlx.DB
	cat *postgresengine.Catalog
}

func (w *SQLXWrapper) GetCatalog() *postgresengine.Catalog {
	return w.cat
}

func (w *SQLXWrapper) Exec(t testing.TB, sqlStatement string) {
	if _, err := w.db.ExecContext(context.Background(), sqlStatement); err != nil {
		t.Fatalf("failed to execute %q: %v", sqlStatement, err)
	}
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the
// ADAPTER_TYPE environment variable, defaulting to the pgx pool adapter.
// It panics on an unsupported adapter type.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	adapterTypeFromEnv := strings.ToLower(os.Getenv(EnvAdapterType))

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		pool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		if err != nil {
			t.Fatalf("failed to create pgx pool: %v", err)
		}

		cat, catalogErr := postgresengine.NewCatalogFromPGXPool(pool, options...)
		if catalogErr != nil {
			t.Fatalf("failed to create catalog: %v", catalogErr)
		}

		return &PGXPoolWrapper{pool: pool, cat: cat}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		cat, catalogErr := postgresengine.NewCatalogFromSQLDB(db, options...)
		if catalogErr != nil {
			t.Fatalf("failed to create catalog: %v", catalogErr)
		}

		return &SQLDBWrapper{db: db, cat: cat}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		cat, catalogErr := postgresengine.NewCatalogFromSQLX(db, options...)
		if catalogErr != nil {
			t.Fatalf("failed to create catalog: %v", catalogErr)
		}

		return &SQLXWrapper{db: db, cat: cat}

	default:
		panic(fmt.Sprintf("unsupported adapter type: %s", adapterTypeFromEnv))
	}
}
