// Package adapters provides database adapter implementations for the PostgreSQL product catalog.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the catalog to work seamlessly with any
// supported database connection type.
//
// The catalog is read-only, so the adapters only expose query execution
// and result handling.
package adapters
