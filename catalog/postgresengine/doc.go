// Package postgresengine provides a PostgreSQL implementation of the product catalog.
//
// This package implements read-only catalog queries using PostgreSQL as the storage
// backend, supporting multiple database adapters (pgx, sql.DB, sqlx) behind a
// common interface.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Case-insensitive substring search on product names
//   - Configurable table name and dual-logger support
//   - Query timing and error metrics through pluggable collectors
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	cat, _ := postgresengine.NewCatalogFromPGXPool(db)
//
//	// With operational logging and a custom table
//	cat, _ := postgresengine.NewCatalogFromPGXPool(
//		db,
//		postgresengine.WithTableName("store_products"),
//		postgresengine.WithLogger(logger),
//	)
//
//	product, _ := cat.FindProductByID(ctx, 42)
//	products, _ := cat.SearchProductsByName(ctx, "lamp")
package postgresengine
