// Package postgreswrapper abstracts over the supported database adapter types
// so the catalog integration tests can run unchanged against pgx.pool, sql.db,
// and sqlx.db connections, selected with the ADAPTER_TYPE environment variable.
package postgreswrapper
