package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/pricingworks/pricing-mcp-go/catalog"
	"github.com/pricingworks/pricing-mcp-go/catalog/postgresengine/internal/adapters"
)

const (
	defaultProductsTableName   = "products"
	logMsgBuildFindQueryFailed = "failed to build find query"
	logMsgBuildSearchFailed    = "failed to build search query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgProductNotFound      = "product not found"
	logMsgFindCompleted        = "find product completed"
	logMsgSearchCompleted      = "search products completed"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "catalog operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrProductID           = "product_id"
	logAttrProductCount        = "product_count"
	logAttrDurationMS          = "duration_ms"
	logActionFind              = "find"
	logActionSearch            = "search"
	colID                      = "id"
	colName                    = "name"
	colPrice                   = "price"
	colDescription             = "description"
	dialectPostgres            = "postgres"
	metricQueryDuration        = "catalog_query_duration_seconds"
	metricQueryErrors          = "catalog_query_errors_total"
	labelOperation             = "operation"
	wildcard                   = "%"
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// Catalog provides read access to the product catalog stored in PostgreSQL.
// It leverages a database adapter and supports customizable logging, metrics,
// and table configuration.
type Catalog struct {
	db                adapters.DBAdapter
	productsTableName string
	logger            catalog.Logger
	contextualLogger  catalog.ContextualLogger
	metricsCollector  catalog.MetricsCollector
}

// NewCatalogFromPGXPool creates a new Catalog using a pgx Pool with optional configuration.
func NewCatalogFromPGXPool(db *pgxpool.Pool, options ...Option) (*Catalog, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newCatalog(adapters.NewPGXAdapter(db), options...)
}

// NewCatalogFromSQLDB creates a new Catalog using a sql.DB with optional configuration.
func NewCatalogFromSQLDB(db *sql.DB, options ...Option) (*Catalog, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newCatalog(adapters.NewSQLAdapter(db), options...)
}

// NewCatalogFromSQLX creates a new Catalog using a sqlx.DB with optional configuration.
func NewCatalogFromSQLX(db *sqlx.DB, options ...Option) (*Catalog, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newCatalog(adapters.NewSQLXAdapter(db), options...)
}

func newCatalog(db adapters.DBAdapter, options ...Option) (*Catalog, error) {
	c := &Catalog{
		db:                db,
		productsTableName: defaultProductsTableName,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// FindProductByID retrieves the product with the given id.
// It returns catalog.ErrProductNotFound when no row matches.
func (c *Catalog) FindProductByID(ctx context.Context, productID int32) (catalog.Product, error) {
	var empty catalog.Product

	sqlQuery, buildQueryErr := c.buildFindQuery(productID)
	if buildQueryErr != nil {
		c.logError(ctx, logMsgBuildFindQueryFailed, logAttrError, buildQueryErr.Error())
		return empty, buildQueryErr
	}

	rows, duration, queryErr := c.executeQuery(ctx, sqlQuery, logActionFind)
	if queryErr != nil {
		return empty, queryErr
	}
	defer c.closeRows(ctx, rows)

	if !rows.Next() {
		c.logOperation(ctx, logMsgProductNotFound, logAttrProductID, productID)
		return empty, catalog.ErrProductNotFound
	}

	product, scanErr := c.scanProduct(ctx, rows)
	if scanErr != nil {
		return empty, scanErr
	}

	c.logOperation(
		ctx,
		logMsgFindCompleted,
		logAttrProductID, product.ID,
		logAttrDurationMS, c.durationToMilliseconds(duration))

	return product, nil
}

// SearchProductsByName retrieves all products whose name contains the given
// query, compared case-insensitively. An empty result is not an error.
func (c *Catalog) SearchProductsByName(ctx context.Context, query string) (catalog.Products, error) {
	sqlQuery, buildQueryErr := c.buildSearchQuery(query)
	if buildQueryErr != nil {
		c.logError(ctx, logMsgBuildSearchFailed, logAttrError, buildQueryErr.Error())
		return nil, buildQueryErr
	}

	rows, duration, queryErr := c.executeQuery(ctx, sqlQuery, logActionSearch)
	if queryErr != nil {
		return nil, queryErr
	}
	defer c.closeRows(ctx, rows)

	products := make(catalog.Products, 0)

	for rows.Next() {
		product, scanErr := c.scanProduct(ctx, rows)
		if scanErr != nil {
			return nil, scanErr
		}

		products = append(products, product)
	}

	c.logOperation(
		ctx,
		logMsgSearchCompleted,
		logAttrProductCount, len(products),
		logAttrDurationMS, c.durationToMilliseconds(duration))

	return products, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (c *Catalog) executeQuery(ctx context.Context, sqlQuery string, action string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := c.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	c.logQueryWithDuration(ctx, sqlQuery, action, duration)
	c.recordQueryDuration(ctx, action, duration)

	if queryErr != nil {
		c.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		c.incrementErrorCounter(ctx, action)

		return nil, duration, errors.Join(catalog.ErrQueryingProductsFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (c *Catalog) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		c.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// scanProduct scans the current row into a catalog.Product.
func (c *Catalog) scanProduct(ctx context.Context, rows adapters.DBRows) (catalog.Product, error) {
	var product catalog.Product

	rowScanErr := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Description)
	if rowScanErr != nil {
		c.logError(ctx, logMsgScanRowFailed, logAttrError, rowScanErr.Error())
		return catalog.Product{}, errors.Join(catalog.ErrScanningDBRowFailed, rowScanErr)
	}

	return product, nil
}

func (c *Catalog) buildFindQuery(productID int32) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(c.productsTableName).
		Select(colID, colName, colPrice, colDescription).
		Where(goqu.C(colID).Eq(productID)).
		Limit(1)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (c *Catalog) buildSearchQuery(query string) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(c.productsTableName).
		Select(colID, colName, colPrice, colDescription).
		Where(goqu.C(colName).ILike(wildcard + query + wildcard)).
		Order(goqu.I(colID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(catalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (c *Catalog) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	if c.contextualLogger != nil {
		c.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, c.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if c.logger != nil {
		c.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, c.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (c *Catalog) logOperation(ctx context.Context, action string, args ...any) {
	if c.contextualLogger != nil {
		c.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if c.logger != nil {
		c.logger.Info(logMsgOperation+action, args...)
	}
}

func (c *Catalog) logWarn(ctx context.Context, msg string, args ...any) {
	if c.contextualLogger != nil {
		c.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Catalog) logError(ctx context.Context, msg string, args ...any) {
	if c.contextualLogger != nil {
		c.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if c.logger != nil {
		c.logger.Error(msg, args...)
	}
}

// recordQueryDuration records the query duration, preferring the context-aware collector methods.
func (c *Catalog) recordQueryDuration(ctx context.Context, action string, duration time.Duration) {
	if c.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: action}

	if contextual, ok := c.metricsCollector.(catalog.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricQueryDuration, duration, labels)
		return
	}

	c.metricsCollector.RecordDuration(metricQueryDuration, duration, labels)
}

func (c *Catalog) incrementErrorCounter(ctx context.Context, action string) {
	if c.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: action}

	if contextual, ok := c.metricsCollector.(catalog.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricQueryErrors, labels)
		return
	}

	c.metricsCollector.IncrementCounter(metricQueryErrors, labels)
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (c *Catalog) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
