package postgresengine

import (
	"github.com/pricingworks/pricing-mcp-go/catalog"
)

// Option defines a functional option for configuring Catalog.
type Option func(*Catalog) error

// WithTableName sets the products table name for the Catalog.
func WithTableName(tableName string) Option {
	return func(c *Catalog) error {
		if tableName == "" {
			return catalog.ErrEmptyProductsTableName
		}

		c.productsTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Catalog.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger catalog.Logger) Option {
	return func(c *Catalog) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Catalog.
// The collector will receive query durations, result counts, and error counters.
func WithMetrics(collector catalog.MetricsCollector) Option {
	return func(c *Catalog) error {
		c.metricsCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Catalog.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(c *Catalog) error {
		c.contextualLogger = logger
		return nil
	}
}
