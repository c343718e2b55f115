package helper

import (
	"log"
	"os"
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import

	"github.com/pricingworks/pricing-mcp-go/catalog"
	"github.com/pricingworks/pricing-mcp-go/testutil/postgrescatalog/config"
	"github.com/pricingworks/pricing-mcp-go/testutil/postgrescatalog/helper/postgreswrapper"
)

const createProductsTableSQL = `
	CREATE TABLE IF NOT EXISTS products (
		id integer PRIMARY KEY,
		name text NOT NULL,
		price double precision NOT NULL,
		description text
	)`

// SkipUnlessIntegration skips the test unless a test database is configured
// through the PRICING_TEST_DATABASE_URL environment variable.
func SkipUnlessIntegration(t testing.TB) {
	t.Helper()

	if os.Getenv(config.EnvTestDatabaseURL) == "" {
		t.Skipf("set %s to run catalog integration tests", config.EnvTestDatabaseURL)
	}
}

// CreateProductsTable creates the products table if it does not exist.
func CreateProductsTable(t testing.TB, wrapper postgreswrapper.Wrapper) {
	t.Helper()
	wrapper.Exec(t, createProductsTableSQL)
}

// CleanUp removes all rows from the products table.
func CleanUp(t testing.TB, wrapper postgreswrapper.Wrapper) {
	t.Helper()
	wrapper.Exec(t, "TRUNCATE TABLE products")
}

// SeedProducts inserts the given products as fixtures.
func SeedProducts(t testing.TB, wrapper postgreswrapper.Wrapper, products catalog.Products) {
	t.Helper()

	rows := make([]any, 0, len(products))
	for _, product := range products {
		rows = append(rows, goqu.Record{
			"id":          product.ID,
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
		})
	}

	insertSQL, _, toSQLErr := goqu.Dialect("postgres").
		Insert("products").
		Rows(rows...).
		ToSQL()
	if toSQLErr != nil {
		log.Fatal("Failed to build insert statement, error: ", toSQLErr)
	}

	wrapper.Exec(t, insertSQL)
}

// StringPtr returns a pointer to the given string, for nullable description fixtures.
func StringPtr(s string) *string {
	return &s
}
