package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricingworks/pricing-mcp-go/catalog"
	"github.com/pricingworks/pricing-mcp-go/testutil/postgrescatalog/helper"
	"github.com/pricingworks/pricing-mcp-go/testutil/postgrescatalog/helper/postgreswrapper"
)

// The tests in this file need a running Postgres instance; they are skipped
// unless PRICING_TEST_DATABASE_URL is set. The adapter under test is selected
// with ADAPTER_TYPE (pgx.pool, sql.db, sqlx.db).

func setupCatalogWithFixtures(t *testing.T) postgreswrapper.Wrapper {
	t.Helper()

	helper.SkipUnlessIntegration(t)

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	t.Cleanup(wrapper.Close)

	helper.CreateProductsTable(t, wrapper)
	helper.CleanUp(t, wrapper)
	helper.SeedProducts(t, wrapper, catalog.Products{
		{ID: 1, Name: "Desk Lamp", Price: 24.99, Description: helper.StringPtr("Adjustable LED desk lamp")},
		{ID: 2, Name: "Office Chair", Price: 189.00},
		{ID: 3, Name: "Floor Lamp", Price: 59.00, Description: helper.StringPtr("Three-legged floor lamp")},
	})

	return wrapper
}

func Test_FindProductByID_AgainstPostgres(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := setupCatalogWithFixtures(t)
	cat := wrapper.GetCatalog()

	// act
	product, err := cat.FindProductByID(ctxWithTimeout, 1)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(1), product.ID)
	assert.Equal(t, "Desk Lamp", product.Name)
	assert.InDelta(t, 24.99, product.Price, 0.0001)
	require.NotNil(t, product.Description)
	assert.Equal(t, "Adjustable LED desk lamp", *product.Description)
}

func Test_FindProductByID_NotFound_AgainstPostgres(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := setupCatalogWithFixtures(t)
	cat := wrapper.GetCatalog()

	// act
	_, err := cat.FindProductByID(ctxWithTimeout, 999999)

	// assert
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.NotErrorIs(t, err, catalog.ErrQueryingProductsFailed)
}

func Test_SearchProductsByName_IsCaseInsensitive_AgainstPostgres(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := setupCatalogWithFixtures(t)
	cat := wrapper.GetCatalog()

	// act
	products, err := cat.SearchProductsByName(ctxWithTimeout, "LaMp")

	// assert: both lamps, in id order
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Desk Lamp", products[0].Name)
	assert.Equal(t, "Floor Lamp", products[1].Name)
}

func Test_SearchProductsByName_NoMatches_AgainstPostgres(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := setupCatalogWithFixtures(t)
	cat := wrapper.GetCatalog()

	// act
	products, err := cat.SearchProductsByName(ctxWithTimeout, "zzz-no-match")

	// assert
	require.NoError(t, err)
	assert.Empty(t, products)
}

func Test_SearchProductsByName_NullDescription_AgainstPostgres(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := setupCatalogWithFixtures(t)
	cat := wrapper.GetCatalog()

	// act
	products, err := cat.SearchProductsByName(ctxWithTimeout, "chair")

	// assert
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].Description)
}
