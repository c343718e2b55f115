package postgresengine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricingworks/pricing-mcp-go/catalog"
	"github.com/pricingworks/pricing-mcp-go/catalog/postgresengine/internal/adapters"
)

// stubRow holds one fixture row in scan order: id, name, price, description.
type stubRow struct {
	id          int32
	name        string
	price       float64
	description *string
}

// stubAdapter implements adapters.DBAdapter without a database.
type stubAdapter struct {
	rows     []stubRow
	queryErr error
	scanErr  error
	gotQuery string
}

func (s *stubAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	s.gotQuery = query

	if s.queryErr != nil {
		return nil, s.queryErr
	}

	return &stubRows{rows: s.rows, scanErr: s.scanErr, cursor: -1}, nil
}

type stubRows struct {
	rows    []stubRow
	scanErr error
	cursor  int
}

func (s *stubRows) Next() bool {
	s.cursor++
	return s.cursor < len(s.rows)
}

func (s *stubRows) Scan(dest ...any) error {
	if s.scanErr != nil {
		return s.scanErr
	}

	row := s.rows[s.cursor]
	*(dest[0].(*int32)) = row.id
	*(dest[1].(*string)) = row.name
	*(dest[2].(*float64)) = row.price
	*(dest[3].(**string)) = row.description

	return nil
}

func (s *stubRows) Close() error {
	return nil
}

func newStubCatalog(t *testing.T, db *stubAdapter, options ...Option) *Catalog {
	t.Helper()

	cat, err := newCatalog(db, options...)
	require.NoError(t, err)

	return cat
}

func strPtr(s string) *string {
	return &s
}

func Test_FindProductByID_ReturnsTheMatchingRow(t *testing.T) {
	// setup
	db := &stubAdapter{rows: []stubRow{
		{id: 7, name: "Desk Lamp", price: 24.99, description: strPtr("Adjustable LED desk lamp")},
	}}
	cat := newStubCatalog(t, db)

	// act
	product, err := cat.FindProductByID(context.Background(), 7)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(7), product.ID)
	assert.Equal(t, "Desk Lamp", product.Name)
	assert.InDelta(t, 24.99, product.Price, 0.0001)
	require.NotNil(t, product.Description)
	assert.Equal(t, "Adjustable LED desk lamp", *product.Description)
}

func Test_FindProductByID_ShouldFail_WhenNoRowMatches(t *testing.T) {
	// setup
	db := &stubAdapter{}
	cat := newStubCatalog(t, db)

	// act
	_, err := cat.FindProductByID(context.Background(), 999999)

	// assert: a not-found outcome, never a database error
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.NotErrorIs(t, err, catalog.ErrQueryingProductsFailed)
}

func Test_FindProductByID_ShouldFail_WhenTheQueryFails(t *testing.T) {
	// setup
	driverErr := errors.New("connection reset by peer")
	db := &stubAdapter{queryErr: driverErr}
	cat := newStubCatalog(t, db)

	// act
	_, err := cat.FindProductByID(context.Background(), 7)

	// assert
	assert.ErrorIs(t, err, catalog.ErrQueryingProductsFailed)
	assert.ErrorIs(t, err, driverErr)
}

func Test_FindProductByID_ShouldFail_WhenScanningFails(t *testing.T) {
	// setup
	scanErr := errors.New("type mismatch")
	db := &stubAdapter{
		rows:    []stubRow{{id: 7, name: "Desk Lamp", price: 24.99}},
		scanErr: scanErr,
	}
	cat := newStubCatalog(t, db)

	// act
	_, err := cat.FindProductByID(context.Background(), 7)

	// assert
	assert.ErrorIs(t, err, catalog.ErrScanningDBRowFailed)
	assert.ErrorIs(t, err, scanErr)
}

func Test_SearchProductsByName_ReturnsAllMatches(t *testing.T) {
	// setup
	db := &stubAdapter{rows: []stubRow{
		{id: 1, name: "Desk Lamp", price: 24.99},
		{id: 4, name: "Floor Lamp", price: 59.0, description: strPtr("Three-legged floor lamp")},
	}}
	cat := newStubCatalog(t, db)

	// act
	products, err := cat.SearchProductsByName(context.Background(), "lamp")

	// assert
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int32(1), products[0].ID)
	assert.Equal(t, int32(4), products[1].ID)
}

func Test_SearchProductsByName_ReturnsEmptySlice_WhenNothingMatches(t *testing.T) {
	// setup
	db := &stubAdapter{}
	cat := newStubCatalog(t, db)

	// act
	products, err := cat.SearchProductsByName(context.Background(), "zzz-no-match")

	// assert: empty, not nil, and not an error
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func Test_BuildFindQuery_ProducesASingleRowSelect(t *testing.T) {
	// setup
	cat := newStubCatalog(t, &stubAdapter{})

	// act
	sqlQuery, err := cat.buildFindQuery(7)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "products"`)
	assert.Contains(t, sqlQuery, `"id" = 7`)
	assert.Contains(t, sqlQuery, "LIMIT 1")
}

func Test_BuildFindQuery_HonorsACustomTableName(t *testing.T) {
	// setup
	cat := newStubCatalog(t, &stubAdapter{}, WithTableName("store_products"))

	// act
	sqlQuery, err := cat.buildFindQuery(7)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "store_products"`)
}

func Test_BuildSearchQuery_ProducesACaseInsensitiveSubstringMatch(t *testing.T) {
	// setup
	cat := newStubCatalog(t, &stubAdapter{})

	// act
	sqlQuery, err := cat.buildSearchQuery("lamp")

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "ILIKE")
	assert.Contains(t, sqlQuery, "'%lamp%'")
	assert.Contains(t, sqlQuery, `ORDER BY "id" ASC`)
}

func Test_BuildSearchQuery_EscapesQuotesInTheQuery(t *testing.T) {
	// setup
	cat := newStubCatalog(t, &stubAdapter{})

	// act
	sqlQuery, err := cat.buildSearchQuery("o'brien")

	// assert: the quote is doubled, not injected
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "o''brien")
	assert.Equal(t, 1, strings.Count(sqlQuery, "ILIKE"))
}
