package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricingworks/pricing-mcp-go/catalog"
	"github.com/pricingworks/pricing-mcp-go/tools"
)

// stubReader implements tools.ProductReader and records how it was used.
type stubReader struct {
	product     catalog.Product
	products    catalog.Products
	findErr     error
	searchErr   error
	findCalls   int
	searchCalls int
	gotID       int32
	gotQuery    string
}

func (s *stubReader) FindProductByID(_ context.Context, productID int32) (catalog.Product, error) {
	s.findCalls++
	s.gotID = productID

	return s.product, s.findErr
}

func (s *stubReader) SearchProductsByName(_ context.Context, query string) (catalog.Products, error) {
	s.searchCalls++
	s.gotQuery = query

	return s.products, s.searchErr
}

func strPtr(s string) *string {
	return &s
}

func Test_GetProductPrice_ReturnsTheProduct(t *testing.T) {
	// setup
	reader := &stubReader{
		product: catalog.Product{
			ID:          7,
			Name:        "Desk Lamp",
			Price:       24.99,
			Description: strPtr("Adjustable LED desk lamp"),
		},
	}
	handler := tools.NewGetProductPriceHandler(reader)

	// act
	response, err := handler(context.Background(), []byte(`{"product_id": 7}`))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(7), reader.gotID)
	assert.JSONEq(
		t,
		`{"product": {"id": 7, "name": "Desk Lamp", "price": 24.99, "description": "Adjustable LED desk lamp"}}`,
		string(response),
	)
}

func Test_GetProductPrice_SerializesNullDescription(t *testing.T) {
	// setup
	reader := &stubReader{
		product: catalog.Product{ID: 3, Name: "Mystery Box", Price: 9.5},
	}
	handler := tools.NewGetProductPriceHandler(reader)

	// act
	response, err := handler(context.Background(), []byte(`{"product_id": 3}`))

	// assert
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{"product": {"id": 3, "name": "Mystery Box", "price": 9.5, "description": null}}`,
		string(response),
	)
}

//nolint:funlen
func Test_GetProductPrice_ShouldFail_WithInvalidArguments(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "missing_product_id", payload: `{}`},
		{name: "product_id_is_a_string", payload: `{"product_id": "7"}`},
		{name: "product_id_is_a_fraction", payload: `{"product_id": 1.5}`},
		{name: "product_id_is_null", payload: `{"product_id": null}`},
		{name: "product_id_exceeds_int32", payload: `{"product_id": 3000000000}`},
		{name: "payload_is_not_json", payload: `not json at all`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			reader := &stubReader{}
			handler := tools.NewGetProductPriceHandler(reader)

			// act
			_, err := handler(context.Background(), []byte(tc.payload))

			// assert: validation fails before any catalog access
			assert.ErrorIs(t, err, tools.ErrInvalidArguments)
			assert.Zero(t, reader.findCalls)
		})
	}
}

func Test_GetProductPrice_ShouldFail_WhenProductDoesNotExist(t *testing.T) {
	// setup
	reader := &stubReader{findErr: catalog.ErrProductNotFound}
	handler := tools.NewGetProductPriceHandler(reader)

	// act
	_, err := handler(context.Background(), []byte(`{"product_id": 999999}`))

	// assert: a not-found outcome, not a database error
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.NotErrorIs(t, err, catalog.ErrQueryingProductsFailed)
	assert.ErrorContains(t, err, "999999")
}

func Test_GetProductPrice_PropagatesDatabaseErrors(t *testing.T) {
	// setup
	driverErr := errors.New("connection reset by peer")
	reader := &stubReader{findErr: errors.Join(catalog.ErrQueryingProductsFailed, driverErr)}
	handler := tools.NewGetProductPriceHandler(reader)

	// act
	_, err := handler(context.Background(), []byte(`{"product_id": 7}`))

	// assert
	assert.ErrorIs(t, err, catalog.ErrQueryingProductsFailed)
	assert.NotErrorIs(t, err, catalog.ErrProductNotFound)
}
