package tools

import (
	"context"
	"fmt"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/catalog"
)

type searchProductsArgs struct {
	Query *string `json:"query"`
}

type searchProductsResponse struct {
	Products catalog.Products `json:"products"`
	Count    int              `json:"count"`
}

// NewSearchProductsHandler builds the handler for the search_products
// operation. The payload must carry a string query; the response lists all
// products whose name contains the query (case-insensitive) together with
// their count. No match yields an empty list, not an error.
func NewSearchProductsHandler(reader ProductReader) bridge.HandlerFunc {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		query, validationErr := parseSearchProductsArgs(payload)
		if validationErr != nil {
			return nil, validationErr
		}

		products, searchErr := reader.SearchProductsByName(ctx, query)
		if searchErr != nil {
			return nil, searchErr
		}

		if products == nil {
			products = make(catalog.Products, 0)
		}

		return json.Marshal(searchProductsResponse{
			Products: products,
			Count:    len(products),
		})
	}
}

func parseSearchProductsArgs(payload []byte) (string, error) {
	var args searchProductsArgs

	if unmarshalErr := json.Unmarshal(payload, &args); unmarshalErr != nil {
		return "", fmt.Errorf("%w: missing or invalid query parameter", ErrInvalidArguments)
	}

	if args.Query == nil {
		return "", fmt.Errorf("%w: missing or invalid query parameter", ErrInvalidArguments)
	}

	return *args.Query, nil
}
