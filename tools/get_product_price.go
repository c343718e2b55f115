package tools

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/catalog"
)

type getProductPriceArgs struct {
	ProductID *int64 `json:"product_id"`
}

type getProductPriceResponse struct {
	Product catalog.Product `json:"product"`
}

// NewGetProductPriceHandler builds the handler for the get_product_price
// operation. The payload must carry an integer product_id; the response wraps
// the matching product, or the handler fails with a not-found error.
func NewGetProductPriceHandler(reader ProductReader) bridge.HandlerFunc {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		productID, validationErr := parseGetProductPriceArgs(payload)
		if validationErr != nil {
			return nil, validationErr
		}

		product, findErr := reader.FindProductByID(ctx, productID)
		if findErr != nil {
			if errors.Is(findErr, catalog.ErrProductNotFound) {
				return nil, fmt.Errorf("product %d: %w", productID, catalog.ErrProductNotFound)
			}

			return nil, findErr
		}

		return json.Marshal(getProductPriceResponse{Product: product})
	}
}

func parseGetProductPriceArgs(payload []byte) (int32, error) {
	var args getProductPriceArgs

	if unmarshalErr := json.Unmarshal(payload, &args); unmarshalErr != nil {
		return 0, fmt.Errorf("%w: missing or invalid product_id parameter", ErrInvalidArguments)
	}

	if args.ProductID == nil {
		return 0, fmt.Errorf("%w: missing or invalid product_id parameter", ErrInvalidArguments)
	}

	if *args.ProductID < math.MinInt32 || *args.ProductID > math.MaxInt32 {
		return 0, fmt.Errorf("%w: product_id out of range", ErrInvalidArguments)
	}

	return int32(*args.ProductID), nil
}
