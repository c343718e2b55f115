package tools

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/catalog"
)

// Operation names, as registered with the bridge and with the MCP host.
const (
	OpGetProductPrice bridge.Operation = "get_product_price"
	OpSearchProducts  bridge.Operation = "search_products"
)

var ErrInvalidArguments = errors.New("invalid arguments")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProductReader is the narrow catalog surface the tool handlers depend on.
// *postgresengine.Catalog satisfies it.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID int32) (catalog.Product, error)
	SearchProductsByName(ctx context.Context, query string) (catalog.Products, error)
}

// Handlers builds the handler table for all pricing operations, bound to the
// given reader.
func Handlers(reader ProductReader) bridge.HandlerTable {
	return bridge.HandlerTable{
		OpGetProductPrice: NewGetProductPriceHandler(reader),
		OpSearchProducts:  NewSearchProductsHandler(reader),
	}
}
