package catalog

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyProductsTableName = errors.New("empty productsTableName supplied")
var ErrProductNotFound = errors.New("product not found")
var ErrBuildingQueryFailed = errors.New("building the database query failed")
var ErrQueryingProductsFailed = errors.New("querying products failed")
var ErrScanningDBRowFailed = errors.New("scanning the database row failed")
