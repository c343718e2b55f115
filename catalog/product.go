package catalog

// Products is an alias type for a slice of Product.
type Products = []Product

// Product is a DTO (data transfer object) holding one row of the product
// catalog as returned by a storage engine.
//
// Description is a pointer because the column is nullable; a nil value
// serializes as JSON null, matching the row it was scanned from.
type Product struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}
