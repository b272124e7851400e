package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Barcode     string `json:"barcode"`
	SKU         string `json:"sku"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	MinQuantity int64  `json:"min_quantity" validate:"min=0"`
	CostPrice   string `json:"cost_price"`
	SalePrice   string `json:"sale_price"`
	Location    string `json:"location"`
	Supplier    string `json:"supplier"`
}

// UpdateProductRequest actualización parcial: solo las claves presentes se aplican.
type UpdateProductRequest struct {
	Fields map[string]any `json:"fields" validate:"required"`
}
