package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de una empresa.
// Los precios usan decimal para evitar errores de redondeo binario.
type Product struct {
	ID          int64
	Barcode     string // único por almacén
	SKU         string // único por almacén
	Name        string
	Description string
	Category    string
	Brand       string
	Quantity    int64
	MinQuantity int64
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	Location    string
	Supplier    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
