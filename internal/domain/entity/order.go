package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y tipos de pedido.
const (
	OrderStatusPending = "pending"

	OrderTypePurchase = "purchase"
	OrderTypeSale     = "sale"
)

// Order representa un pedido (compra o venta) dentro del almacén de la empresa.
type Order struct {
	ID                int64
	Number            string // único por almacén
	CustomerID        *int64
	UserID            int64 // TenantUser que lo registró
	Status            string
	Type              string
	OrderedAt         time.Time
	ExpectedDelivery  *time.Time
	DeliveredAt       *time.Time
	Total             decimal.Decimal
	Notes             string
}

// OrderItem es una línea de pedido.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderTracking registra el rastreo de entrega de un pedido.
type OrderTracking struct {
	ID        int64
	OrderID   int64
	Status    string
	Location  string
	Notes     string
	UserID    int64
	UpdatedAt time.Time
}
