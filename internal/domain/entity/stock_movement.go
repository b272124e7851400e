package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn     = "in"     // entrada
	MovementTypeOut    = "out"    // salida
	MovementTypeAdjust = "adjust" // ajuste
)

// StockMovement representa un movimiento de inventario dentro del almacén de
// la empresa. Las claves foráneas resuelven solo dentro del mismo almacén.
type StockMovement struct {
	ID        int64
	ProductID int64
	Type      string // in, out, adjust
	Quantity  int64  // positivo; el tipo define el signo del ajuste
	Reason    string
	InvoiceNo string
	UserID    int64 // TenantUser que lo registró
	MovedAt   time.Time
}
