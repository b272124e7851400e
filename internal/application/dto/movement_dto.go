package dto

// RegisterMovementRequest entrada para registrar un movimiento de inventario.
// Quantity es positiva para in/out; en adjust lleva el signo del ajuste.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=in out adjust"`
	Quantity  int64  `json:"quantity" validate:"required"`
	Reason    string `json:"reason"`
	InvoiceNo string `json:"invoice_no"`
}
