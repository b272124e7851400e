package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia del log de
// movimientos de inventario del almacén.
type StockMovementRepository interface {
	Insert(movement *entity.StockMovement) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error)
}
