package inventory

import (
	"context"

	"github.com/jhoicas/deposito-core/internal/domain/entity"
)

// MovementWriter persiste movimientos dentro de la transacción en curso.
type MovementWriter interface {
	Insert(movement *entity.StockMovement) error
}

// ProductAdjuster lee y ajusta existencias dentro de la transacción en curso.
type ProductAdjuster interface {
	GetByID(id int64) (*entity.Product, error)
	AdjustQuantity(id, delta int64) error
}

// TxRunner ejecuta una función dentro de una transacción del almacén de la
// empresa, pasando adaptadores atados a esa tx. Garantiza que el movimiento y
// el ajuste de existencia entren juntos o no entren.
type TxRunner interface {
	Run(ctx context.Context, fn func(movements MovementWriter, products ProductAdjuster) error) error
}
