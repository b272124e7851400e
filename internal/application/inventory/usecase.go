package inventory

import (
	"context"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario (in, out, adjust)
// de forma transaccional: el ajuste de existencia del producto y la fila del
// log de movimientos entran en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es siempre positiva para in/out; en adjust lleva el signo del ajuste.
type MovementInput struct {
	ProductID int64
	Type      string
	Quantity  int64
	Reason    string
	InvoiceNo string
	UserID    int64
}

// RegisterMovement valida la entrada, resuelve el delta según el tipo y
// ejecuta ajuste + log en una transacción. Una salida que dejaría la
// existencia negativa devuelve domain.ErrInsufficientStock y no persiste nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	var delta int64
	switch input.Type {
	case entity.MovementTypeIn:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		delta = input.Quantity
	case entity.MovementTypeOut:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		delta = -input.Quantity
	case entity.MovementTypeAdjust:
		if input.Quantity == 0 {
			return domain.ErrInvalidInput
		}
		delta = input.Quantity
	default:
		return domain.ErrInvalidInput
	}
	if input.ProductID == 0 || input.UserID == 0 {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(movements MovementWriter, products ProductAdjuster) error {
		product, err := products.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := products.AdjustQuantity(input.ProductID, delta); err != nil {
			return err
		}
		return movements.Insert(&entity.StockMovement{
			ProductID: input.ProductID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Reason:    input.Reason,
			InvoiceNo: input.InvoiceNo,
			UserID:    input.UserID,
		})
	})
}

// History devuelve el log de movimientos de un producto.
func (uc *RegisterMovementUseCase) History(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.movementRepo.ListByProduct(productID, limit, offset)
}

// LowStock devuelve los productos cuya existencia está en o por debajo del
// mínimo configurado, para armar la lista de reposición.
func (uc *RegisterMovementUseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.productRepo.List("", 1000, 0)
	if err != nil {
		return nil, err
	}
	var low []*entity.Product
	for _, p := range products {
		if p.MinQuantity > 0 && p.Quantity <= p.MinQuantity {
			low = append(low, p)
		}
	}
	return low, nil
}
