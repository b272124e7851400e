package inventory

import (
	"context"

	"github.com/jhoicas/deposito-core/internal/application/dto"
)

// RegisterFromRequest adapta el request de la capa de presentación al caso de
// uso RegisterMovement. userID es el usuario autenticado de la sesión.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, userID int64, in dto.RegisterMovementRequest) error {
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		InvoiceNo: in.InvoiceNo,
		UserID:    userID,
	})
}
