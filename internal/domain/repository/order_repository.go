package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// OrderRepository define el puerto de persistencia de pedidos del almacén.
type OrderRepository interface {
	// Create inserta el pedido y sus líneas en una única transacción.
	Create(order *entity.Order, items []*entity.OrderItem) error
	GetByNumber(number string) (*entity.Order, []*entity.OrderItem, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
	AddTracking(tracking *entity.OrderTracking) error
}
