package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// ProductRepository define el puerto de persistencia de productos del almacén.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(filter string, limit, offset int) ([]*entity.Product, error)
	// UpdateFields aplica una actualización parcial con lista de campos
	// permitidos; claves desconocidas se ignoran.
	UpdateFields(id int64, fields map[string]any) error
	Delete(id int64) error
	// AdjustQuantity suma delta (con signo) a la existencia; devuelve
	// domain.ErrInsufficientStock si el resultado quedaría negativo.
	AdjustQuantity(id, delta int64) error
}
