package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia de depósitos del almacén.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	List(filter string) ([]*entity.Warehouse, error)
	UpdateFields(id int64, fields map[string]any) error
	Delete(id int64) error
}
