package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// SupplierRepository define el puerto de persistencia de proveedores del almacén.
type SupplierRepository interface {
	// Create inserta un proveedor. Devuelve domain.ErrDuplicate si el TaxID ya existe.
	Create(supplier *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	List(filter string) ([]*entity.Supplier, error)
	UpdateFields(id int64, fields map[string]any) error
	Delete(id int64) error
}
