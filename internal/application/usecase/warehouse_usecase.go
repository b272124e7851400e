package usecase

import (
	"strings"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para depósitos del almacén de la sesión.
type WarehouseUseCase struct {
	warehouses func(handle string) repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouses func(handle string) repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses}
}

// Create crea un depósito nuevo.
func (uc *WarehouseUseCase) Create(session *entity.Session, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return nil, domain.ErrInsufficientPrivilege
	}
	if strings.TrimSpace(in.Name) == "" || in.Type == "" || in.TotalCapacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	warehouse := &entity.Warehouse{
		Name:          strings.TrimSpace(in.Name),
		Type:          in.Type,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Zip:           in.Zip,
		ManagerUserID: in.ManagerUserID,
		TotalCapacity: in.TotalCapacity,
	}
	if err := uc.warehouses(session.StoreHandle).Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Get obtiene un depósito por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *WarehouseUseCase) Get(session *entity.Session, id int64) (*entity.Warehouse, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	warehouse, err := uc.warehouses(session.StoreHandle).GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return warehouse, nil
}

// List devuelve depósitos, opcionalmente filtrados por nombre o ciudad.
func (uc *WarehouseUseCase) List(session *entity.Session, filter string) ([]*entity.Warehouse, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	return uc.warehouses(session.StoreHandle).List(filter)
}

// Update aplica una actualización parcial de campos permitidos.
func (uc *WarehouseUseCase) Update(session *entity.Session, id int64, fields map[string]any) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return domain.ErrInsufficientPrivilege
	}
	return uc.warehouses(session.StoreHandle).UpdateFields(id, fields)
}

// Delete elimina un depósito por ID.
func (uc *WarehouseUseCase) Delete(session *entity.Session, id int64) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return domain.ErrInsufficientPrivilege
	}
	return uc.warehouses(session.StoreHandle).Delete(id)
}
