package usecase

import (
	"strings"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores del almacén de la sesión.
type SupplierUseCase struct {
	suppliers func(handle string) repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers func(handle string) repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers}
}

// Create crea un proveedor nuevo.
func (uc *SupplierUseCase) Create(session *entity.Session, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return nil, domain.ErrInsufficientPrivilege
	}
	if strings.TrimSpace(in.LegalName) == "" || in.DeliveryDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		LegalName:         strings.TrimSpace(in.LegalName),
		TradeName:         in.TradeName,
		TaxID:             in.TaxID,
		StateRegistration: in.StateRegistration,
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		Zip:               in.Zip,
		Phone:             in.Phone,
		Email:             in.Email,
		ContactName:       in.ContactName,
		DeliveryDays:      in.DeliveryDays,
		PaymentTerms:      in.PaymentTerms,
	}
	if err := uc.suppliers(session.StoreHandle).Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Get obtiene un proveedor por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *SupplierUseCase) Get(session *entity.Session, id int64) (*entity.Supplier, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	supplier, err := uc.suppliers(session.StoreHandle).GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// List devuelve proveedores, opcionalmente filtrados por razón social o nombre de fantasía.
func (uc *SupplierUseCase) List(session *entity.Session, filter string) ([]*entity.Supplier, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	return uc.suppliers(session.StoreHandle).List(filter)
}

// Update aplica una actualización parcial de campos permitidos.
func (uc *SupplierUseCase) Update(session *entity.Session, id int64, fields map[string]any) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return domain.ErrInsufficientPrivilege
	}
	return uc.suppliers(session.StoreHandle).UpdateFields(id, fields)
}

// Delete elimina un proveedor por ID.
func (uc *SupplierUseCase) Delete(session *entity.Session, id int64) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return domain.ErrInsufficientPrivilege
	}
	return uc.suppliers(session.StoreHandle).Delete(id)
}
