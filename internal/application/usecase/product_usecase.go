package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// canManageCatalog indica si un rol puede crear, modificar o eliminar
// registros del catálogo (productos, depósitos, proveedores).
func canManageCatalog(role string) bool {
	switch role {
	case entity.RoleCEO, entity.RoleAdministrator, entity.RoleManager:
		return true
	}
	return false
}

// ProductUseCase casos de uso CRUD para productos del almacén de la sesión.
// La existencia se maneja vía movimientos de inventario, no por edición directa.
type ProductUseCase struct {
	products func(handle string) repository.ProductRepository
}

// NewProductUseCase construye el caso de uso. products resuelve el
// repositorio atado al almacén de un handle.
func NewProductUseCase(products func(handle string) repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create crea un producto nuevo en el almacén de la sesión.
func (uc *ProductUseCase) Create(session *entity.Session, in dto.CreateProductRequest) (*entity.Product, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return nil, domain.ErrInsufficientPrivilege
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	costPrice, err := parsePrice(in.CostPrice)
	if err != nil {
		return nil, err
	}
	salePrice, err := parsePrice(in.SalePrice)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Barcode:     in.Barcode,
		SKU:         in.SKU,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Brand:       in.Brand,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		CostPrice:   costPrice,
		SalePrice:   salePrice,
		Location:    in.Location,
		Supplier:    in.Supplier,
	}
	if err := uc.products(session.StoreHandle).Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get obtiene un producto por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Get(session *entity.Session, id int64) (*entity.Product, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	product, err := uc.products(session.StoreHandle).GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List devuelve productos, opcionalmente filtrados por nombre/SKU/categoría.
func (uc *ProductUseCase) List(session *entity.Session, filter string, page dto.PageRequest) ([]*entity.Product, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	page.DefaultPage()
	return uc.products(session.StoreHandle).List(filter, page.Limit, page.Offset)
}

// Update aplica una actualización parcial de campos permitidos.
func (uc *ProductUseCase) Update(session *entity.Session, id int64, in dto.UpdateProductRequest) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return domain.ErrInsufficientPrivilege
	}
	return uc.products(session.StoreHandle).UpdateFields(id, in.Fields)
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(session *entity.Session, id int64) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if !canManageCatalog(session.Role) {
		return domain.ErrInsufficientPrivilege
	}
	return uc.products(session.StoreHandle).Delete(id)
}

// parsePrice interpreta un precio decimal en texto; vacío vale cero.
func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}
