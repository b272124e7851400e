package usecase_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/application/usecase"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
	"github.com/jhoicas/deposito-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

func newProductFixture(t *testing.T) (*usecase.ProductUseCase, *entity.Session) {
	t.Helper()
	provisioner := sqlite.NewProvisioner(filepath.Join(t.TempDir(), "almacenes"), logger.Nop())
	handle, err := provisioner.Provision("prod_666666", "ana", hasher.SHA256Hasher{}.Hash("secreto1"), "Productos")
	require.NoError(t, err)

	uc := usecase.NewProductUseCase(func(h string) repository.ProductRepository {
		return sqlite.NewProductRepository(provisioner.StoreFor(h))
	})
	session := &entity.Session{StoreHandle: handle, LoginName: "ana", Role: entity.RoleManager}
	return uc, session
}

func TestProductCreateGetUpdateDelete(t *testing.T) {
	uc, session := newProductFixture(t)

	product, err := uc.Create(session, dto.CreateProductRequest{
		Name:      "Tornillo",
		SKU:       "TOR-1",
		Quantity:  100,
		CostPrice: "1.25",
		SalePrice: "2.50",
	})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	got, err := uc.Get(session, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", got.Name)
	assert.Equal(t, "1.25", got.CostPrice.String())

	require.NoError(t, uc.Update(session, product.ID, dto.UpdateProductRequest{
		Fields: map[string]any{"brand": "Acme"},
	}))
	got, err = uc.Get(session, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Brand)

	require.NoError(t, uc.Delete(session, product.ID))
	_, err = uc.Get(session, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductWritesRequireCatalogRole(t *testing.T) {
	uc, session := newProductFixture(t)
	operator := &entity.Session{StoreHandle: session.StoreHandle, Role: entity.RoleOperator}

	_, err := uc.Create(operator, dto.CreateProductRequest{Name: "Tornillo"})
	assert.ErrorIs(t, err, domain.ErrInsufficientPrivilege)
	assert.ErrorIs(t, uc.Update(operator, 1, dto.UpdateProductRequest{Fields: map[string]any{"brand": "x"}}), domain.ErrInsufficientPrivilege)
	assert.ErrorIs(t, uc.Delete(operator, 1), domain.ErrInsufficientPrivilege)

	// Leer y listar no exige rol de catálogo.
	_, err = uc.List(operator, "", dto.PageRequest{})
	assert.NoError(t, err)
}

func TestProductCreateValidation(t *testing.T) {
	uc, session := newProductFixture(t)

	_, err := uc.Create(session, dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(session, dto.CreateProductRequest{Name: "X", CostPrice: "no-numero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(session, dto.CreateProductRequest{Name: "X", SalePrice: "-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(session, dto.CreateProductRequest{Name: "X", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(nil, dto.CreateProductRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
