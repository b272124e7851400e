package usecase_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
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

func newOrderFixture(t *testing.T) (*usecase.OrderUseCase, *entity.Session) {
	t.Helper()
	provisioner := sqlite.NewProvisioner(filepath.Join(t.TempDir(), "almacenes"), logger.Nop())
	handle, err := provisioner.Provision("ped_777777", "ana", hasher.SHA256Hasher{}.Hash("secreto1"), "Pedidos")
	require.NoError(t, err)

	// Las líneas referencian productos existentes del almacén.
	products := sqlite.NewProductRepository(provisioner.StoreFor(handle))
	for _, sku := range []string{"TOR-1", "TUE-2"} {
		require.NoError(t, products.Create(&entity.Product{
			Name:      "Producto " + sku,
			SKU:       sku,
			Barcode:   "779" + sku,
			Quantity:  50,
			CostPrice: decimal.RequireFromString("2.00"),
			SalePrice: decimal.RequireFromString("3.00"),
		}))
	}

	uc := usecase.NewOrderUseCase(
		func(h string) repository.OrderRepository {
			return sqlite.NewOrderRepository(provisioner.StoreFor(h))
		},
		func(h string) repository.UserRepository {
			return sqlite.NewUserRepository(provisioner.StoreFor(h))
		},
	)
	session := &entity.Session{StoreHandle: handle, LoginName: "ana", Role: entity.RoleCEO}
	return uc, session
}

func orderLines() []usecase.OrderLine {
	return []usecase.OrderLine{
		{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00"), Discount: decimal.RequireFromString("1.00")},
	}
}

func TestOrderCreateAndGet(t *testing.T) {
	uc, session := newOrderFixture(t)

	order, err := uc.Create(session, entity.OrderTypePurchase, "PED-001", "urgente", orderLines())
	require.NoError(t, err)
	assert.Equal(t, "PED-001", order.Number)
	// 3*2.50 + (10.00-1.00) = 16.50
	assert.True(t, order.Total.Equal(decimal.RequireFromString("16.50")), "total=%s", order.Total)

	got, items, err := uc.Get(session, "PED-001")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	require.Len(t, items, 2)
	assert.True(t, items[0].Subtotal.Equal(decimal.RequireFromString("7.50")))
}

func TestOrderCreateGeneratesNumberByType(t *testing.T) {
	uc, session := newOrderFixture(t)

	purchase, err := uc.Create(session, entity.OrderTypePurchase, "", "", orderLines())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(purchase.Number, "PED-"), "número=%s", purchase.Number)

	sale, err := uc.Create(session, entity.OrderTypeSale, "", "", orderLines()[:1])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sale.Number, "VEN-"), "número=%s", sale.Number)
}

func TestOrderCreateValidation(t *testing.T) {
	uc, session := newOrderFixture(t)

	_, err := uc.Create(nil, entity.OrderTypePurchase, "", "", orderLines())
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = uc.Create(session, "prestamo", "", "", orderLines())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(session, entity.OrderTypePurchase, "", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(session, entity.OrderTypePurchase, "", "", []usecase.OrderLine{
		{ProductID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(session, entity.OrderTypePurchase, "", "", []usecase.OrderLine{
		{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Descuento mayor al importe de la línea.
	_, err = uc.Create(session, entity.OrderTypePurchase, "", "", []usecase.OrderLine{
		{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1), Discount: decimal.NewFromInt(5)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreateUnknownSessionUser(t *testing.T) {
	uc, session := newOrderFixture(t)
	ghost := &entity.Session{StoreHandle: session.StoreHandle, LoginName: "fantasma", Role: entity.RoleCEO}

	_, err := uc.Create(ghost, entity.OrderTypePurchase, "", "", orderLines())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestOrderGetUnknownNumber(t *testing.T) {
	uc, session := newOrderFixture(t)

	_, _, err := uc.Get(session, "PED-NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderListFiltersByStatus(t *testing.T) {
	uc, session := newOrderFixture(t)
	_, err := uc.Create(session, entity.OrderTypePurchase, "PED-001", "", orderLines())
	require.NoError(t, err)
	_, err = uc.Create(session, entity.OrderTypeSale, "VEN-001", "", orderLines()[:1])
	require.NoError(t, err)

	pending, err := uc.List(session, entity.OrderStatusPending, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	shipped, err := uc.List(session, "shipped", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, shipped)
}

func TestOrderTrack(t *testing.T) {
	uc, session := newOrderFixture(t)
	_, err := uc.Create(session, entity.OrderTypePurchase, "PED-001", "", orderLines())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Track(session, "PED-001", "", "depósito", ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Track(session, "PED-NO-EXISTE", "shipped", "", ""), domain.ErrNotFound)

	require.NoError(t, uc.Track(session, "PED-001", "shipped", "depósito central", "salió completo"))
}
