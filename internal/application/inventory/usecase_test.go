package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deposito-core/internal/application/inventory"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

type movementFixture struct {
	uc       *inventory.RegisterMovementUseCase
	products *sqlite.ProductRepo
	log      *sqlite.StockMovementRepo
	userID   int64
}

func newMovementFixture(t *testing.T) *movementFixture {
	t.Helper()
	p := sqlite.NewProvisioner(filepath.Join(t.TempDir(), "almacenes"), logger.Nop())
	secret := hasher.SHA256Hasher{}.Hash("secreto1")
	handle, err := p.Provision("mov_555555", "ana", secret, "Movimientos")
	require.NoError(t, err)

	ceo, err := p.UserRepository(handle).GetByLogin("ana")
	require.NoError(t, err)
	require.NotNil(t, ceo)

	store := p.StoreFor(handle)
	products := sqlite.NewProductRepository(store)
	movements := sqlite.NewStockMovementRepository(store)
	return &movementFixture{
		uc:       inventory.NewRegisterMovementUseCase(sqlite.NewTxRunner(store), products, movements),
		products: products,
		log:      movements,
		userID:   ceo.ID,
	}
}

func (f *movementFixture) createProduct(t *testing.T, quantity int64) *entity.Product {
	t.Helper()
	product := &entity.Product{
		SKU:         "SKU-1",
		Name:        "Producto",
		Quantity:    quantity,
		MinQuantity: 3,
		CostPrice:   decimal.Zero,
		SalePrice:   decimal.Zero,
	}
	require.NoError(t, f.products.Create(product))
	return product
}

func TestRegisterMovementIn(t *testing.T) {
	f := newMovementFixture(t)
	product := f.createProduct(t, 10)

	err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeIn,
		Quantity:  5,
		Reason:    "compra",
		UserID:    f.userID,
	})
	require.NoError(t, err)

	got, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 15, got.Quantity)

	history, err := f.uc.History(context.Background(), product.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.MovementTypeIn, history[0].Type)
	assert.EqualValues(t, 5, history[0].Quantity)
}

func TestRegisterMovementOut(t *testing.T) {
	f := newMovementFixture(t)
	product := f.createProduct(t, 10)

	err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeOut,
		Quantity:  4,
		UserID:    f.userID,
	})
	require.NoError(t, err)

	got, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, got.Quantity)
}

func TestRegisterMovementOutInsufficientStockRollsBack(t *testing.T) {
	f := newMovementFixture(t)
	product := f.createProduct(t, 3)

	err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeOut,
		Quantity:  5,
		UserID:    f.userID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni la existencia ni el log quedan tocados.
	got, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Quantity)

	history, err := f.uc.History(context.Background(), product.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRegisterMovementAdjustNegative(t *testing.T) {
	f := newMovementFixture(t)
	product := f.createProduct(t, 10)

	err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeAdjust,
		Quantity:  -3,
		Reason:    "conteo",
		UserID:    f.userID,
	})
	require.NoError(t, err)

	got, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.Quantity)
}

func TestRegisterMovementValidation(t *testing.T) {
	f := newMovementFixture(t)
	product := f.createProduct(t, 10)

	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"tipo desconocido", inventory.MovementInput{ProductID: product.ID, Type: "transfer", Quantity: 1, UserID: f.userID}},
		{"entrada negativa", inventory.MovementInput{ProductID: product.ID, Type: entity.MovementTypeIn, Quantity: -1, UserID: f.userID}},
		{"salida cero", inventory.MovementInput{ProductID: product.ID, Type: entity.MovementTypeOut, Quantity: 0, UserID: f.userID}},
		{"ajuste cero", inventory.MovementInput{ProductID: product.ID, Type: entity.MovementTypeAdjust, Quantity: 0, UserID: f.userID}},
		{"sin usuario", inventory.MovementInput{ProductID: product.ID, Type: entity.MovementTypeIn, Quantity: 1}},
		{"sin producto", inventory.MovementInput{Type: entity.MovementTypeIn, Quantity: 1, UserID: f.userID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, f.uc.RegisterMovement(context.Background(), tc.input), domain.ErrInvalidInput)
		})
	}
}

func TestRegisterMovementUnknownProduct(t *testing.T) {
	f := newMovementFixture(t)
	err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: 99999,
		Type:      entity.MovementTypeIn,
		Quantity:  1,
		UserID:    f.userID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock(t *testing.T) {
	f := newMovementFixture(t)
	product := f.createProduct(t, 2) // mínimo 3, ya bajo

	low, err := f.uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, product.ID, low[0].ID)

	// Reponer por encima del mínimo lo saca de la lista.
	require.NoError(t, f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeIn,
		Quantity:  10,
		UserID:    f.userID,
	}))
	low, err = f.uc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, low)
}
