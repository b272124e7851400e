package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/deposito-core/internal/application/inventory"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
)

// Asegura que TxRunner implementa inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción del almacén de una
// empresa, para que un crash a mitad de operación deje el estado viejo o el
// nuevo completos, nunca una fila a medias.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre un almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run abre el almacén, inicia una transacción, ejecuta fn con adaptadores
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(movements inventory.MovementWriter, products inventory.ProductAdjuster) error) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("abrir transacción: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(txMovements{ctx: ctx, tx: tx}, txProducts{ctx: ctx, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit de transacción: %w", err)
	}
	return nil
}

// txMovements y txProducts exponen el SQL compartido atado a la transacción.
type txMovements struct {
	ctx context.Context
	tx  queryable
}

func (m txMovements) Insert(movement *entity.StockMovement) error {
	return insertMovement(m.ctx, m.tx, movement)
}

type txProducts struct {
	ctx context.Context
	tx  queryable
}

func (p txProducts) GetByID(id int64) (*entity.Product, error) {
	return getProduct(p.ctx, p.tx, id)
}

func (p txProducts) AdjustQuantity(id, delta int64) error {
	return adjustProductQuantity(p.ctx, p.tx, id, delta)
}
