package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que StockMovementRepo implementa repository.StockMovementRepository.
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementa el log de movimientos sobre el almacén SQLite
// de una empresa.
type StockMovementRepo struct {
	store *Store
}

// NewStockMovementRepository construye el adaptador del log de movimientos para un almacén.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

// Insert registra un movimiento.
func (r *StockMovementRepo) Insert(movement *entity.StockMovement) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()
	return insertMovement(context.Background(), db, movement)
}

// ListByProduct devuelve los movimientos de un producto, del más reciente al más viejo.
func (r *StockMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `
		SELECT id, product_id, type, quantity, reason, invoice_no, user_id, moved_at
		FROM stock_movements WHERE product_id = ?
		ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.Reason, &m.InvoiceNo, &m.UserID, &m.MovedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// insertMovement es el SQL compartido con la transacción de registro.
func insertMovement(ctx context.Context, q queryable, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (product_id, type, quantity, reason, invoice_no, user_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := q.ExecContext(ctx, query,
		m.ProductID, m.Type, m.Quantity, m.Reason, m.InvoiceNo, m.UserID)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		m.ID = id
	}
	return nil
}
