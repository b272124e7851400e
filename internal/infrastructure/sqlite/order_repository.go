package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que OrderRepo implementa repository.OrderRepository.
var _ repository.OrderRepository = (*OrderRepo)(nil)

// Formato de las fechas de entrega persistidas como texto.
const orderDateLayout = "2006-01-02 15:04:05"

// OrderRepo implementa el puerto OrderRepository sobre el almacén SQLite de
// una empresa.
type OrderRepo struct {
	store *Store
}

// NewOrderRepository construye el adaptador de persistencia de pedidos para un almacén.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

const orderColumns = `id, number, customer_id, user_id, status, type,
	ordered_at, expected_delivery, delivered_at, total, notes`

// Create inserta el pedido y sus líneas en una única transacción: o entra
// todo o no entra nada.
func (r *OrderRepo) Create(order *entity.Order, items []*entity.OrderItem) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("abrir transacción de pedido: %w", err)
	}
	defer tx.Rollback()

	status := order.Status
	if status == "" {
		status = entity.OrderStatusPending
	}
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (number, customer_id, user_id, status, type,
			ordered_at, expected_delivery, delivered_at, total, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.Number, order.CustomerID, order.UserID, status, order.Type,
		order.OrderedAt, formatOrderDate(order.ExpectedDelivery),
		formatOrderDate(order.DeliveredAt), order.Total.String(), order.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("id de pedido: %w", err)
	}

	for _, item := range items {
		itemRes, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, discount, subtotal)
			VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity,
			item.UnitPrice.String(), item.Discount.String(), item.Subtotal.String(),
		)
		if err != nil {
			return fmt.Errorf("insert línea de pedido: %w", err)
		}
		if id, err := itemRes.LastInsertId(); err == nil {
			item.ID = id
		}
		item.OrderID = orderID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit de pedido: %w", err)
	}
	order.ID = orderID
	order.Status = status
	return nil
}

// GetByNumber obtiene un pedido con sus líneas por número. (nil, nil, nil) si no existe.
func (r *OrderRepo) GetByNumber(number string) (*entity.Order, []*entity.OrderItem, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number = ?`
	order, err := scanOrder(db.QueryRowContext(ctx, query, number))
	if err != nil {
		if isNoRows(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get pedido: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, discount, subtotal
		FROM order_items WHERE order_id = ? ORDER BY id`, order.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listar líneas de pedido: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.Discount, &item.Subtotal); err != nil {
			return nil, nil, fmt.Errorf("scan línea de pedido: %w", err)
		}
		items = append(items, &item)
	}
	return order, items, rows.Err()
}

// List devuelve pedidos, opcionalmente filtrados por estado.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY ordered_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

// AddTracking agrega una entrada de rastreo de entrega a un pedido.
func (r *OrderRepo) AddTracking(tracking *entity.OrderTracking) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(context.Background(), `
		INSERT INTO order_tracking (order_id, status, location, notes, user_id)
		VALUES (?, ?, ?, ?, ?)`,
		tracking.OrderID, tracking.Status, tracking.Location,
		tracking.Notes, tracking.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert rastreo: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		tracking.ID = id
	}
	return nil
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var (
		o         entity.Order
		customer  sql.NullInt64
		expected  sql.NullString
		delivered sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.Number, &customer, &o.UserID, &o.Status, &o.Type,
		&o.OrderedAt, &expected, &delivered, &o.Total, &o.Notes,
	)
	if err != nil {
		return nil, err
	}
	if customer.Valid {
		o.CustomerID = &customer.Int64
	}
	o.ExpectedDelivery = parseOrderDate(expected)
	o.DeliveredAt = parseOrderDate(delivered)
	return &o, nil
}

func formatOrderDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(orderDateLayout)
}

func parseOrderDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(orderDateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
