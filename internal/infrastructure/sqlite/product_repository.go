package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que ProductRepo implementa repository.ProductRepository.
var _ repository.ProductRepository = (*ProductRepo)(nil)

// Columnas de producto que UpdateFields puede mutar (patrón de lista permitida).
var productUpdateColumns = map[string]bool{
	"barcode":      true,
	"sku":          true,
	"name":         true,
	"description":  true,
	"category":     true,
	"brand":        true,
	"quantity":     true,
	"min_quantity": true,
	"cost_price":   true,
	"sale_price":   true,
	"location":     true,
	"supplier":     true,
}

// ProductRepo implementa el puerto ProductRepository sobre el almacén SQLite
// de una empresa. El SQL compartido con la transacción de movimientos vive en
// funciones sobre queryable.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador de persistencia de productos para un almacén.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

const productColumns = `id, barcode, sku, name, description, category, brand,
	quantity, min_quantity, cost_price, sale_price, location, supplier,
	created_at, updated_at`

// Create persiste un producto nuevo. Devuelve domain.ErrDuplicate si el
// código de barras o el SKU ya existen en el almacén.
func (r *ProductRepo) Create(product *entity.Product) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	query := `
		INSERT INTO products (barcode, sku, name, description, category, brand,
			quantity, min_quantity, cost_price, sale_price, location, supplier,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(context.Background(), query,
		product.Barcode, product.SKU, product.Name, product.Description,
		product.Category, product.Brand, product.Quantity, product.MinQuantity,
		product.CostPrice.String(), product.SalePrice.String(),
		product.Location, product.Supplier, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		product.ID = id
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return getProduct(context.Background(), db, id)
}

// GetBySKU obtiene un producto por SKU exacto.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + productColumns + ` FROM products WHERE sku = ?`
	p, err := scanProductRow(db.QueryRowContext(context.Background(), query, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto por SKU: %w", err)
	}
	return p, nil
}

// List devuelve productos, opcionalmente filtrados por nombre/SKU/categoría.
func (r *ProductRepo) List(filter string, limit, offset int) ([]*entity.Product, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR sku LIKE ? COLLATE NOCASE OR category LIKE ? COLLATE NOCASE`
		like := "%" + filter + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductRows(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateFields aplica una actualización parcial con lista de campos permitidos.
func (r *ProductRepo) UpdateFields(id int64, fields map[string]any) error {
	var (
		sets []string
		args []any
	)
	for key, value := range fields {
		if !productUpdateColumns[key] {
			continue
		}
		sets = append(sets, key+" = ?")
		args = append(args, value)
	}
	if len(sets) == 0 {
		return nil
	}

	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	query := "UPDATE products SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id int64) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(context.Background(), `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity suma delta a la existencia del producto, rechazando
// resultados negativos con domain.ErrInsufficientStock.
func (r *ProductRepo) AdjustQuantity(id, delta int64) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()
	return adjustProductQuantity(context.Background(), db, id, delta)
}

// ── SQL compartido entre el repositorio y la transacción de movimientos ──────

func getProduct(ctx context.Context, q queryable, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProductRow(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// adjustProductQuantity aplica el delta de forma atómica: la condición en el
// WHERE impide que la existencia quede negativa aunque haya reintentos.
func adjustProductQuantity(ctx context.Context, q queryable, id, delta int64) error {
	res, err := q.ExecContext(ctx,
		`UPDATE products SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND quantity + ? >= 0`,
		delta, id, delta)
	if err != nil {
		return fmt.Errorf("ajustar existencia: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}
	// Distinguir producto inexistente de stock insuficiente.
	p, err := getProduct(ctx, q, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductRow(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Barcode, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.Brand, &p.Quantity, &p.MinQuantity, &p.CostPrice, &p.SalePrice,
		&p.Location, &p.Supplier, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProductRows(rows rowScanner) (*entity.Product, error) {
	p, err := scanProductRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan producto: %w", err)
	}
	return p, nil
}
