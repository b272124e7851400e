package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que WarehouseRepo implementa repository.WarehouseRepository.
var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

var warehouseUpdateColumns = map[string]bool{
	"name":            true,
	"type":            true,
	"address":         true,
	"city":            true,
	"state":           true,
	"zip":             true,
	"manager_user_id": true,
	"total_capacity":  true,
	"status":          true,
}

// WarehouseRepo implementa el puerto WarehouseRepository sobre el almacén
// SQLite de una empresa.
type WarehouseRepo struct {
	store *Store
}

// NewWarehouseRepository construye el adaptador de persistencia de depósitos para un almacén.
func NewWarehouseRepository(store *Store) *WarehouseRepo {
	return &WarehouseRepo{store: store}
}

const warehouseColumns = `id, name, type, address, city, state, zip,
	manager_user_id, total_capacity, status`

// Create persiste un depósito nuevo.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
		INSERT INTO warehouses (name, type, address, city, state, zip,
			manager_user_id, total_capacity, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := warehouse.Status
	if status == "" {
		status = "active"
	}
	res, err := db.ExecContext(context.Background(), query,
		warehouse.Name, warehouse.Type, warehouse.Address, warehouse.City,
		warehouse.State, warehouse.Zip, warehouse.ManagerUserID,
		warehouse.TotalCapacity, status,
	)
	if err != nil {
		return fmt.Errorf("insert depósito: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		warehouse.ID = id
	}
	warehouse.Status = status
	return nil
}

// GetByID obtiene un depósito por ID. (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = ?`
	var w entity.Warehouse
	var (
		manager  sql.NullInt64
		capacity sql.NullFloat64
	)
	err = db.QueryRowContext(context.Background(), query, id).Scan(
		&w.ID, &w.Name, &w.Type, &w.Address, &w.City, &w.State, &w.Zip,
		&manager, &capacity, &w.Status,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depósito: %w", err)
	}
	if manager.Valid {
		w.ManagerUserID = &manager.Int64
	}
	w.TotalCapacity = capacity.Float64
	return &w, nil
}

// List devuelve depósitos, opcionalmente filtrados por nombre o ciudad.
func (r *WarehouseRepo) List(filter string) ([]*entity.Warehouse, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + warehouseColumns + ` FROM warehouses`
	var args []any
	if filter != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR city LIKE ? COLLATE NOCASE`
		like := "%" + filter + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY name`

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar depósitos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		var (
			manager  sql.NullInt64
			capacity sql.NullFloat64
		)
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &w.Address, &w.City,
			&w.State, &w.Zip, &manager, &capacity, &w.Status); err != nil {
			return nil, fmt.Errorf("scan depósito: %w", err)
		}
		if manager.Valid {
			w.ManagerUserID = &manager.Int64
		}
		w.TotalCapacity = capacity.Float64
		list = append(list, &w)
	}
	return list, rows.Err()
}

// UpdateFields aplica una actualización parcial con lista de campos permitidos.
func (r *WarehouseRepo) UpdateFields(id int64, fields map[string]any) error {
	var (
		sets []string
		args []any
	)
	for key, value := range fields {
		if !warehouseUpdateColumns[key] {
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

	args = append(args, id)
	query := "UPDATE warehouses SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update depósito: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un depósito por ID.
func (r *WarehouseRepo) Delete(id int64) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(context.Background(), `DELETE FROM warehouses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete depósito: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
