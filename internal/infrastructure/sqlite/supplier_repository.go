package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que SupplierRepo implementa repository.SupplierRepository.
var _ repository.SupplierRepository = (*SupplierRepo)(nil)

var supplierUpdateColumns = map[string]bool{
	"legal_name":         true,
	"trade_name":         true,
	"tax_id":             true,
	"state_registration": true,
	"address":            true,
	"city":               true,
	"state":              true,
	"zip":                true,
	"phone":              true,
	"email":              true,
	"contact_name":       true,
	"delivery_days":      true,
	"payment_terms":      true,
	"status":             true,
}

// SupplierRepo implementa el puerto SupplierRepository sobre el almacén
// SQLite de una empresa.
type SupplierRepo struct {
	store *Store
}

// NewSupplierRepository construye el adaptador de persistencia de proveedores para un almacén.
func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

const supplierColumns = `id, legal_name, trade_name, tax_id, state_registration,
	address, city, state, zip, phone, email, contact_name, delivery_days,
	payment_terms, status`

// Create persiste un proveedor nuevo. Devuelve domain.ErrDuplicate si el
// TaxID ya existe en el almacén.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	status := supplier.Status
	if status == "" {
		status = "active"
	}
	query := `
		INSERT INTO suppliers (legal_name, trade_name, tax_id, state_registration,
			address, city, state, zip, phone, email, contact_name, delivery_days,
			payment_terms, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(context.Background(), query,
		supplier.LegalName, supplier.TradeName, supplier.TaxID,
		supplier.StateRegistration, supplier.Address, supplier.City,
		supplier.State, supplier.Zip, supplier.Phone, supplier.Email,
		supplier.ContactName, supplier.DeliveryDays, supplier.PaymentTerms,
		status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		supplier.ID = id
	}
	supplier.Status = status
	return nil
}

// GetByID obtiene un proveedor por ID. (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = ?`
	s, err := scanSupplier(db.QueryRowContext(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return s, nil
}

// List devuelve proveedores, opcionalmente filtrados por razón social o nombre de fantasía.
func (r *SupplierRepo) List(filter string) ([]*entity.Supplier, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	var args []any
	if filter != "" {
		query += ` WHERE legal_name LIKE ? COLLATE NOCASE OR trade_name LIKE ? COLLATE NOCASE`
		like := "%" + filter + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY legal_name`

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateFields aplica una actualización parcial con lista de campos permitidos.
func (r *SupplierRepo) UpdateFields(id int64, fields map[string]any) error {
	var (
		sets []string
		args []any
	)
	for key, value := range fields {
		if !supplierUpdateColumns[key] {
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
	query := "UPDATE suppliers SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(id int64) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(context.Background(), `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.LegalName, &s.TradeName, &s.TaxID, &s.StateRegistration,
		&s.Address, &s.City, &s.State, &s.Zip, &s.Phone, &s.Email,
		&s.ContactName, &s.DeliveryDays, &s.PaymentTerms, &s.Status,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
