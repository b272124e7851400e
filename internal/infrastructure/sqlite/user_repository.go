package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que UserRepo implementa repository.UserRepository.
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa el puerto UserRepository sobre el almacén SQLite de una
// empresa. El archivo se abre y se cierra por operación.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de persistencia de usuarios para un almacén.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

const userColumns = `id, company_handle, company_name, login_name, full_name,
	supervisor_name, shift, email, secret_hash, role, department, title,
	hire_date, last_access_at, created_by`

// Create inserta un usuario nuevo en el almacén.
func (r *UserRepo) Create(user *entity.TenantUser) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
		INSERT INTO users (company_handle, company_name, login_name, full_name,
			supervisor_name, shift, email, secret_hash, role, department, title,
			hire_date, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(context.Background(), query,
		user.CompanyHandle, user.CompanyName, user.LoginName, user.FullName,
		user.SupervisorName, user.Shift, user.Email, user.SecretHash, user.Role,
		user.Department, user.Title, user.HireDate, user.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		user.ID = id
	}
	return nil
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.TenantUser, error) {
	return r.getWhere(`id = ?`, id)
}

// GetByLogin obtiene un usuario por login exacto.
func (r *UserRepo) GetByLogin(login string) (*entity.TenantUser, error) {
	return r.getWhere(`login_name = ?`, login)
}

// FindByIdentifier busca por login O nombre completo O email. Varias filas
// pueden coincidir (p.ej. el login de uno igual al nombre de otro); gana la de
// id más bajo para que el resultado no dependa del orden de iteración del
// motor.
func (r *UserRepo) FindByIdentifier(identifier string) (*entity.TenantUser, error) {
	return r.getWhere(
		`login_name = ? OR full_name = ? OR email = ? ORDER BY id ASC LIMIT 1`,
		identifier, identifier, identifier,
	)
}

func (r *UserRepo) getWhere(where string, args ...any) (*entity.TenantUser, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	var u entity.TenantUser
	var lastAccess sql.NullTime
	err = db.QueryRowContext(context.Background(), query, args...).Scan(
		&u.ID, &u.CompanyHandle, &u.CompanyName, &u.LoginName, &u.FullName,
		&u.SupervisorName, &u.Shift, &u.Email, &u.SecretHash, &u.Role,
		&u.Department, &u.Title, &u.HireDate, &lastAccess, &u.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	if lastAccess.Valid {
		u.LastAccessAt = &lastAccess.Time
	}
	return &u, nil
}

// List devuelve usuarios del almacén ordenados por nombre completo.
func (r *UserRepo) List(limit, offset int) ([]*entity.TenantUser, error) {
	db, err := r.store.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY full_name LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenantUser
	for rows.Next() {
		var u entity.TenantUser
		var lastAccess sql.NullTime
		if err := rows.Scan(
			&u.ID, &u.CompanyHandle, &u.CompanyName, &u.LoginName, &u.FullName,
			&u.SupervisorName, &u.Shift, &u.Email, &u.SecretHash, &u.Role,
			&u.Department, &u.Title, &u.HireDate, &lastAccess, &u.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		if lastAccess.Valid {
			u.LastAccessAt = &lastAccess.Time
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por login.
func (r *UserRepo) Delete(login string) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(context.Background(),
		`DELETE FROM users WHERE login_name = ?`, login)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchLastAccess sella el último acceso del usuario con la hora actual.
func (r *UserRepo) TouchLastAccess(id int64) error {
	db, err := r.store.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(context.Background(),
		`UPDATE users SET last_access_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sellar último acceso: %w", err)
	}
	return nil
}

// CountByRole cuenta los usuarios con un rol dado (invariante: CEO == 1).
func (r *UserRepo) CountByRole(role string) (int, error) {
	db, err := r.store.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	err = db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar por rol: %w", err)
	}
	return n, nil
}
