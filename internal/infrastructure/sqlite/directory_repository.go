package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// Asegura que DirectoryRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*DirectoryRepo)(nil)

// Columnas de perfil que UpdateProfile puede mutar. Todo lo demás — en
// particular store_handle y secret_hash — queda fuera del alcance de la
// actualización de perfil. Claves fuera de la lista se ignoran en silencio.
var companyProfileColumns = map[string]bool{
	"name":               true,
	"logo_path":          true,
	"tax_id":             true,
	"state_registration": true,
	"address":            true,
	"city":               true,
	"state":              true,
	"zip":                true,
	"phone":              true,
	"email":              true,
	"website":            true,
	"subscription_plan":  true,
	"status":             true,
}

// DirectoryRepo implementa el catálogo compartido de empresas sobre un único
// archivo SQLite. El archivo se abre y se cierra por operación; el estado es
// del proceso, no de una conexión persistente.
type DirectoryRepo struct {
	path string
}

// NewDirectoryRepository abre (o crea) el catálogo, garantiza su esquema y
// aplica las migraciones aditivas del perfil de empresa.
func NewDirectoryRepository(path string) (*DirectoryRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("crear carpeta del catálogo: %w", err)
	}
	r := &DirectoryRepo{path: path}
	err := r.withDB(func(ctx context.Context, db *sql.DB) error {
		if _, err := db.ExecContext(ctx, directorySchema); err != nil {
			return fmt.Errorf("crear tabla companies: %w", err)
		}
		return applyMigrations(ctx, db, directoryMigrations)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// withDB abre el catálogo, ejecuta fn y cierra. Sin conexión persistente.
func (r *DirectoryRepo) withDB(fn func(ctx context.Context, db *sql.DB) error) error {
	db, err := openDB(r.path)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(context.Background(), db)
}

const companyColumns = `id, name, secret_hash, logo_path, store_handle, admin_user,
	tax_id, state_registration, address, city, state, zip, phone, email, website,
	subscription_plan, status, created_at, updated_at`

// Create persiste una nueva empresa en el directorio.
func (r *DirectoryRepo) Create(company *entity.Company) error {
	return r.withDB(func(ctx context.Context, db *sql.DB) error {
		query := `
			INSERT INTO companies (` + companyColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := db.ExecContext(ctx, query,
			company.ID, company.Name, company.SecretHash, company.LogoPath,
			company.StoreHandle, company.AdminUser, company.TaxID,
			company.StateRegistration, company.Address, company.City, company.State,
			company.Zip, company.Phone, company.Email, company.Website,
			company.SubscriptionPlan, company.Status,
			company.CreatedAt, company.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateName
			}
			return fmt.Errorf("insert company: %w", err)
		}
		return nil
	})
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (r *DirectoryRepo) GetByID(id string) (*entity.Company, error) {
	return r.getBy("id", id)
}

// GetByName obtiene una empresa por nombre público exacto (sensible a mayúsculas).
func (r *DirectoryRepo) GetByName(name string) (*entity.Company, error) {
	return r.getBy("name", name)
}

func (r *DirectoryRepo) getBy(column, value string) (*entity.Company, error) {
	var c entity.Company
	err := r.withDB(func(ctx context.Context, db *sql.DB) error {
		query := `SELECT ` + companyColumns + ` FROM companies WHERE ` + column + ` = ?`
		return scanCompany(db.QueryRowContext(ctx, query, value), &c)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company por %s: %w", column, err)
	}
	return &c, nil
}

// ListNames devuelve todos los nombres registrados, en orden de inserción.
// El filtrado por prefijo del autocompletado se hace en memoria en el caso de uso.
func (r *DirectoryRepo) ListNames() ([]string, error) {
	var names []string
	err := r.withDB(func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT name FROM companies ORDER BY rowid`)
		if err != nil {
			return fmt.Errorf("listar nombres: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return fmt.Errorf("scan nombre: %w", err)
			}
			names = append(names, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// UpdateProfile arma un UPDATE dinámico solo con las columnas permitidas.
func (r *DirectoryRepo) UpdateProfile(id string, fields map[string]string) error {
	var (
		sets []string
		args []any
	)
	for key, value := range fields {
		if !companyProfileColumns[key] {
			continue
		}
		sets = append(sets, key+" = ?")
		args = append(args, value)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	return r.withDB(func(ctx context.Context, db *sql.DB) error {
		query := "UPDATE companies SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateName
			}
			return fmt.Errorf("update perfil: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrCompanyNotFound
		}
		return nil
	})
}

// Delete elimina una empresa del directorio (rollback de un registro fallido).
func (r *DirectoryRepo) Delete(id string) error {
	return r.withDB(func(ctx context.Context, db *sql.DB) error {
		if _, err := db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete company: %w", err)
		}
		return nil
	})
}

// UpdateStoreHandle registra el handle definitivo cuando el aprovisionador
// tuvo que desambiguar. Es el único punto donde el handle puede cambiar, y
// ocurre antes de que nadie lo haya usado.
func (r *DirectoryRepo) UpdateStoreHandle(id, handle string) error {
	return r.withDB(func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`UPDATE companies SET store_handle = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			handle, id)
		if err != nil {
			return fmt.Errorf("update store handle: %w", err)
		}
		return nil
	})
}

func scanCompany(row *sql.Row, c *entity.Company) error {
	return row.Scan(
		&c.ID, &c.Name, &c.SecretHash, &c.LogoPath, &c.StoreHandle, &c.AdminUser,
		&c.TaxID, &c.StateRegistration, &c.Address, &c.City, &c.State, &c.Zip,
		&c.Phone, &c.Email, &c.Website, &c.SubscriptionPlan, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
}
