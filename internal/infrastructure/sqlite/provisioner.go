package sqlite

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

// Provisioner lleva el almacén aislado de una empresa a un esquema conocido:
// crea el archivo, aplica el DDL y las migraciones aditivas, y siembra el
// único usuario CEO. Cualquier fallo deja el disco como estaba: el archivo
// del almacén se elimina, nunca queda a medio inicializar.
type Provisioner struct {
	storesDir string
	log       *logger.Logger

	// mu serializa creación/eliminación de archivos de almacén dentro del
	// proceso; entre procesos la exclusividad la da el busy timeout de SQLite.
	mu sync.Mutex
}

// NewProvisioner construye el aprovisionador sobre la carpeta de almacenes.
func NewProvisioner(storesDir string, log *logger.Logger) *Provisioner {
	return &Provisioner{storesDir: storesDir, log: log}
}

// StoreFor devuelve la referencia del almacén de un handle, exista o no el archivo.
func (p *Provisioner) StoreFor(handle string) *Store {
	return &Store{Handle: handle, Path: storePath(p.storesDir, handle)}
}

// StoreExists informa si el archivo del almacén de un handle está en disco.
func (p *Provisioner) StoreExists(handle string) bool {
	return p.StoreFor(handle).Exists()
}

// CreateStore crea el archivo del almacén para un handle. Si queda un archivo
// viejo con ese nombre intenta eliminarlo; si la eliminación falla porque el
// archivo está en uso, cae a un handle desambiguado con sufijo de tiempo en
// vez de fallar. Los llamadores deben usar el handle del Store devuelto.
func (p *Provisioner) CreateStore(handle string) (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(p.storesDir, 0o750); err != nil {
		return nil, fmt.Errorf("crear carpeta de almacenes: %w", err)
	}

	store := p.StoreFor(handle)
	if store.Exists() {
		if err := os.Remove(store.Path); err != nil {
			fallback := fmt.Sprintf("%s_%d", handle, time.Now().Unix())
			p.log.Warn().
				Str("handle", handle).
				Str("fallback", fallback).
				Err(err).
				Msg("almacén viejo en uso, usando handle desambiguado")
			store = p.StoreFor(fallback)
		}
	}

	// Abrir crea el archivo si no existe.
	db, err := store.open()
	if err != nil {
		return nil, fmt.Errorf("crear almacén %s: %w", store.Handle, err)
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("cerrar almacén %s: %w", store.Handle, err)
	}
	return store, nil
}

// EnsureSchema crea las tablas faltantes del almacén y aplica la lista de
// migraciones aditivas. Es idempotente: correrla dos veces es un no-op y
// jamás toca filas existentes.
func (p *Provisioner) EnsureSchema(store *Store) error {
	db, err := store.open()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMigration, err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, ddl := range tenantSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w: crear tablas de %s: %v", domain.ErrSchemaMigration, store.Handle, err)
		}
	}
	if err := applyMigrations(ctx, db, tenantMigrations); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMigration, err)
	}
	return nil
}

// SeedCEO inserta la única fila CEO del almacén, con las credenciales del
// administrador que registró la empresa. El email se deriva del login y el
// nombre de la empresa; si viola la unicidad, el aprovisionamiento falla.
func (p *Provisioner) SeedCEO(store *Store, loginName, secretHash, companyName string) error {
	email := seedEmail(loginName, companyName)
	user := &entity.TenantUser{
		CompanyHandle:  store.Handle,
		CompanyName:    companyName,
		LoginName:      loginName,
		FullName:       loginName,
		SupervisorName: "N/A",
		Shift:          "Integral",
		Email:          email,
		SecretHash:     secretHash,
		Role:           entity.RoleCEO,
		Department:     "Diretoria",
		Title:          "CEO",
		HireDate:       time.Now().Format("2006-01-02"),
		CreatedBy:      "SISTEMA",
	}
	if err := NewUserRepository(store).Create(user); err != nil {
		return fmt.Errorf("sembrar CEO en %s: %w", store.Handle, err)
	}
	return nil
}

// Provision compone CreateStore, EnsureSchema y SeedCEO y devuelve el handle
// definitivo (puede diferir del pedido si hubo que desambiguar). Ante
// cualquier fallo elimina el archivo del almacén y devuelve un único error
// terminal: el aprovisionamiento es transaccional a granularidad de archivo.
func (p *Provisioner) Provision(handle, loginName, secretHash, companyName string) (string, error) {
	store, err := p.CreateStore(handle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreProvisioning, err)
	}

	if err := p.EnsureSchema(store); err != nil {
		p.discard(store)
		return "", fmt.Errorf("%w: %v", domain.ErrStoreProvisioning, err)
	}
	if err := p.SeedCEO(store, loginName, secretHash, companyName); err != nil {
		p.discard(store)
		return "", fmt.Errorf("%w: %v", domain.ErrStoreProvisioning, err)
	}

	p.log.Info().
		Str("handle", store.Handle).
		Str("empresa", companyName).
		Msg("almacén aprovisionado")
	return store.Handle, nil
}

// RemoveStore elimina el archivo del almacén de un handle (rollback de un
// registro fallido).
func (p *Provisioner) RemoveStore(handle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	store := p.StoreFor(handle)
	if err := os.Remove(store.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar almacén %s: %w", handle, err)
	}
	return nil
}

// UserRepository devuelve el repositorio de usuarios atado al almacén de un handle.
func (p *Provisioner) UserRepository(handle string) repository.UserRepository {
	return NewUserRepository(p.StoreFor(handle))
}

func (p *Provisioner) discard(store *Store) {
	if err := p.RemoveStore(store.Handle); err != nil {
		p.log.Error().Err(err).Str("handle", store.Handle).Msg("no se pudo eliminar el almacén fallido")
	}
}

// seedEmail deriva el email del CEO sembrado: <login>@<empresa-sin-espacios>.com.
func seedEmail(loginName, companyName string) string {
	host := strings.ReplaceAll(strings.ToLower(companyName), " ", "")
	return loginName + "@" + host + ".com"
}
