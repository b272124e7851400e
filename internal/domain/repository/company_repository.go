package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// CompanyRepository define el puerto de persistencia del directorio compartido
// de empresas (DIP). La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create persiste una empresa nueva. Devuelve domain.ErrDuplicateName si el
	// nombre o el handle ya existen (comparación exacta, sensible a mayúsculas).
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// GetByName busca por nombre público exacto. (nil, nil) si no existe.
	GetByName(name string) (*entity.Company, error)
	// ListNames devuelve todos los nombres registrados (fuente del autocompletado).
	ListNames() ([]string, error)
	// UpdateProfile muta solo las columnas de perfil permitidas; las claves
	// desconocidas se ignoran en silencio. El handle del almacén es inmutable.
	UpdateProfile(id string, fields map[string]string) error
	// UpdateStoreHandle registra el handle definitivo si el aprovisionador
	// desambiguó. Solo se invoca durante el registro, antes de cualquier uso.
	UpdateStoreHandle(id, handle string) error
	Delete(id string) error
}
