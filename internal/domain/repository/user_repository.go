package repository

import "github.com/jhoicas/deposito-core/internal/domain/entity"

// UserRepository define el puerto de persistencia de usuarios dentro del
// almacén aislado de una empresa. Cada implementación está atada a un almacén
// concreto; no existen referencias entre almacenes.
type UserRepository interface {
	// Create inserta un usuario. Devuelve domain.ErrEmailAlreadyExists si el
	// email ya está tomado dentro del almacén.
	Create(user *entity.TenantUser) error
	GetByID(id int64) (*entity.TenantUser, error)
	GetByLogin(login string) (*entity.TenantUser, error)
	// FindByIdentifier busca por login O nombre completo O email. Si varias
	// filas coinciden gana la de id más bajo (desempate determinista).
	FindByIdentifier(identifier string) (*entity.TenantUser, error)
	List(limit, offset int) ([]*entity.TenantUser, error)
	Delete(login string) error
	// TouchLastAccess sella el último acceso del usuario con la hora actual.
	TouchLastAccess(id int64) error
	CountByRole(role string) (int, error)
}
