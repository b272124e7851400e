package usecase

import (
	"regexp"
	"strings"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/access"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserUseCase gestiona los usuarios del almacén de la empresa de la sesión,
// aplicando la matriz de asignación de roles y la protección de la cuenta
// administradora.
type UserUseCase struct {
	companyRepo repository.CompanyRepository
	users       func(handle string) repository.UserRepository
	secrets     hasher.Hasher
	log         *logger.Logger
}

// NewUserUseCase construye el caso de uso. users resuelve el repositorio de
// usuarios atado al almacén de un handle.
func NewUserUseCase(
	companyRepo repository.CompanyRepository,
	users func(handle string) repository.UserRepository,
	secrets hasher.Hasher,
	log *logger.Logger,
) *UserUseCase {
	return &UserUseCase{companyRepo: companyRepo, users: users, secrets: secrets, log: log}
}

// Create da de alta un usuario en el almacén de la sesión. El rol del creador
// tiene que dominar al rol asignado según la matriz de privilegios.
func (uc *UserUseCase) Create(session *entity.Session, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if err := access.CheckAssign(session.Role, in.Role); err != nil {
		return nil, err
	}
	login := strings.TrimSpace(in.LoginName)
	fullName := strings.TrimSpace(in.FullName)
	if login == "" || fullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Secret) < 6 {
		return nil, domain.ErrInvalidInput
	}

	users := uc.users(session.StoreHandle)
	if existing, err := users.GetByLogin(login); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	user := &entity.TenantUser{
		CompanyHandle:  session.StoreHandle,
		CompanyName:    session.CompanyName,
		LoginName:      login,
		FullName:       fullName,
		SupervisorName: in.SupervisorName,
		Shift:          in.Shift,
		Email:          in.Email,
		SecretHash:     uc.secrets.Hash(in.Secret),
		Role:           in.Role,
		Department:     in.Department,
		Title:          in.Title,
		HireDate:       in.HireDate,
		CreatedBy:      session.LoginName,
	}
	if err := users.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("login", login).Str("rol", in.Role).
		Str("creado_por", session.LoginName).Msg("usuario creado")
	return toUserResponse(user), nil
}

// Delete elimina un usuario por login. La cuenta administradora con la que se
// registró la empresa es intocable, y el rol del que elimina tiene que
// dominar al rol del eliminado.
func (uc *UserUseCase) Delete(session *entity.Session, login string) error {
	if session == nil {
		return domain.ErrNoSession
	}

	company, err := uc.companyRepo.GetByID(session.CompanyID)
	if err != nil {
		return err
	}
	if company != nil && company.AdminUser == login {
		return domain.ErrProtectedAccount
	}

	users := uc.users(session.StoreHandle)
	target, err := users.GetByLogin(login)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if err := access.CheckDelete(session.Role, target.Role); err != nil {
		return err
	}
	if err := users.Delete(login); err != nil {
		return err
	}

	uc.log.Info().Str("login", login).Str("eliminado_por", session.LoginName).Msg("usuario eliminado")
	return nil
}

// Find busca un usuario por identificador flexible (login, nombre completo o email).
func (uc *UserUseCase) Find(session *entity.Session, identifier string) (*dto.UserResponse, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	user, err := uc.users(session.StoreHandle).FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// List devuelve los usuarios del almacén de la sesión.
func (uc *UserUseCase) List(session *entity.Session, page dto.PageRequest) ([]*dto.UserResponse, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	page.DefaultPage()
	users, err := uc.users(session.StoreHandle).List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.TenantUser) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		LoginName:      u.LoginName,
		FullName:       u.FullName,
		Email:          u.Email,
		Role:           u.Role,
		SupervisorName: u.SupervisorName,
		Shift:          u.Shift,
		Department:     u.Department,
		Title:          u.Title,
		HireDate:       u.HireDate,
		LastAccessAt:   u.LastAccessAt,
		CreatedBy:      u.CreatedBy,
	}
}
