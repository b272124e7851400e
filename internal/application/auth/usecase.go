package auth

import (
	"sync"
	"time"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/jwt"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// StoreGateway define lo que la autenticación necesita de la capa de
// almacenes: saber si el almacén de un handle existe y obtener el repositorio
// de usuarios atado a ese almacén.
type StoreGateway interface {
	StoreExists(handle string) bool
	UserRepository(handle string) repository.UserRepository
}

// AuthUseCase autentica usuarios contra el almacén de su empresa y mantiene
// la única sesión activa del proceso.
type AuthUseCase struct {
	companyRepo repository.CompanyRepository
	stores      StoreGateway
	secrets     hasher.Hasher
	jwtCfg      JWTConfig
	log         *logger.Logger

	mu      sync.Mutex
	current *entity.Session
}

// NewAuthUseCase construye el caso de uso de autenticación.
func NewAuthUseCase(
	companyRepo repository.CompanyRepository,
	stores StoreGateway,
	secrets hasher.Hasher,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if jwtCfg.Secret == "" {
		jwtCfg.Secret = jwt.RandomSecret()
		log.Warn().Msg("secreto de sesión no configurado, usando uno efímero")
	}
	return &AuthUseCase{
		companyRepo: companyRepo,
		stores:      stores,
		secrets:     secrets,
		jwtCfg:      jwtCfg,
		log:         log,
	}
}

// Authenticate resuelve la empresa, localiza al usuario en su almacén por
// identificador flexible (login, nombre completo o email) y verifica el
// secreto. Cada paso corta la cadena con su error; usuario inexistente y
// secreto incorrecto colapsan en ErrInvalidCredential hacia afuera para no
// revelar cuál de los dos falló. En éxito sella el último acceso, emite el
// token y reemplaza la sesión activa.
func (uc *AuthUseCase) Authenticate(companyName, identifier, secret string) (*entity.Session, error) {
	// 1. Empresa por nombre exacto.
	company, err := uc.companyRepo.GetByName(companyName)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}

	// 2. El almacén tiene que estar en disco.
	if !uc.stores.StoreExists(company.StoreHandle) {
		uc.log.Error().Str("empresa", companyName).Str("handle", company.StoreHandle).
			Msg("empresa registrada sin almacén en disco")
		return nil, domain.ErrStoreMissing
	}

	// 3. Usuario por identificador flexible dentro del almacén.
	users := uc.stores.UserRepository(company.StoreHandle)
	user, err := users.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Debug().Str("empresa", companyName).Str("identificador", identifier).
			Msg("login fallido: usuario inexistente")
		return nil, domain.ErrInvalidCredential
	}

	// 4. Comparación de hashes, nunca del secreto en claro.
	if uc.secrets.Hash(secret) != user.SecretHash {
		uc.log.Debug().Str("empresa", companyName).Str("login", user.LoginName).
			Msg("login fallido: secreto incorrecto")
		return nil, domain.ErrInvalidCredential
	}

	// 5. El rol persistido tiene que ser uno de los conocidos.
	if !entity.ValidRole(user.Role) {
		return nil, domain.ErrInvalidRole
	}

	// 6. Sellar último acceso y armar la sesión.
	if err := users.TouchLastAccess(user.ID); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.LoginName, company.ID,
		company.StoreHandle, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		StoreHandle: company.StoreHandle,
		LogoPath:    company.LogoPath,
		TaxID:       company.TaxID,
		Address:     company.Address,
		Phone:       company.Phone,
		LoginName:   user.LoginName,
		Role:        user.Role,
		Token:       token,
		IssuedAt:    time.Now(),
	}

	uc.mu.Lock()
	uc.current = session
	uc.mu.Unlock()

	uc.log.Info().Str("empresa", company.Name).Str("login", user.LoginName).
		Str("rol", user.Role).Msg("sesión iniciada")
	return session, nil
}

// Current devuelve la sesión activa, o domain.ErrNoSession si no hay ninguna.
func (uc *AuthUseCase) Current() (*entity.Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return nil, domain.ErrNoSession
	}
	return uc.current, nil
}

// Logout destruye la sesión activa. Es idempotente.
func (uc *AuthUseCase) Logout() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current != nil {
		uc.log.Info().Str("login", uc.current.LoginName).Msg("sesión cerrada")
		uc.current = nil
	}
}
