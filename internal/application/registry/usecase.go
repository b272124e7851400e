package registry

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
	"github.com/jhoicas/deposito-core/pkg/handle"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

// StoreProvisioner define lo que el registro necesita del aprovisionador de
// almacenes: crear el almacén completo de una empresa y deshacerlo si el
// registro falla a mitad de camino.
type StoreProvisioner interface {
	// Provision crea el almacén, aplica el esquema y siembra el CEO.
	// Devuelve el handle definitivo, que puede diferir del pedido.
	Provision(handle, loginName, secretHash, companyName string) (string, error)
	RemoveStore(handle string) error
}

// Nombres de empresa aceptados: letras/dígitos/guión bajo, espacios, guiones y puntos.
var companyNamePattern = regexp.MustCompile(`^[\w\s.\-]+$`)

// RegistryUseCase gestiona el directorio de empresas: alta con
// aprovisionamiento del almacén, búsqueda, autocompletado y perfil.
type RegistryUseCase struct {
	companyRepo repository.CompanyRepository
	provisioner StoreProvisioner
	secrets     hasher.Hasher
	log         *logger.Logger
}

// NewRegistryUseCase construye el caso de uso del directorio.
func NewRegistryUseCase(
	companyRepo repository.CompanyRepository,
	provisioner StoreProvisioner,
	secrets hasher.Hasher,
	log *logger.Logger,
) *RegistryUseCase {
	return &RegistryUseCase{
		companyRepo: companyRepo,
		provisioner: provisioner,
		secrets:     secrets,
		log:         log,
	}
}

// Register da de alta una empresa: valida la entrada, verifica unicidad del
// nombre, crea la fila del directorio y aprovisiona el almacén aislado con su
// CEO sembrado. Si el aprovisionamiento falla, la fila del directorio se
// elimina: o queda todo o no queda nada.
func (uc *RegistryUseCase) Register(in dto.RegisterCompanyRequest) (*entity.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !companyNamePattern.MatchString(name) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Secret) < 6 || len(in.AdminSecret) < 6 {
		return nil, domain.ErrInvalidInput
	}
	admin := strings.TrimSpace(in.AdminUser)
	if admin == "" {
		return nil, domain.ErrInvalidInput
	}

	// Verificación temprana para el mensaje correcto; la restricción UNIQUE
	// del directorio cubre la carrera entre procesos.
	existing, err := uc.companyRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	company := &entity.Company{
		ID:               uuid.New().String(),
		Name:             name,
		SecretHash:       uc.secrets.Hash(in.Secret),
		LogoPath:         in.LogoPath,
		StoreHandle:      handle.Derive(name),
		AdminUser:        admin,
		SubscriptionPlan: "basic",
		Status:           entity.CompanyStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}

	finalHandle, err := uc.provisioner.Provision(
		company.StoreHandle, admin, uc.secrets.Hash(in.AdminSecret), name)
	if err != nil {
		if delErr := uc.companyRepo.Delete(company.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("empresa", name).
				Msg("no se pudo deshacer la fila del directorio tras fallo de aprovisionamiento")
		}
		return nil, err
	}
	if finalHandle != company.StoreHandle {
		if err := uc.companyRepo.UpdateStoreHandle(company.ID, finalHandle); err != nil {
			if delErr := uc.companyRepo.Delete(company.ID); delErr != nil {
				uc.log.Error().Err(delErr).Str("empresa", name).
					Msg("no se pudo deshacer la fila del directorio tras fallo de registro de handle")
			}
			if remErr := uc.provisioner.RemoveStore(finalHandle); remErr != nil {
				uc.log.Error().Err(remErr).Str("handle", finalHandle).
					Msg("no se pudo eliminar el almacén tras fallo de registro de handle")
			}
			return nil, err
		}
		company.StoreHandle = finalHandle
	}

	uc.log.Info().Str("empresa", name).Str("handle", company.StoreHandle).Msg("empresa registrada")
	return company, nil
}

// FindByName busca una empresa por nombre público exacto (sensible a mayúsculas).
// Devuelve domain.ErrCompanyNotFound si no existe.
func (uc *RegistryUseCase) FindByName(name string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

// ListNamesPrefixed devuelve los nombres registrados que empiezan con el
// prefijo, sin distinguir mayúsculas, ordenados alfabéticamente. Con prefijo
// vacío devuelve todos. Es la fuente del autocompletado de la pantalla de login.
func (uc *RegistryUseCase) ListNamesPrefixed(prefix string) ([]string, error) {
	names, err := uc.companyRepo.ListNames()
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(prefix)
	var matched []string
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

// UpdateProfile actualiza el perfil de la empresa de la sesión. Solo CEO y
// Administrator pueden hacerlo; el handle del almacén y el hash del secreto
// quedan fuera del alcance aunque vengan en los campos.
func (uc *RegistryUseCase) UpdateProfile(session *entity.Session, in dto.UpdateCompanyProfileRequest) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if session.Role != entity.RoleCEO && session.Role != entity.RoleAdministrator {
		return domain.ErrInsufficientPrivilege
	}
	if len(in.Fields) == 0 {
		return nil
	}
	if err := uc.companyRepo.UpdateProfile(session.CompanyID, in.Fields); err != nil {
		return err
	}
	refreshSession(session, in.Fields)
	return nil
}

// refreshSession refleja en la sesión activa los campos del perfil que ella
// misma exhibe, para que la pantalla no muestre datos viejos hasta el próximo login.
func refreshSession(session *entity.Session, fields map[string]string) {
	for column, value := range fields {
		switch column {
		case "name":
			session.CompanyName = value
		case "logo_path":
			session.LogoPath = value
		case "tax_id":
			session.TaxID = value
		case "address":
			session.Address = value
		case "phone":
			session.Phone = value
		}
	}
}

// Summary proyecta la vista pública de una empresa.
func Summary(c *entity.Company) *dto.CompanySummary {
	if c == nil {
		return nil
	}
	return &dto.CompanySummary{
		ID:          c.ID,
		Name:        c.Name,
		StoreHandle: c.StoreHandle,
		LogoPath:    c.LogoPath,
		TaxID:       c.TaxID,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Phone:       c.Phone,
		Email:       c.Email,
		Status:      c.Status,
	}
}
