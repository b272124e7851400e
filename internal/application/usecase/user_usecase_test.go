package usecase_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/application/registry"
	"github.com/jhoicas/deposito-core/internal/application/usecase"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

type userFixture struct {
	uc      *usecase.UserUseCase
	company *entity.Company
}

// newUserFixture registra "Acme" con el administrador protegido "admin".
func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	dir := t.TempDir()
	companies, err := sqlite.NewDirectoryRepository(filepath.Join(dir, "catalogo.db"))
	require.NoError(t, err)
	provisioner := sqlite.NewProvisioner(filepath.Join(dir, "almacenes"), logger.Nop())
	secrets := hasher.SHA256Hasher{}

	registryUC := registry.NewRegistryUseCase(companies, provisioner, secrets, logger.Nop())
	company, err := registryUC.Register(dto.RegisterCompanyRequest{
		Name:        "Acme",
		Secret:      "secreto-empresa",
		AdminUser:   "admin",
		AdminSecret: "secreto-admin",
	})
	require.NoError(t, err)

	uc := usecase.NewUserUseCase(companies, provisioner.UserRepository, secrets, logger.Nop())
	return &userFixture{uc: uc, company: company}
}

func (f *userFixture) session(role string) *entity.Session {
	return &entity.Session{
		CompanyID:   f.company.ID,
		CompanyName: f.company.Name,
		StoreHandle: f.company.StoreHandle,
		LoginName:   "admin",
		Role:        role,
	}
}

func createRequest(login, role string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		LoginName: login,
		FullName:  "Nombre " + login,
		Email:     login + "@acme.com",
		Secret:    "secreto1",
		Role:      role,
	}
}

func TestCreateUserAssignmentMatrix(t *testing.T) {
	cases := []struct {
		creator string
		target  string
		wantErr error
	}{
		{entity.RoleCEO, entity.RoleAdministrator, nil},
		{entity.RoleCEO, entity.RoleOperator, nil},
		{entity.RoleAdministrator, entity.RoleManager, nil},
		{entity.RoleAdministrator, entity.RoleAdministrator, domain.ErrInsufficientPrivilege},
		{entity.RoleManager, entity.RoleOperator, nil},
		{entity.RoleManager, entity.RoleManager, domain.ErrInsufficientPrivilege},
		{entity.RoleOperator, entity.RoleOperator, nil},
		{entity.RoleOperator, entity.RoleManager, domain.ErrInsufficientPrivilege},
		{entity.RoleCEO, entity.RoleCEO, domain.ErrInsufficientPrivilege},
	}
	for _, tc := range cases {
		t.Run(tc.creator+"_crea_"+tc.target, func(t *testing.T) {
			f := newUserFixture(t)
			created, err := f.uc.Create(f.session(tc.creator), createRequest("nuevo", tc.target))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.target, created.Role)
			assert.Equal(t, "admin", created.CreatedBy)
		})
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.Create(f.session(entity.RoleCEO), createRequest("nuevo", "SuperAdmin"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateUserValidation(t *testing.T) {
	f := newUserFixture(t)
	session := f.session(entity.RoleCEO)

	short := createRequest("nuevo", entity.RoleOperator)
	short.Secret = "corto"
	_, err := f.uc.Create(session, short)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badEmail := createRequest("nuevo", entity.RoleOperator)
	badEmail.Email = "sin-arroba"
	_, err = f.uc.Create(session, badEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noLogin := createRequest("", entity.RoleOperator)
	_, err = f.uc.Create(session, noLogin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUserDuplicates(t *testing.T) {
	f := newUserFixture(t)
	session := f.session(entity.RoleCEO)

	_, err := f.uc.Create(session, createRequest("nuevo", entity.RoleOperator))
	require.NoError(t, err)

	// Mismo login.
	_, err = f.uc.Create(session, createRequest("nuevo", entity.RoleOperator))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Mismo email con otro login.
	otro := createRequest("otro", entity.RoleOperator)
	otro.Email = "nuevo@acme.com"
	_, err = f.uc.Create(session, otro)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestDeleteProtectedAdminAccount(t *testing.T) {
	f := newUserFixture(t)
	err := f.uc.Delete(f.session(entity.RoleCEO), "admin")
	assert.ErrorIs(t, err, domain.ErrProtectedAccount)
}

func TestDeleteRequiresDominance(t *testing.T) {
	f := newUserFixture(t)
	ceo := f.session(entity.RoleCEO)

	_, err := f.uc.Create(ceo, createRequest("gerente", entity.RoleManager))
	require.NoError(t, err)
	_, err = f.uc.Create(ceo, createRequest("operario", entity.RoleOperator))
	require.NoError(t, err)

	// Un Manager no puede eliminar a otro Manager, pero sí a un Operator.
	manager := f.session(entity.RoleManager)
	assert.ErrorIs(t, f.uc.Delete(manager, "gerente"), domain.ErrInsufficientPrivilege)
	require.NoError(t, f.uc.Delete(manager, "operario"))

	_, err = f.uc.Find(ceo, "operario")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUnknownUser(t *testing.T) {
	f := newUserFixture(t)
	err := f.uc.Delete(f.session(entity.RoleCEO), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindByFlexibleIdentifier(t *testing.T) {
	f := newUserFixture(t)
	ceo := f.session(entity.RoleCEO)
	_, err := f.uc.Create(ceo, createRequest("jperez", entity.RoleOperator))
	require.NoError(t, err)

	for _, identifier := range []string{"jperez", "Nombre jperez", "jperez@acme.com"} {
		got, err := f.uc.Find(ceo, identifier)
		require.NoError(t, err, identifier)
		assert.Equal(t, "jperez", got.LoginName)
	}
}

func TestListUsers(t *testing.T) {
	f := newUserFixture(t)
	ceo := f.session(entity.RoleCEO)
	_, err := f.uc.Create(ceo, createRequest("zulema", entity.RoleOperator))
	require.NoError(t, err)

	// El CEO sembrado más la operaria.
	users, err := f.uc.List(ceo, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Sin sesión no hay listado.
	_, err = f.uc.List(nil, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
