package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/infrastructure/sqlite"
)

func newTestDirectory(t *testing.T) *sqlite.DirectoryRepo {
	t.Helper()
	repo, err := sqlite.NewDirectoryRepository(filepath.Join(t.TempDir(), "catalogo.db"))
	require.NoError(t, err)
	return repo
}

func testCompany(name, handle string) *entity.Company {
	now := time.Now()
	return &entity.Company{
		ID:          uuid.New().String(),
		Name:        name,
		SecretHash:  "hash",
		StoreHandle: handle,
		AdminUser:   "admin",
		Status:      entity.CompanyStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestDirectoryCreateAndGetByName(t *testing.T) {
	repo := newTestDirectory(t)
	require.NoError(t, repo.Create(testCompany("Acme", "acme_aaaaaa")))

	got, err := repo.GetByName("Acme")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acme_aaaaaa", got.StoreHandle)
	assert.Equal(t, "admin", got.AdminUser)
}

func TestDirectoryGetByNameIsCaseSensitive(t *testing.T) {
	repo := newTestDirectory(t)
	require.NoError(t, repo.Create(testCompany("Acme", "acme_aaaaaa")))

	got, err := repo.GetByName("acme")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDirectoryDuplicateName(t *testing.T) {
	repo := newTestDirectory(t)
	require.NoError(t, repo.Create(testCompany("Acme", "acme_aaaaaa")))

	err := repo.Create(testCompany("Acme", "acme_bbbbbb"))
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestDirectoryDuplicateHandle(t *testing.T) {
	repo := newTestDirectory(t)
	require.NoError(t, repo.Create(testCompany("Acme", "acme_aaaaaa")))

	err := repo.Create(testCompany("Otra", "acme_aaaaaa"))
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestDirectoryListNamesInInsertionOrder(t *testing.T) {
	repo := newTestDirectory(t)
	require.NoError(t, repo.Create(testCompany("Zeta", "zeta_aaaaaa")))
	require.NoError(t, repo.Create(testCompany("Acme", "acme_aaaaaa")))

	names, err := repo.ListNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Acme"}, names)
}

func TestDirectoryUpdateProfileHonorsAllowList(t *testing.T) {
	repo := newTestDirectory(t)
	company := testCompany("Acme", "acme_aaaaaa")
	require.NoError(t, repo.Create(company))

	err := repo.UpdateProfile(company.ID, map[string]string{
		"phone":        "5551234",
		"city":         "Rosario",
		"store_handle": "hackeado", // fuera de la lista: se ignora
		"secret_hash":  "hackeado", // fuera de la lista: se ignora
	})
	require.NoError(t, err)

	got, err := repo.GetByID(company.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "5551234", got.Phone)
	assert.Equal(t, "Rosario", got.City)
	assert.Equal(t, "acme_aaaaaa", got.StoreHandle)
	assert.Equal(t, "hash", got.SecretHash)
}

func TestDirectoryUpdateProfileUnknownCompany(t *testing.T) {
	repo := newTestDirectory(t)
	err := repo.UpdateProfile(uuid.New().String(), map[string]string{"phone": "1"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestDirectoryUpdateStoreHandle(t *testing.T) {
	repo := newTestDirectory(t)
	company := testCompany("Acme", "acme_aaaaaa")
	require.NoError(t, repo.Create(company))

	require.NoError(t, repo.UpdateStoreHandle(company.ID, "acme_aaaaaa_1700000000"))
	got, err := repo.GetByID(company.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme_aaaaaa_1700000000", got.StoreHandle)
}

func TestDirectoryDelete(t *testing.T) {
	repo := newTestDirectory(t)
	company := testCompany("Acme", "acme_aaaaaa")
	require.NoError(t, repo.Create(company))

	require.NoError(t, repo.Delete(company.ID))
	got, err := repo.GetByID(company.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
