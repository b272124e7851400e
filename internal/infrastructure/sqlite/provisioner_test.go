package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

var testHasher = hasher.SHA256Hasher{}

func newTestProvisioner(t *testing.T) *sqlite.Provisioner {
	t.Helper()
	return sqlite.NewProvisioner(filepath.Join(t.TempDir(), "almacenes"), logger.Nop())
}

func TestProvisionCreatesStoreWithSeededCEO(t *testing.T) {
	p := newTestProvisioner(t)

	handle, err := p.Provision("acme_abc123", "jperez", testHasher.Hash("secreto1"), "Acme Depositos")
	require.NoError(t, err)
	assert.Equal(t, "acme_abc123", handle)
	assert.True(t, p.StoreExists(handle))

	user, err := p.UserRepository(handle).GetByLogin("jperez")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleCEO, user.Role)
	assert.Equal(t, "jperez", user.FullName)
	assert.Equal(t, "N/A", user.SupervisorName)
	assert.Equal(t, "Integral", user.Shift)
	assert.Equal(t, "Diretoria", user.Department)
	assert.Equal(t, "CEO", user.Title)
	assert.Equal(t, "SISTEMA", user.CreatedBy)
	assert.Equal(t, "jperez@acmedepositos.com", user.Email)
	assert.Equal(t, testHasher.Hash("secreto1"), user.SecretHash)
}

func TestProvisionSeedsExactlyOneCEO(t *testing.T) {
	p := newTestProvisioner(t)

	handle, err := p.Provision("solo_ceo_000000", "ana", testHasher.Hash("secreto1"), "Solo CEO")
	require.NoError(t, err)

	n, err := sqlite.NewUserRepository(p.StoreFor(handle)).CountByRole(entity.RoleCEO)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	p := newTestProvisioner(t)

	handle, err := p.Provision("idem_111111", "ana", testHasher.Hash("secreto1"), "Idem")
	require.NoError(t, err)

	store := p.StoreFor(handle)
	// Repetir el DDL y las migraciones no toca filas existentes.
	require.NoError(t, p.EnsureSchema(store))
	require.NoError(t, p.EnsureSchema(store))

	user, err := p.UserRepository(handle).GetByLogin("ana")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleCEO, user.Role)
}

func TestProvisionReplacesStaleStore(t *testing.T) {
	p := newTestProvisioner(t)

	handle, err := p.Provision("stale_222222", "viejo", testHasher.Hash("secreto1"), "Stale")
	require.NoError(t, err)

	// Un segundo aprovisionamiento con el mismo handle descarta el archivo viejo.
	handle2, err := p.Provision("stale_222222", "nuevo", testHasher.Hash("secreto2"), "Stale")
	require.NoError(t, err)
	assert.Equal(t, handle, handle2)

	users := p.UserRepository(handle2)
	old, err := users.GetByLogin("viejo")
	require.NoError(t, err)
	assert.Nil(t, old)

	fresh, err := users.GetByLogin("nuevo")
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, entity.RoleCEO, fresh.Role)
}

func TestRemoveStore(t *testing.T) {
	p := newTestProvisioner(t)

	handle, err := p.Provision("remove_333333", "ana", testHasher.Hash("secreto1"), "Remove")
	require.NoError(t, err)
	require.True(t, p.StoreExists(handle))

	require.NoError(t, p.RemoveStore(handle))
	assert.False(t, p.StoreExists(handle))

	// Eliminar un almacén inexistente es un no-op.
	assert.NoError(t, p.RemoveStore(handle))
}
