package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/access"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
)

// Matriz completa de asignación: quién puede crear/modificar a quién.
func TestCanAssign_MatrizCompleta(t *testing.T) {
	casos := []struct {
		actor     string
		objetivo  string
		permitido bool
	}{
		{entity.RoleCEO, entity.RoleCEO, false}, // nadie crea otro CEO
		{entity.RoleCEO, entity.RoleAdministrator, true},
		{entity.RoleCEO, entity.RoleManager, true},
		{entity.RoleCEO, entity.RoleOperator, true},

		{entity.RoleAdministrator, entity.RoleCEO, false},
		{entity.RoleAdministrator, entity.RoleAdministrator, false},
		{entity.RoleAdministrator, entity.RoleManager, true},
		{entity.RoleAdministrator, entity.RoleOperator, true},

		{entity.RoleManager, entity.RoleCEO, false},
		{entity.RoleManager, entity.RoleAdministrator, false},
		{entity.RoleManager, entity.RoleManager, false},
		{entity.RoleManager, entity.RoleOperator, true},

		{entity.RoleOperator, entity.RoleCEO, false},
		{entity.RoleOperator, entity.RoleAdministrator, false},
		{entity.RoleOperator, entity.RoleManager, false},
		// Conservado del sistema original: Operator puede crear pares.
		{entity.RoleOperator, entity.RoleOperator, true},
	}

	for _, c := range casos {
		assert.Equal(t, c.permitido, access.CanAssign(c.actor, c.objetivo),
			"actor=%s objetivo=%s", c.actor, c.objetivo)
	}
}

// CheckAssign debe devolver ErrInsufficientPrivilege cuando la jerarquía no alcanza.
func TestCheckAssign_PrivilegiosInsuficientes(t *testing.T) {
	err := access.CheckAssign(entity.RoleOperator, entity.RoleManager)
	assert.ErrorIs(t, err, domain.ErrInsufficientPrivilege)

	err = access.CheckAssign(entity.RoleAdministrator, entity.RoleAdministrator)
	assert.ErrorIs(t, err, domain.ErrInsufficientPrivilege)
}

// Roles fuera del conjunto enumerado fallan con ErrInvalidRole, no con privilegios.
func TestCheckAssign_RolInvalido(t *testing.T) {
	assert.ErrorIs(t, access.CheckAssign("SuperUser", entity.RoleOperator), domain.ErrInvalidRole)
	assert.ErrorIs(t, access.CheckAssign(entity.RoleCEO, ""), domain.ErrInvalidRole)
}

// La dominancia de eliminación es la misma que la de creación.
func TestCheckDelete_MismaDominancia(t *testing.T) {
	assert.NoError(t, access.CheckDelete(entity.RoleCEO, entity.RoleOperator))
	assert.NoError(t, access.CheckDelete(entity.RoleManager, entity.RoleOperator))
	assert.ErrorIs(t, access.CheckDelete(entity.RoleManager, entity.RoleAdministrator), domain.ErrInsufficientPrivilege)
	assert.ErrorIs(t, access.CheckDelete(entity.RoleAdministrator, entity.RoleCEO), domain.ErrInsufficientPrivilege)
}
