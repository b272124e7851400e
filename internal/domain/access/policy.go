package access

import (
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
)

// Política de roles: función pura sobre (rol actuante, rol objetivo) para la
// acción "crear o modificar un usuario con rol objetivo". La jerarquía es el
// orden total CEO > Administrator > Manager > Operator.
//
// assignable[actor] enumera los roles que el actor puede crear o modificar.
// Nadie crea otro CEO (se siembra uno solo al registrar la empresa). Que un
// Operator pueda crear otro Operator viene del sistema original y se conserva
// tal cual, aunque esté marcado como probable descuido.
var assignable = map[string][]string{
	entity.RoleCEO:           {entity.RoleAdministrator, entity.RoleManager, entity.RoleOperator},
	entity.RoleAdministrator: {entity.RoleManager, entity.RoleOperator},
	entity.RoleManager:       {entity.RoleOperator},
	entity.RoleOperator:      {entity.RoleOperator},
}

// CanAssign informa si actingRole puede crear o modificar usuarios con targetRole.
func CanAssign(actingRole, targetRole string) bool {
	for _, allowed := range assignable[actingRole] {
		if allowed == targetRole {
			return true
		}
	}
	return false
}

// CheckAssign valida roles y devuelve ErrInsufficientPrivilege si la jerarquía
// no permite la asignación. Roles fuera del conjunto enumerado fallan con
// ErrInvalidRole antes de evaluar la jerarquía.
func CheckAssign(actingRole, targetRole string) error {
	if !entity.ValidRole(actingRole) || !entity.ValidRole(targetRole) {
		return domain.ErrInvalidRole
	}
	if !CanAssign(actingRole, targetRole) {
		return domain.ErrInsufficientPrivilege
	}
	return nil
}

// CanDelete informa si actingRole puede eliminar usuarios con targetRole.
// La dominancia es la misma que para la creación. La protección de la cuenta
// administradora de registro se aplica aparte, por login, en el caso de uso.
func CanDelete(actingRole, targetRole string) bool {
	return CanAssign(actingRole, targetRole)
}

// CheckDelete valida roles y dominancia para la eliminación.
func CheckDelete(actingRole, targetRole string) error {
	if !entity.ValidRole(actingRole) || !entity.ValidRole(targetRole) {
		return domain.ErrInvalidRole
	}
	if !CanDelete(actingRole, targetRole) {
		return domain.ErrInsufficientPrivilege
	}
	return nil
}
