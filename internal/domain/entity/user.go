package entity

import "time"

// Roles válidos para TenantUser. Orden total: CEO > Administrator > Manager > Operator.
const (
	RoleCEO           = "CEO"
	RoleAdministrator = "Administrator"
	RoleManager       = "Manager"
	RoleOperator      = "Operator"
)

// ValidRole informa si role pertenece al conjunto enumerado.
func ValidRole(role string) bool {
	switch role {
	case RoleCEO, RoleAdministrator, RoleManager, RoleOperator:
		return true
	}
	return false
}

// TenantUser representa un usuario dentro del almacén aislado de una empresa.
// El ID es autoincremental local al almacén: el desempate de búsquedas
// ambiguas se hace por id más bajo. Cada almacén tiene exactamente un CEO,
// sembrado al registrar la empresa.
type TenantUser struct {
	ID             int64
	CompanyHandle  string // handle del almacén al que pertenece
	CompanyName    string // snapshot del nombre al momento del alta
	LoginName      string
	FullName       string
	SupervisorName string
	Shift          string // Manhã, Tarde, Noite, Integral
	Email          string // único dentro del almacén
	SecretHash     string
	Role           string // ver constantes Role*
	Department     string
	Title          string
	HireDate       string // fecha YYYY-MM-DD
	LastAccessAt   *time.Time
	CreatedBy      string // login de quien lo creó; "SISTEMA" para el CEO sembrado
}
