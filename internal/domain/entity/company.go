package entity

import "time"

// Estados de una empresa en el directorio compartido.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company representa una empresa registrada en el catálogo compartido.
// Cada empresa posee un almacén SQLite aislado identificado por StoreHandle;
// Name y StoreHandle son únicos a nivel global y StoreHandle es inmutable.
type Company struct {
	ID               string
	Name             string // nombre público, comparación exacta sensible a mayúsculas
	SecretHash       string
	LogoPath         string // solo la ruta; el procesamiento de imagen queda fuera
	StoreHandle      string // derivado del nombre + sufijo hash, ver pkg/handle
	AdminUser        string // login del usuario administrador sembrado al registrar
	TaxID            string
	StateRegistration string
	Address          string
	City             string
	State            string
	Zip              string
	Phone            string
	Email            string
	Website          string
	SubscriptionPlan string // basic por defecto
	Status           string // active, suspended, inactive
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
