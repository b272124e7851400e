package dto

// RegisterCompanyRequest entrada para registrar una empresa nueva: nombre
// público, secreto compartido en claro (se hashea en el caso de uso) y
// credenciales del administrador que se siembra como CEO del almacén.
type RegisterCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Secret      string `json:"secret" validate:"required,min=6"`
	AdminUser   string `json:"admin_user" validate:"required,min=1,max=100"`
	AdminSecret string `json:"admin_secret" validate:"required,min=6"`
	LogoPath    string `json:"logo_path"`
}

// UpdateCompanyProfileRequest entrada de actualización parcial del perfil.
// Solo las claves presentes se aplican; claves fuera de la lista permitida se ignoran.
type UpdateCompanyProfileRequest struct {
	Fields map[string]string `json:"fields" validate:"required"`
}

// CompanySummary salida pública de una empresa (sin hash del secreto).
type CompanySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StoreHandle string `json:"store_handle"`
	LogoPath    string `json:"logo_path"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Status      string `json:"status"`
}
