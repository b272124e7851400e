package dto

import "time"

// CreateUserRequest entrada para crear un usuario del almacén (el secreto
// llega en claro y se hashea en el caso de uso).
type CreateUserRequest struct {
	LoginName      string `json:"login_name" validate:"required,min=1,max=100"`
	FullName       string `json:"full_name" validate:"required,min=1,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Secret         string `json:"secret" validate:"required,min=6"`
	Role           string `json:"role" validate:"required,oneof=CEO Administrator Manager Operator"`
	SupervisorName string `json:"supervisor_name"`
	Shift          string `json:"shift"`
	Department     string `json:"department"`
	Title          string `json:"title"`
	HireDate       string `json:"hire_date"`
}

// UserResponse salida de un usuario del almacén (sin hash del secreto).
type UserResponse struct {
	ID             int64      `json:"id"`
	LoginName      string     `json:"login_name"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	SupervisorName string     `json:"supervisor_name"`
	Shift          string     `json:"shift"`
	Department     string     `json:"department"`
	Title          string     `json:"title"`
	HireDate       string     `json:"hire_date"`
	LastAccessAt   *time.Time `json:"last_access_at,omitempty"`
	CreatedBy      string     `json:"created_by"`
}

// LoginRequest entrada para autenticarse: empresa + identificador flexible
// (login, nombre completo o email) + secreto en claro.
type LoginRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Identifier  string `json:"identifier" validate:"required"`
	Secret      string `json:"secret" validate:"required"`
}
