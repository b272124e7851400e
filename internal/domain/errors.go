package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa de aplicación los expone tal cual; la infraestructura los envuelve con %w.
var (
	// Directorio de empresas
	ErrDuplicateName   = errors.New("ya existe una empresa con ese nombre")
	ErrCompanyNotFound = errors.New("empresa no encontrada")

	// Aprovisionamiento de almacenes
	ErrStoreMissing      = errors.New("almacén de la empresa no encontrado")
	ErrStoreProvisioning = errors.New("fallo al aprovisionar el almacén")
	ErrSchemaMigration   = errors.New("fallo al migrar el esquema del almacén")

	// Autenticación
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidCredential = errors.New("credenciales inválidas")
	ErrInvalidRole       = errors.New("rol fuera del conjunto permitido")

	// Política de roles
	ErrInsufficientPrivilege = errors.New("privilegios insuficientes para esta operación")
	ErrProtectedAccount      = errors.New("la cuenta administradora de registro no puede eliminarse")

	// CRUD genérico
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNoSession          = errors.New("no hay sesión activa")
)
