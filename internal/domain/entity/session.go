package entity

import "time"

// Session es el registro efímero (solo memoria de proceso) de la empresa y el
// usuario autenticados. Se crea en el login, se destruye en el logout o al
// terminar el proceso; hay como máximo una sesión activa por instancia.
// Reemplaza al estado mutable implícito de la aplicación original: toda
// operación del núcleo recibe la sesión de forma explícita.
type Session struct {
	CompanyID   string
	CompanyName string
	StoreHandle string
	LogoPath    string
	TaxID       string
	Address     string
	Phone       string

	LoginName string
	Role      string

	Token    string // token firmado para que la capa de presentación lo retenga
	IssuedAt time.Time
}
