package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
)

// Store referencia el almacén SQLite aislado de una empresa. Handle es el
// identificador único e inmutable; Path es el archivo que lo respalda.
// Los llamadores deben usar siempre el handle del Store devuelto por el
// aprovisionador, que puede diferir del solicitado si hubo desambiguación.
type Store struct {
	Handle string
	Path   string
}

// storePath compone la ruta del archivo de un handle dentro de storesDir.
func storePath(storesDir, handle string) string {
	return filepath.Join(storesDir, handle+".db")
}

// Exists informa si el archivo del almacén está presente en disco.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// open abre el archivo del almacén con los pragmas del sistema.
func (s *Store) open() (*sql.DB, error) {
	return openDB(s.Path)
}
