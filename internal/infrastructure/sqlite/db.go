package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver SQLite
)

const (
	// busyTimeout máximo de espera por un lock del archivo antes de fallar.
	busyTimeout = 5 * time.Second

	// pingTimeout para verificar la conexión al abrir.
	pingTimeout = 5 * time.Second
)

// openDB abre un archivo SQLite con los pragmas del sistema: claves foráneas
// activas y busy timeout para detectar archivos en uso sin corromper estado.
// Cada almacén se abre y se cierra por operación; una sola conexión escritora.
func openDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		path, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base %s: %w", path, err)
	}

	// SQLite admite un solo escritor; sin pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("verificar base %s: %w", path, err)
	}
	return db, nil
}

// queryable es el subconjunto común de *sql.DB y *sql.Tx que usan los
// repositorios, para compartir el SQL entre operaciones sueltas y transacciones.
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
