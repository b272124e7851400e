package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Esquema del catálogo compartido de empresas. El directorio vive en un único
// archivo; las tablas de cada empresa viven en su almacén aislado.
const directorySchema = `
	CREATE TABLE IF NOT EXISTS companies (
		id                 TEXT PRIMARY KEY,
		name               TEXT UNIQUE NOT NULL,
		secret_hash        TEXT NOT NULL,
		logo_path          TEXT DEFAULT '',
		store_handle       TEXT UNIQUE NOT NULL,
		admin_user         TEXT NOT NULL DEFAULT '',
		tax_id             TEXT DEFAULT '',
		state_registration TEXT DEFAULT '',
		address            TEXT DEFAULT '',
		city               TEXT DEFAULT '',
		state              TEXT DEFAULT '',
		zip                TEXT DEFAULT '',
		phone              TEXT DEFAULT '',
		email              TEXT DEFAULT '',
		website            TEXT DEFAULT '',
		subscription_plan  TEXT DEFAULT 'basic',
		status             TEXT DEFAULT 'active',
		created_at         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// Esquema completo de un almacén de empresa. Todas las claves foráneas
// resuelven dentro del mismo archivo; no hay referencias entre almacenes.
var tenantSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		company_handle  TEXT NOT NULL,
		company_name    TEXT NOT NULL,
		login_name      TEXT NOT NULL,
		full_name       TEXT NOT NULL,
		supervisor_name TEXT NOT NULL DEFAULT '',
		shift           TEXT NOT NULL DEFAULT '',
		email           TEXT UNIQUE NOT NULL,
		secret_hash     TEXT NOT NULL,
		role            TEXT NOT NULL CHECK(role IN ('CEO', 'Administrator', 'Manager', 'Operator')),
		department      TEXT DEFAULT '',
		title           TEXT DEFAULT '',
		hire_date       TEXT DEFAULT '',
		last_access_at  TIMESTAMP,
		created_by      TEXT DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		barcode      TEXT UNIQUE,
		sku          TEXT UNIQUE,
		name         TEXT NOT NULL,
		description  TEXT DEFAULT '',
		category     TEXT DEFAULT '',
		brand        TEXT DEFAULT '',
		quantity     INTEGER NOT NULL DEFAULT 0,
		min_quantity INTEGER NOT NULL DEFAULT 0,
		cost_price   TEXT NOT NULL DEFAULT '0',
		sale_price   TEXT NOT NULL DEFAULT '0',
		location     TEXT DEFAULT '',
		supplier     TEXT DEFAULT '',
		created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		type       TEXT NOT NULL,
		quantity   INTEGER NOT NULL,
		reason     TEXT DEFAULT '',
		invoice_no TEXT DEFAULT '',
		user_id    INTEGER NOT NULL,
		moved_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (product_id) REFERENCES products (id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS warehouses (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		type            TEXT NOT NULL,
		address         TEXT DEFAULT '',
		city            TEXT DEFAULT '',
		state           TEXT DEFAULT '',
		zip             TEXT DEFAULT '',
		manager_user_id INTEGER,
		total_capacity  REAL,
		status          TEXT DEFAULT 'active',
		FOREIGN KEY (manager_user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_locations (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		warehouse_id INTEGER NOT NULL,
		product_id   INTEGER NOT NULL,
		quantity     INTEGER NOT NULL,
		aisle        TEXT DEFAULT '',
		shelf        TEXT DEFAULT '',
		level        TEXT DEFAULT '',
		position     TEXT DEFAULT '',
		updated_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (warehouse_id) REFERENCES warehouses (id),
		FOREIGN KEY (product_id) REFERENCES products (id)
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		legal_name         TEXT NOT NULL,
		trade_name         TEXT DEFAULT '',
		tax_id             TEXT UNIQUE,
		state_registration TEXT DEFAULT '',
		address            TEXT DEFAULT '',
		city               TEXT DEFAULT '',
		state              TEXT DEFAULT '',
		zip                TEXT DEFAULT '',
		phone              TEXT DEFAULT '',
		email              TEXT DEFAULT '',
		contact_name       TEXT DEFAULT '',
		delivery_days      INTEGER DEFAULT 0,
		payment_terms      TEXT DEFAULT '',
		status             TEXT DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		number            TEXT UNIQUE NOT NULL,
		customer_id       INTEGER,
		user_id           INTEGER NOT NULL,
		status            TEXT DEFAULT 'pending',
		type              TEXT NOT NULL,
		ordered_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expected_delivery TEXT,
		delivered_at      TEXT,
		total             TEXT DEFAULT '0',
		notes             TEXT DEFAULT '',
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id   INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity   INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		discount   TEXT NOT NULL DEFAULT '0',
		subtotal   TEXT NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders (id),
		FOREIGN KEY (product_id) REFERENCES products (id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_tracking (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id   INTEGER NOT NULL,
		status     TEXT NOT NULL,
		location   TEXT DEFAULT '',
		notes      TEXT DEFAULT '',
		user_id    INTEGER NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders (id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
}

// columnMigration añade una columna faltante con un default seguro. La
// política de evolución del esquema es solo aditiva: nunca se elimina ni se
// renombra nada, solo se ensancha. Aplicarla dos veces es un no-op.
type columnMigration struct {
	version    int
	table      string
	column     string
	definition string
}

// Migraciones del almacén de empresa, en orden de versión. La tabla users
// ganó las columnas de contexto de empresa y de identificación flexible a lo
// largo de la vida del sistema.
var tenantMigrations = []columnMigration{
	{2, "users", "company_handle", "TEXT NOT NULL DEFAULT ''"},
	{2, "users", "company_name", "TEXT NOT NULL DEFAULT ''"},
	{2, "users", "login_name", "TEXT NOT NULL DEFAULT ''"},
	{2, "users", "supervisor_name", "TEXT NOT NULL DEFAULT ''"},
	{2, "users", "shift", "TEXT NOT NULL DEFAULT ''"},
	{3, "users", "department", "TEXT DEFAULT ''"},
	{3, "users", "title", "TEXT DEFAULT ''"},
	{3, "users", "hire_date", "TEXT DEFAULT ''"},
	{3, "users", "last_access_at", "TIMESTAMP"},
	{3, "users", "created_by", "TEXT DEFAULT ''"},
}

// Migraciones del directorio compartido: perfil denormalizado de la empresa.
var directoryMigrations = []columnMigration{
	{2, "companies", "tax_id", "TEXT DEFAULT ''"},
	{2, "companies", "address", "TEXT DEFAULT ''"},
	{2, "companies", "phone", "TEXT DEFAULT ''"},
	{2, "companies", "admin_user", "TEXT NOT NULL DEFAULT ''"},
	{3, "companies", "state_registration", "TEXT DEFAULT ''"},
	{3, "companies", "city", "TEXT DEFAULT ''"},
	{3, "companies", "state", "TEXT DEFAULT ''"},
	{3, "companies", "zip", "TEXT DEFAULT ''"},
	{3, "companies", "email", "TEXT DEFAULT ''"},
	{3, "companies", "website", "TEXT DEFAULT ''"},
	{3, "companies", "subscription_plan", "TEXT DEFAULT 'basic'"},
	{3, "companies", "status", "TEXT DEFAULT 'active'"},
}

// applyMigrations añade las columnas faltantes de la lista. Consulta
// PRAGMA table_info en vez de capturar errores del ALTER, para distinguir
// "columna ya existe" de fallos reales de migración.
func applyMigrations(ctx context.Context, db *sql.DB, migrations []columnMigration) error {
	byTable := map[string]map[string]bool{}
	for _, m := range migrations {
		existing, ok := byTable[m.table]
		if !ok {
			var err error
			existing, err = tableColumns(ctx, db, m.table)
			if err != nil {
				return err
			}
			byTable[m.table] = existing
		}
		if existing[m.column] {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.definition)
		if _, err := db.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("migración v%d %s.%s: %w", m.version, m.table, m.column, err)
		}
		existing[m.column] = true
	}
	return nil
}

// tableColumns devuelve el conjunto de columnas existentes de una tabla.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid        int
			name       string
			typ        string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info %s: %w", table, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
