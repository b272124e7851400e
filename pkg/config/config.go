package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jhoicas/deposito-core/pkg/jwt"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Session SessionConfig
	Hash    HashConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StorageConfig rutas de almacenamiento local. Todo el sistema es mono-proceso
// y basado en archivos: un catálogo compartido más un archivo SQLite por empresa.
type StorageConfig struct {
	DataDir     string // raíz de datos
	StoresDir   string // carpeta con los archivos .db de cada empresa
	LogosDir    string // carpeta de logos (solo se guarda la ruta)
	DirectoryDB string // archivo del catálogo compartido de empresas
}

// DirectoryPath devuelve la ruta (relativa a DataDir si no es absoluta) del catálogo compartido.
func (c StorageConfig) DirectoryPath() string {
	if filepath.IsAbs(c.DirectoryDB) {
		return c.DirectoryDB
	}
	return filepath.Join(c.DataDir, c.DirectoryDB)
}

// StoresPath devuelve la carpeta de almacenes de empresa.
func (c StorageConfig) StoresPath() string {
	if filepath.IsAbs(c.StoresDir) {
		return c.StoresDir
	}
	return filepath.Join(c.DataDir, c.StoresDir)
}

// LogosPath devuelve la carpeta de logos.
func (c StorageConfig) LogosPath() string {
	if filepath.IsAbs(c.LogosDir) {
		return c.LogosDir
	}
	return filepath.Join(c.DataDir, c.LogosDir)
}

// SessionConfig configuración del token de sesión local.
type SessionConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HashConfig selección del esquema de hash de credenciales.
// "sha256" reproduce el comportamiento histórico; "pbkdf2" es la variante endurecida.
type HashConfig struct {
	Scheme string
	Salt   string // salt de aplicación para pbkdf2 (determinista a propósito)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATA_DIR, SESSION_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "deposito-core"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataDir:     getString(v, "DATA_DIR", "."),
			StoresDir:   getString(v, "STORES_DIR", "deposito_empresas"),
			LogosDir:    getString(v, "LOGOS_DIR", "logos"),
			DirectoryDB: getString(v, "DIRECTORY_DB", "deposito_principal.db"),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", ""),
			Expiration: getInt(v, "SESSION_EXP_MINUTES", 480),
			Issuer:     getString(v, "SESSION_ISSUER", "deposito-core"),
		},
		Hash: HashConfig{
			Scheme: getString(v, "HASH_SCHEME", "sha256"),
			Salt:   getString(v, "HASH_SALT", "deposito-core.v1"),
		},
	}

	// Sin secreto configurado se genera uno efímero: las sesiones emitidas
	// valen solo para esta corrida del proceso.
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = jwt.RandomSecret()
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
