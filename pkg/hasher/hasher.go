package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Hasher transforma un secreto en un digest almacenable. El contrato exige
// determinismo: el mismo secreto produce siempre el mismo digest, porque la
// verificación se hace recalculando y comparando por igualdad, no con un
// esquema salteado por usuario.
type Hasher interface {
	Hash(secret string) string
}

// SHA256Hasher digest hex de SHA-256, igual que el sistema histórico.
// Sin salt ni iteraciones; debilidad conocida y documentada.
type SHA256Hasher struct{}

// Hash devuelve hex(sha256(secret)).
func (SHA256Hasher) Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// PBKDF2Hasher variante endurecida: PBKDF2-SHA256 con salt fijo de aplicación.
// El salt es a nivel de aplicación (no por usuario) a propósito, para conservar
// el contrato de igualdad. Desviación del comportamiento original documentada.
type PBKDF2Hasher struct {
	Salt       string
	Iterations int
}

// Iteraciones por defecto cuando no se configuran.
const defaultIterations = 4096

// Hash devuelve hex(pbkdf2(secret, salt, iter, sha256, 32)).
func (h PBKDF2Hasher) Hash(secret string) string {
	iter := h.Iterations
	if iter <= 0 {
		iter = defaultIterations
	}
	key := pbkdf2.Key([]byte(secret), []byte(h.Salt), iter, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

// ForScheme selecciona la implementación según configuración.
// Esquemas: "pbkdf2" o "sha256" (por defecto).
func ForScheme(scheme, salt string) Hasher {
	if scheme == "pbkdf2" {
		return PBKDF2Hasher{Salt: salt}
	}
	return SHA256Hasher{}
}
