package handle

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Derive convierte el nombre público de una empresa en el identificador del
// almacén: token en minúsculas apto para nombre de archivo, más un sufijo
// corto derivado del propio nombre. El sufijo desambigua empresas con nombres
// que normalizan igual ("Acme S.A." vs "Acme  S A"); como depende solo del
// nombre, re-registrar la misma empresa produce el mismo handle.
func Derive(displayName string) string {
	return Normalize(displayName) + "_" + Suffix(displayName)
}

// Normalize baja a minúsculas, elimina diacríticos y colapsa todo lo que no
// sea letra o dígito ASCII en guiones bajos.
func Normalize(displayName string) string {
	stripped := stripDiacritics(strings.ToLower(displayName))

	var b strings.Builder
	lastUnderscore := false
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// Suffix devuelve los primeros 6 hex del SHA-256 del nombre sin normalizar.
func Suffix(displayName string) string {
	sum := sha256.Sum256([]byte(displayName))
	return hex.EncodeToString(sum[:])[:6]
}

// stripDiacritics descompone (NFD) y descarta las marcas combinantes.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
