package jwt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión local.
// Se añade Role para que la capa de presentación pueda tomar decisiones sin releer la DB.
type Claims struct {
	jwt.RegisteredClaims
	LoginName   string `json:"login_name"`
	CompanyID   string `json:"company_id"`
	StoreHandle string `json:"store_handle"`
	Role        string `json:"role"` // "CEO" | "Administrator" | "Manager" | "Operator"
}

// RandomSecret genera un secreto de firma efímero. Los tokens firmados con él
// valen solo mientras viva el proceso, que es exactamente el alcance de la
// sesión local.
func RandomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b) // nunca falla desde Go 1.24
	return hex.EncodeToString(b)
}

// Generate genera un token de sesión firmado con login, empresa, almacén y rol.
func Generate(secret, loginName, companyID, storeHandle, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   loginName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		LoginName:   loginName,
		CompanyID:   companyID,
		StoreHandle: storeHandle,
		Role:        role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve login, empresa, almacén y rol.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (loginName, companyID, storeHandle, role string, err error) {
	if secret == "" {
		return "", "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.LoginName, claims.CompanyID, claims.StoreHandle, claims.Role, nil
}
