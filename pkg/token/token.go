// Package token genera y valida los tokens firmados de recuperación de
// contraseña. La cookie de sesión NO pasa por aquí: mantiene su formato plano
// por compatibilidad con los clientes existentes.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const purposePasswordReset = "password_reset"

// resetClaims claims del token de recuperación.
type resetClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
}

// GenerateReset genera un token firmado de recuperación de contraseña para el usuario.
func GenerateReset(secret, userID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		Purpose: purposePasswordReset,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseReset valida el token y devuelve el userID. Retorna error si el token es
// inválido, expirado, con firma incorrecta o emitido para otro propósito.
func ParseReset(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &resetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := tok.Claims.(*resetClaims)
	if !ok || !tok.Valid {
		return "", fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purposePasswordReset {
		return "", fmt.Errorf("propósito inesperado: %s", claims.Purpose)
	}
	return claims.UserID, nil
}
