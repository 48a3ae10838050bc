// Package crypto implementa el colaborador de hash de contraseñas con bcrypt.
package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dgiraldo/stockia-api/internal/application/ports"
)

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hash/verificación de contraseñas con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. cost <= 0 usa el default de la librería.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el hash bcrypt de la contraseña.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify compara una contraseña en claro contra su hash.
func (h *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
