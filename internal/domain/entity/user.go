package entity

import "time"

// Estados posibles de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // VENDEDOR, MANAGER, ADMIN, CEO
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede autenticarse.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
