package entity

import (
	"time"

	"github.com/dgiraldo/stockia-api/internal/domain/authz"
)

// APIKey representa una credencial programática. Lleva su propio subconjunto de
// permisos (vocabulario de API keys, independiente del rol del creador).
// CreatedBy enlaza al usuario dueño: la key actúa con su identidad para efectos
// de auditoría, pero la autorización usa Permissions, no el rol del dueño.
type APIKey struct {
	ID          string
	Name        string
	Key         string // secreto completo; en listados se expone enmascarado
	Permissions []authz.APIKeyPermission
	IsActive    bool
	ExpiresAt   *time.Time // nil = no expira
	CreatedAt   time.Time
	LastUsed    *time.Time // se actualiza en cada validación exitosa
	CreatedBy   string     // UserID del creador
}

// Expired indica si la key tiene fecha de expiración ya vencida respecto a now.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}
