// Package ports declara los contratos de colaboradores externos que la capa de
// aplicación consume pero no implementa.
package ports

import (
	"context"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// PasswordHasher capacidad opaca de hash/verificación de contraseñas.
// La implementación (bcrypt) vive en infraestructura.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// NotificationSender entrega una notificación por un canal externo (email,
// push). La mecánica de entrega no es parte de este núcleo; el adaptador por
// defecto solo la registra en el log.
type NotificationSender interface {
	Send(ctx context.Context, n *entity.Notification) error
}
