package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeLowStock      = "low_stock"
	NotificationTypeUserChange    = "user_change"
	NotificationTypePasswordReset = "password_reset"
	NotificationTypeSystem        = "system"
)

// Notification representa una notificación persistida para un usuario.
// La entrega (email, push) es responsabilidad de un colaborador externo.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
