// Package notify contiene adaptadores de entrega de notificaciones.
// El envío real (email, push) es un colaborador externo; este adaptador
// registra la notificación en el log estructurado.
package notify

import (
	"context"

	"github.com/dgiraldo/stockia-api/internal/application/ports"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/pkg/logger"
)

var _ ports.NotificationSender = (*LogSender)(nil)

// LogSender entrega notificaciones escribiéndolas al log.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el adaptador.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.Component("notify")}
}

// Send registra la notificación. Nunca falla.
func (s *LogSender) Send(_ context.Context, n *entity.Notification) error {
	s.log.Info().
		Str("user_id", n.UserID).
		Str("type", n.Type).
		Str("title", n.Title).
		Msg("notificación emitida")
	return nil
}
