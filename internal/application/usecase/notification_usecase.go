package usecase

import (
	"context"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
)

// NotificationUseCase consulta y administra notificaciones por usuario.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListByUser lista las notificaciones del usuario.
func (uc *NotificationUseCase) ListByUser(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]dto.NotificationResponse, error) {
	notifications, err := uc.repo.ListByUser(ctx, userID, onlyUnread, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, *toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación como leída. Solo el dueño puede hacerlo.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.repo.MarkAllRead(ctx, userID)
}

// Delete elimina una notificación del usuario.
func (uc *NotificationUseCase) Delete(ctx context.Context, userID, id string) error {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
