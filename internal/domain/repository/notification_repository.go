package repository

import (
	"context"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
