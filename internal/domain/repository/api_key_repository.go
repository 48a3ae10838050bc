package repository

import (
	"context"
	"time"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// APIKeyRepository define el puerto de persistencia para APIKey.
// GetByKey busca por el secreto completo; devuelve (nil, nil) si no hay fila.
type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	GetByID(ctx context.Context, id string) (*entity.APIKey, error)
	GetByKey(ctx context.Context, secret string) (*entity.APIKey, error)
	List(ctx context.Context) ([]*entity.APIKey, error)
	// TouchLastUsed registra el uso de la key; last-write-wins es aceptable,
	// el timestamp es un dato de monitoreo, no un control de seguridad.
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
