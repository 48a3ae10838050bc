package repository

import (
	"context"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// SettingRepository define el puerto de persistencia para Setting.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	// Upsert inserta o reemplaza el valor de la clave.
	Upsert(ctx context.Context, setting *entity.Setting) error
	List(ctx context.Context, category string) ([]*entity.Setting, error)
	Delete(ctx context.Context, key string) error
}
