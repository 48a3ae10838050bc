package repository

import (
	"context"
	"time"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      time.Time // cero = sin límite inferior
	To        time.Time // cero = sin límite superior
}

// MovementRepository define el puerto de persistencia para Movement.
// Los movimientos son inmutables: solo se insertan y consultan.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error)
}
