package repository

import (
	"context"

	"github.com/dgiraldo/stockia-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija el stock absoluto del producto (se usa dentro de la
	// transacción que registra el movimiento).
	UpdateStock(ctx context.Context, id string, stock int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Search busca por nombre o SKU sobre la forma normalizada (sin acentos).
	Search(ctx context.Context, normalizedQuery string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
