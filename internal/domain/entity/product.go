package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Stock se modifica únicamente a través de movimientos (ver Movement).
type Product struct {
	ID          string
	SKU         string // único
	Name        string
	Description string
	CategoryID  string          // vacío si no tiene categoría
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario
	Stock       int
	MinStock    int // umbral de alerta de stock bajo
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está en o bajo su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
