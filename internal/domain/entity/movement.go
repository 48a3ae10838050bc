package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn     = "in"     // entrada
	MovementTypeOut    = "out"    // salida
	MovementTypeAdjust = "adjust" // ajuste absoluto de stock
)

// Movement representa un movimiento de inventario. Quantity es positivo; para
// "adjust" es el nuevo stock absoluto del producto.
type Movement struct {
	ID        string
	ProductID string
	Type      string // in, out, adjust
	Quantity  int
	Reason    string // compra, venta, merma, conteo, etc.
	Reference string // factura, orden, nota
	Notes     string
	UserID    string // quien registró el movimiento (auditoría)
	CreatedAt time.Time
}
