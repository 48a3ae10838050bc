package dto

import "time"

// CreateMovementRequest registro de un movimiento de inventario.
// Para type=adjust, quantity es el nuevo stock absoluto.
type CreateMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Type      string `json:"type" validate:"required,oneof=in out adjust"`
	Quantity  int    `json:"quantity" validate:"min=0"`
	Reason    string `json:"reason" validate:"omitempty,max=120"`
	Reference string `json:"reference" validate:"omitempty,max=120"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
}

// MovementResponse representación pública de un movimiento.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	UserID    string    `json:"user_id"`
	NewStock  int       `json:"new_stock,omitempty"` // stock resultante, solo al crear
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items  []MovementResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
