package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	CategoryID  string          `json:"category_id" validate:"omitempty,uuid4"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock" validate:"omitempty,min=0"`
	MinStock    int             `json:"min_stock" validate:"omitempty,min=0"`
}

// UpdateProductRequest edición de producto. El stock NO se edita aquí: cambia
// solo a través de movimientos.
type UpdateProductRequest struct {
	Name        string           `json:"name" validate:"omitempty,max=200"`
	Description string           `json:"description" validate:"omitempty,max=2000"`
	CategoryID  string           `json:"category_id" validate:"omitempty,uuid4"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    *int             `json:"min_stock" validate:"omitempty"`
	Status      string           `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	LowStock    bool            `json:"low_stock"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
