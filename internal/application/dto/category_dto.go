package dto

import "time"

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Code        string `json:"code" validate:"required,max=32"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateCategoryRequest edición de categoría.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse representación pública de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Items  []CategoryResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
