package dto

import "time"

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Permissions []string  `json:"permissions,omitempty"` // para pintar la UI
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items  []UserResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CreateUserRequest alta de usuario por un administrador.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	Role     string `json:"role" validate:"required,oneof=VENDEDOR MANAGER ADMIN CEO"`
}

// UpdateUserRequest edición de datos básicos.
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,max=120"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ChangeRoleRequest cambio de rol (requiere users.manage_permissions).
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=VENDEDOR MANAGER ADMIN CEO"`
}
