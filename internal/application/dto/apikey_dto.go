package dto

import "time"

// CreateAPIKeyRequest alta de una API key.
type CreateAPIKeyRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Permissions []string   `json:"permissions" validate:"required,min=1,dive,required"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// APIKeyResponse representación de una API key. Key viene enmascarada en
// listados; el secreto completo solo se entrega al crear o en el reveal.
type APIKeyResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Key         string     `json:"key"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	CreatedBy   string     `json:"created_by"`
}

// APIKeyListResponse listado de API keys (enmascaradas).
type APIKeyListResponse struct {
	Items []APIKeyResponse `json:"items"`
}
