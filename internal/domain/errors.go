package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserInactive       = errors.New("cuenta deshabilitada")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Errores de validación de API keys. Cada fallo lleva su propia causa para que
// el handler pueda responder el mensaje exacto (una key expirada y una key
// revocada requieren remediaciones distintas).
var (
	ErrAPIKeyFormat      = errors.New("api key con formato inválido")
	ErrAPIKeyNotFound    = errors.New("api key no encontrada")
	ErrAPIKeyDeactivated = errors.New("api key desactivada")
	ErrAPIKeyExpired     = errors.New("api key expirada")
)
