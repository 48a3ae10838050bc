package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/apikey"
	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/pkg/validation"
)

// APIKeyHandler administra las API keys (protegido con settings.system).
type APIKeyHandler struct {
	svc *apikey.Service
}

// NewAPIKeyHandler construye el handler.
func NewAPIKeyHandler(svc *apikey.Service) *APIKeyHandler {
	return &APIKeyHandler{svc: svc}
}

// Create godoc
// @Summary      Crear API key
// @Tags         apikeys
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAPIKeyRequest  true  "Nombre, permisos y expiración"
// @Success      201   {object}  dto.APIKeyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/apikeys [post]
func (h *APIKeyHandler) Create(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	var in dto.CreateAPIKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	perms := make([]authz.APIKeyPermission, 0, len(in.Permissions))
	for _, raw := range in.Permissions {
		if !authz.ValidAPIKeyPermission(raw) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "permiso desconocido: " + raw})
		}
		perms = append(perms, authz.APIKeyPermission(raw))
	}
	out, err := h.svc.Create(c.Context(), apikey.CreateInput{
		Name:        in.Name,
		Permissions: perms,
		ExpiresAt:   in.ExpiresAt,
		CreatedBy:   p.UserID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalResponse(c, err)
	}
	// Única respuesta con el secreto completo.
	return c.Status(fiber.StatusCreated).JSON(toAPIKeyResponse(out))
}

// List godoc
// @Summary      Listar API keys (secretos enmascarados)
// @Tags         apikeys
// @Produce      json
// @Success      200  {object}  dto.APIKeyListResponse
// @Router       /api/apikeys [get]
func (h *APIKeyHandler) List(c *fiber.Ctx) error {
	keys, err := h.svc.List(c.Context())
	if err != nil {
		return internalResponse(c, err)
	}
	items := make([]dto.APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		items = append(items, *toAPIKeyResponse(k))
	}
	return c.JSON(dto.APIKeyListResponse{Items: items})
}

// Reveal godoc
// @Summary      Revelar el secreto completo de una API key
// @Tags         apikeys
// @Produce      json
// @Param        id   path  string  true  "ID de la API key"
// @Success      200  {object}  dto.APIKeyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/apikeys/{id}/reveal [get]
func (h *APIKeyHandler) Reveal(c *fiber.Ctx) error {
	key, err := h.svc.Reveal(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "api key no encontrada"})
		}
		return internalResponse(c, err)
	}
	return c.JSON(toAPIKeyResponse(key))
}

// Deactivate godoc
// @Summary      Desactivar una API key
// @Tags         apikeys
// @Produce      json
// @Param        id   path  string  true  "ID de la API key"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/apikeys/{id}/deactivate [put]
func (h *APIKeyHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.svc.Deactivate(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "api key no encontrada"})
		}
		return internalResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete godoc
// @Summary      Eliminar una API key
// @Tags         apikeys
// @Produce      json
// @Param        id   path  string  true  "ID de la API key"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/apikeys/{id} [delete]
func (h *APIKeyHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "api key no encontrada"})
		}
		return internalResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func toAPIKeyResponse(k *entity.APIKey) *dto.APIKeyResponse {
	perms := make([]string, len(k.Permissions))
	for i, p := range k.Permissions {
		perms[i] = string(p)
	}
	return &dto.APIKeyResponse{
		ID:          k.ID,
		Name:        k.Name,
		Key:         k.Key,
		Permissions: perms,
		IsActive:    k.IsActive,
		ExpiresAt:   k.ExpiresAt,
		CreatedAt:   k.CreatedAt,
		LastUsed:    k.LastUsed,
		CreatedBy:   k.CreatedBy,
	}
}
