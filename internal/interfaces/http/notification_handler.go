package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/usecase"
	"github.com/dgiraldo/stockia-api/internal/domain"
)

// NotificationHandler maneja las notificaciones del usuario autenticado.
// Todas las operaciones son sobre las notificaciones propias del principal.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones del usuario
// @Tags         notifications
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Param        limit   query  int   false  "Límite"
// @Param        offset  query  int   false  "Offset"
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	items, err := h.uc.ListByUser(c.Context(), p.UserID, c.QueryBool("unread"), page.Limit, page.Offset)
	if err != nil {
		return internalResponse(c, err)
	}
	return c.JSON(dto.NotificationListResponse{Items: items, Limit: page.Limit, Offset: page.Offset})
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	if err := h.uc.MarkRead(c.Context(), p.UserID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return internalResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// MarkAllRead godoc
// @Summary      Marcar todas las notificaciones como leídas
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	if err := h.uc.MarkAllRead(c.Context(), p.UserID); err != nil {
		return internalResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	if err := h.uc.Delete(c.Context(), p.UserID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return internalResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
