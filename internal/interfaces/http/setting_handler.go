package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/usecase"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/pkg/validation"
)

// SettingHandler maneja la configuración de la aplicación. Las claves de la
// categoría "system" exigen settings.system además de settings.edit; como la
// categoría depende de la clave, ese chequeo vive aquí y no en el router.
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// List godoc
// @Summary      Listar configuración
// @Tags         settings
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría (general, system)"
// @Success      200  {array}  dto.SettingResponse
// @Router       /api/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), c.Query("category"))
	if err != nil {
		return internalResponse(c, err)
	}
	return c.JSON(items)
}

// Get godoc
// @Summary      Obtener una clave de configuración
// @Tags         settings
// @Produce      json
// @Param        key  path  string  true  "Clave"
// @Success      200  {object}  dto.SettingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("key"))
	if err != nil {
		return internalResponse(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clave no encontrada"})
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar una clave de configuración
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key   path  string                    true  "Clave"
// @Param        body  body  dto.UpsertSettingRequest  true  "Valor y categoría"
// @Success      200   {object}  dto.SettingResponse
// @Failure      403   {object}  dto.ForbiddenResponse
// @Router       /api/settings/{key} [put]
func (h *SettingHandler) Upsert(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	var in dto.UpsertSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	key := c.Params("key")
	if status, resp := h.checkSystemKey(c, p, key, in.Category); resp != nil {
		return c.Status(status).JSON(resp)
	}
	out, err := h.uc.Upsert(c.Context(), p.UserID, key, in)
	if err != nil {
		return internalResponse(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una clave de configuración
// @Tags         settings
// @Produce      json
// @Param        key  path  string  true  "Clave"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  dto.ForbiddenResponse
// @Router       /api/settings/{key} [delete]
func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	key := c.Params("key")
	if status, resp := h.checkSystemKey(c, p, key, ""); resp != nil {
		return c.Status(status).JSON(resp)
	}
	if err := h.uc.Delete(c.Context(), key); err != nil {
		return internalResponse(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// checkSystemKey exige settings.system cuando la clave pertenece (o pasaría a
// pertenecer) a la categoría system. Devuelve la respuesta de denegación o nil.
func (h *SettingHandler) checkSystemKey(c *fiber.Ctx, p *authz.Principal, key, requestedCategory string) (int, *dto.ForbiddenResponse) {
	isSystem := requestedCategory == "system"
	if !isSystem {
		existing, err := h.uc.IsSystem(c.Context(), key)
		if err != nil {
			return fiber.StatusInternalServerError, &dto.ForbiddenResponse{Code: "INTERNAL", Message: "error interno"}
		}
		isSystem = existing
	}
	if !isSystem || p.Can(authz.PermSettingsSystem) {
		return 0, nil
	}
	resp := &dto.ForbiddenResponse{
		Code:               "FORBIDDEN",
		Message:            "la clave pertenece a la configuración del sistema",
		RequiredPermission: string(authz.PermSettingsSystem),
	}
	switch p.Method {
	case authz.MethodAPIKey:
		resp.KeyPermissions = make([]string, len(p.KeyPermissions))
		for i, kp := range p.KeyPermissions {
			resp.KeyPermissions[i] = string(kp)
		}
	default:
		resp.Role = string(p.Role)
	}
	return fiber.StatusForbidden, resp
}
