package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/usecase"
)

// DashboardHandler entrega los agregados del tablero principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas del tablero
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return unauthenticated(c, "UNAUTHENTICATED", "credenciales requeridas")
	}
	out, err := h.uc.Stats(c.Context(), p.UserID)
	if err != nil {
		return internalResponse(c, err)
	}
	return c.JSON(out)
}
