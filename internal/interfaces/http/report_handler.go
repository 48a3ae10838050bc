package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/report"
)

// ReportHandler genera reportes descargables.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MovementsPDF godoc
// @Summary      Reporte PDF de movimientos
// @Tags         reports
// @Produce      application/pdf
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "Filtrar por tipo (in, out, adjust)"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Success      200  {file}  binary
// @Router       /api/reports/movements [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	pdf, err := h.uc.MovementsPDF(c.Context(), filter)
	if err != nil {
		return internalResponse(c, err)
	}
	filename := "movimientos_" + time.Now().Format("20060102_150405") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
