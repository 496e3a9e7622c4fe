package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
)

// ReportHandler maneja la comparación real-vs-presupuesto (protegido;
// las rutas llevan además RequireReports).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Comparison godoc
// @Summary      Comparación real-vs-presupuesto por rubro
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ComparisonResponse
// @Failure      403  {object}  dto.ErrorResponse  "Reportes no incluidos en el plan"
// @Failure      404  {object}  dto.ErrorResponse  "Sin presupuesto publicado"
// @Router       /api/projects/{id}/reports/comparison [get]
func (h *ReportHandler) Comparison(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ActualVsBudget(c.Context(), GetOrganizationID(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
