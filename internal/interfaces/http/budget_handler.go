package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
)

// BudgetHandler maneja presupuestos y sus versiones (protegido).
type BudgetHandler struct {
	uc    *usecase.BudgetUseCase
	pdfUC *usecase.BudgetPDFUseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *usecase.BudgetUseCase, pdfUC *usecase.BudgetPDFUseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear presupuesto inicial de un proyecto
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBudgetRequest  true  "Proyecto y snapshot"
// @Success      201   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "El proyecto ya tiene presupuesto"
// @Router       /api/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	var in dto.CreateBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || len(in.Snapshot) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id y snapshot son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), organizationID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener presupuesto (versión vigente o histórica)
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del presupuesto"
// @Param        version  query  int     false  "Número de versión (omitir = vigente)"
// @Success      200      {object}  dto.BudgetResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/budgets/{id} [get]
func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	version := c.QueryInt("version", 0)
	if version < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "version debe ser positivo"})
	}
	out, err := h.uc.Get(c.Context(), GetOrganizationID(c), id, version)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PublishVersion godoc
// @Summary      Publicar nueva versión del presupuesto
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del presupuesto"
// @Param        body  body  dto.PublishVersionRequest  true  "Snapshot de la nueva versión"
// @Success      201   {object}  dto.PublishVersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/versions [post]
func (h *BudgetHandler) PublishVersion(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.PublishVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Snapshot) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "snapshot es requerido"})
	}
	out, err := h.uc.PublishVersion(c.Context(), GetOrganizationID(c), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVersions godoc
// @Summary      Historial de versiones del presupuesto
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del presupuesto"
// @Success      200  {object}  dto.VersionListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/versions [get]
func (h *BudgetHandler) ListVersions(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListVersions(c.Context(), GetOrganizationID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPublished godoc
// @Summary      Marcar presupuesto como publicado (solo admin)
// @Tags         budgets
// @Security     Bearer
// @Param        id   path  string  true  "ID del presupuesto"
// @Success      204  "Publicado"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/publish [post]
func (h *BudgetHandler) MarkPublished(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.MarkPublished(c.Context(), GetOrganizationID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Exportar versión del presupuesto como PDF
// @Tags         budgets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id       path   string  true   "ID del presupuesto"
// @Param        version  query  int     false  "Número de versión (omitir = vigente)"
// @Success      200      {file}  binary
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/pdf [get]
func (h *BudgetHandler) ExportPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	version := c.QueryInt("version", 0)
	pdfBytes, filename, err := h.pdfUC.Export(c.Context(), GetOrganizationID(c), id, version)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
