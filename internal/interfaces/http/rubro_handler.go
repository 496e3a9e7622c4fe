package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
)

// RubroHandler maneja rubros (líneas de cuenta) de presupuestos (protegido).
type RubroHandler struct {
	uc *usecase.RubroUseCase
}

// NewRubroHandler construye el handler.
func NewRubroHandler(uc *usecase.RubroUseCase) *RubroHandler {
	return &RubroHandler{uc: uc}
}

// Create godoc
// @Summary      Crear rubro
// @Tags         rubros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRubroRequest  true  "Datos del rubro"
// @Success      201   {object}  dto.RubroResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rubros [post]
func (h *RubroHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	var in dto.CreateRubroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BudgetID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "budget_id y name son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), organizationID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre/color de un rubro
// @Tags         rubros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del rubro"
// @Param        body  body  dto.UpdateRubroRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RubroResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rubros/{id} [put]
func (h *RubroHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateRubroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetOrganizationID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar rubro (solo si nada lo referencia)
// @Tags         rubros
// @Security     Bearer
// @Param        id   path  string  true  "ID del rubro"
// @Success      204  "Eliminado"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "El rubro tiene recibos o gastos asociados"
// @Router       /api/rubros/{id} [delete]
func (h *RubroHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByBudget godoc
// @Summary      Listar rubros de un presupuesto
// @Tags         rubros
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del presupuesto"
// @Success      200  {array}  dto.RubroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/rubros [get]
func (h *RubroHandler) ListByBudget(c *fiber.Ctx) error {
	budgetID := c.Params("id")
	if budgetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListByBudget(c.Context(), GetOrganizationID(c), budgetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
