package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
)

// LedgerHandler maneja gastos e ingresos del módulo de administración
// (protegido; las rutas llevan además RequireAdministration).
type LedgerHandler struct {
	uc *usecase.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Datos del gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      403   {object}  dto.ErrorResponse  "Módulo no disponible en el plan"
// @Router       /api/ledger/expenses [post]
func (h *LedgerHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || in.Description == "" || in.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id, description y date son requeridos"})
	}
	out, err := h.uc.CreateExpense(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateIncome godoc
// @Summary      Registrar ingreso
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncomeRequest  true  "Datos del ingreso"
// @Success      201   {object}  dto.IncomeResponse
// @Failure      403   {object}  dto.ErrorResponse  "Módulo no disponible en el plan"
// @Router       /api/ledger/incomes [post]
func (h *LedgerHandler) CreateIncome(c *fiber.Ctx) error {
	var in dto.CreateIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || in.Description == "" || in.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id, description y date son requeridos"})
	}
	out, err := h.uc.CreateIncome(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar gastos de un proyecto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del proyecto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ExpenseListResponse
// @Router       /api/projects/{id}/expenses [get]
func (h *LedgerHandler) ListExpenses(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListExpenses(c.Context(), GetOrganizationID(c), projectID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListIncomes godoc
// @Summary      Listar ingresos de un proyecto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del proyecto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.IncomeListResponse
// @Router       /api/projects/{id}/incomes [get]
func (h *LedgerHandler) ListIncomes(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListIncomes(c.Context(), GetOrganizationID(c), projectID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
