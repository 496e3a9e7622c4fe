package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
)

// OrganizationHandler maneja consultas de la organización del token (protegido).
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Me godoc
// @Summary      Organización del usuario autenticado
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/me [get]
func (h *OrganizationHandler) Me(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	out, err := h.uc.Get(c.Context(), organizationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
