package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
	"github.com/obrasoft/obra-api/internal/domain/plan"
)

// planChecker es el contrato mínimo que necesita el middleware para verificar
// el plan. Lo implementa *usecase.EntitlementService; el uso de interfaz evita
// el import circular.
type planChecker interface {
	CanUseAdministration(ctx context.Context, organizationID string) (plan.Decision, error)
	CheckResource(ctx context.Context, organizationID string, res usecase.Resource, projectID string) (plan.Decision, error)
}

// RequireAdministration devuelve un middleware que verifica si el plan de la
// organización incluye el módulo de administración (ingresos/gastos). Debe
// usarse DESPUÉS de AuthMiddleware (necesita LocalOrganizationID).
//
// Comportamiento:
//   - 403 Forbidden → plan free; el mensaje invita a actualizar el plan.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Sin organization_id en el contexto responde 401.
func RequireAdministration(checker planChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		organizationID := GetOrganizationID(c)
		if organizationID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "organization_id no encontrado en el token",
			})
		}
		decision, err := checker.CanUseAdministration(c.Context(), organizationID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PLAN_CHECK_FAILED",
				Message: "no se pudo verificar el plan, intente más tarde",
			})
		}
		if !decision.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PLAN_LIMIT",
				Message: decision.Reason,
			})
		}
		return c.Next()
	}
}

// RequireReports verifica que el plan incluya reportes. Mismo contrato de
// respuestas que RequireAdministration.
func RequireReports(checker planChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		organizationID := GetOrganizationID(c)
		if organizationID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "organization_id no encontrado en el token",
			})
		}
		decision, err := checker.CheckResource(c.Context(), organizationID, usecase.ResourceReports, "")
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PLAN_CHECK_FAILED",
				Message: "no se pudo verificar el plan, intente más tarde",
			})
		}
		if !decision.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PLAN_LIMIT",
				Message: decision.Reason,
			})
		}
		return c.Next()
	}
}
