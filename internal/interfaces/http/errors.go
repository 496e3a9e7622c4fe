package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
	"github.com/obrasoft/obra-api/internal/domain"
)

// respondError mapea errores de dominio y de plan a respuestas HTTP.
// Cualquier error no reconocido es un 500 genérico.
func respondError(c *fiber.Ctx, err error) error {
	var planErr *usecase.PlanLimitError
	if errors.As(err, &planErr) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PLAN_LIMIT", Message: planErr.Reason})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrVersionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrBudgetExists), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrRubroEnUso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
