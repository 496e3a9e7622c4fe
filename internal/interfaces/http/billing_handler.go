package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	appbilling "github.com/obrasoft/obra-api/internal/application/billing"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// BillingHandler maneja suscripciones y el webhook de la pasarela.
type BillingHandler struct {
	uc            *appbilling.SubscriptionUseCase
	webhookSecret string
}

// NewBillingHandler construye el handler. webhookSecret autentica los eventos
// entrantes de la pasarela.
func NewBillingHandler(uc *appbilling.SubscriptionUseCase, webhookSecret string) *BillingHandler {
	return &BillingHandler{uc: uc, webhookSecret: webhookSecret}
}

// Checkout godoc
// @Summary      Iniciar checkout de asientos (plan advance)
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Asientos y ciclo"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/checkout [post]
func (h *BillingHandler) Checkout(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Seats < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "seats debe ser al menos 1"})
	}
	if in.BillingCycle != entity.BillingMonthly && in.BillingCycle != entity.BillingYearly {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "billing_cycle debe ser monthly o yearly"})
	}
	out, err := h.uc.Checkout(c.Context(), organizationID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar suscripción (degrada a free)
// @Tags         billing
// @Security     Bearer
// @Success      204  "Cancelada"
// @Router       /api/billing/cancel [post]
func (h *BillingHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), GetOrganizationID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pause godoc
// @Summary      Pausar suscripción
// @Tags         billing
// @Security     Bearer
// @Success      204  "Pausada"
// @Router       /api/billing/pause [post]
func (h *BillingHandler) Pause(c *fiber.Ctx) error {
	if err := h.uc.Pause(c.Context(), GetOrganizationID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resume godoc
// @Summary      Reactivar suscripción pausada
// @Tags         billing
// @Security     Bearer
// @Success      204  "Reactivada"
// @Router       /api/billing/resume [post]
func (h *BillingHandler) Resume(c *fiber.Ctx) error {
	if err := h.uc.Resume(c.Context(), GetOrganizationID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PaymentHistory godoc
// @Summary      Historial de pagos de la organización
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PaymentHistoryResponse
// @Router       /api/billing/payments [get]
func (h *BillingHandler) PaymentHistory(c *fiber.Ctx) error {
	out, err := h.uc.PaymentHistory(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Webhook de la pasarela de pagos (autenticado por secret compartido)
// @Tags         billing
// @Accept       json
// @Param        X-Webhook-Secret  header  string  true  "Secret compartido"
// @Param        body  body  dto.BillingWebhookEvent  true  "Evento"
// @Success      204  "Aplicado"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/billing/webhook [post]
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	secret := c.Get("X-Webhook-Secret")
	if h.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "webhook secret inválido"})
	}
	var ev dto.BillingWebhookEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ev.Type == "" || ev.OrganizationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type y organization_id son requeridos"})
	}
	if err := h.uc.HandleWebhook(c.Context(), ev); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
