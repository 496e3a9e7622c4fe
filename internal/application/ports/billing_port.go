package ports

import (
	"context"

	"github.com/obrasoft/obra-api/internal/application/dto"
)

// CheckoutInput parámetros para crear una sesión de pago en la pasarela.
type CheckoutInput struct {
	OrganizationID string
	Plan           string
	Seats          int
	BillingCycle   string
}

// BillingProcessor define el puerto hacia la pasarela de pagos externa.
// El estado local del plan solo se actualiza después de que la llamada
// externa tenga éxito (salvo el caso explícito de asientos pendientes antes
// del checkout, que se revierte si la llamada falla).
type BillingProcessor interface {
	CreateCheckout(ctx context.Context, in CheckoutInput) (checkoutURL string, err error)
	CancelSubscription(ctx context.Context, organizationID string) error
	PauseSubscription(ctx context.Context, organizationID string) error
	ResumeSubscription(ctx context.Context, organizationID string) error
	PaymentHistory(ctx context.Context, organizationID string) ([]dto.PaymentRecord, error)
}
