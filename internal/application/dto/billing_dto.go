package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest entrada para iniciar el checkout de asientos del plan advance.
type CheckoutRequest struct {
	Seats        int    `json:"seats" validate:"required,min=1,max=500"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
}

// CheckoutResponse salida con la URL de pago de la pasarela externa.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// PaymentRecord un pago del historial de la pasarela.
type PaymentRecord struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	PaidAt   time.Time       `json:"paid_at"`
}

// PaymentHistoryResponse historial de pagos de la organización.
type PaymentHistoryResponse struct {
	Items []PaymentRecord `json:"items"`
}

// BillingWebhookEvent evento entrante de la pasarela: cambio de plan o de
// estado de suscripción de una organización. El estado resultante lo determina
// el tipo de evento, no un campo aparte.
type BillingWebhookEvent struct {
	Type           string `json:"type"` // subscription.activated, subscription.canceled, ...
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
	Plan           string `json:"plan" validate:"omitempty,oneof=free advance enterprise"`
	Seats          *int   `json:"seats,omitempty"`
}
