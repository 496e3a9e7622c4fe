package dto

import "time"

// OrganizationResponse salida de una organización con su estado de suscripción.
type OrganizationResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Plan               string    `json:"plan"`
	SeatCount          *int      `json:"seat_count,omitempty"`
	BillingCycle       string    `json:"billing_cycle"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
