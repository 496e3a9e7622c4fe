package entity

import "time"

// Estados de suscripción (deben coincidir con el CHECK de la tabla organizations).
const (
	SubscriptionActive   = "active"
	SubscriptionPaused   = "paused"
	SubscriptionCanceled = "canceled"
	SubscriptionPending  = "pending"
)

// Ciclos de facturación.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// Organization representa un tenant del sistema. Toda la data se particiona por OrganizationID.
type Organization struct {
	ID                 string
	Name               string
	Plan               string // ver internal/domain/plan
	SeatCount          *int   // solo significativo en plan advance; lo fija la pasarela de pagos
	PendingSeatCount   *int   // asientos reservados antes de redirigir al checkout; se revierte si falla
	BillingCycle       string // monthly, yearly
	SubscriptionStatus string // active, paused, canceled, pending
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
