package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto del módulo de administración (solo planes de pago).
type Expense struct {
	ID             string
	OrganizationID string
	ProjectID      string
	RubroID        *string
	Description    string
	Amount         decimal.Decimal
	Date           time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// Income es un ingreso del módulo de administración.
type Income struct {
	ID             string
	OrganizationID string
	ProjectID      string
	Description    string
	Amount         decimal.Decimal
	Date           time.Time
	CreatedBy      string
	CreatedAt      time.Time
}
