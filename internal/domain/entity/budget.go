package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de presupuesto. Solo un presupuesto "published" participa en la
// comparación real-vs-presupuesto; la publicación es un paso explícito,
// distinto de crear versiones.
const (
	BudgetDraft     = "draft"
	BudgetPublished = "published"
)

// Budget es el presupuesto de un proyecto (1:1 — un proyecto tiene a lo sumo uno).
// CurrentVersion es monotónico y siempre apunta a una fila existente de budget_versions.
type Budget struct {
	ID             string
	ProjectID      string
	OrganizationID string
	Status         string // draft, published
	CurrentVersion int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BudgetVersion es un snapshot inmutable del presupuesto. Las filas nunca se
// actualizan ni se borran una vez creadas.
type BudgetVersion struct {
	ID            string
	BudgetID      string
	VersionNumber int
	Snapshot      json.RawMessage // árbol secciones → ítems; ver internal/domain/budget
	TotalAmount   decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
}

// Rubro es una línea de cuenta / categoría de costo del presupuesto. Los
// recibos y gastos lo referencian para la comparación real-vs-presupuesto.
type Rubro struct {
	ID        string
	BudgetID  string
	Name      string
	Color     string
	SortOrder int // asignado en append; sin huecos por convención, no por constraint
	CreatedAt time.Time
	UpdatedAt time.Time
}
