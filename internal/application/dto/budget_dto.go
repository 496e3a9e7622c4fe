package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBudgetRequest entrada para crear el presupuesto inicial de un proyecto.
// El snapshot se valida estructuralmente en el use case (ver domain/budget).
type CreateBudgetRequest struct {
	ProjectID string          `json:"project_id" validate:"required,uuid"`
	Snapshot  json.RawMessage `json:"snapshot" validate:"required"`
}

// PublishVersionRequest entrada para publicar una nueva versión del presupuesto.
type PublishVersionRequest struct {
	Snapshot json.RawMessage `json:"snapshot" validate:"required"`
}

// PublishVersionResponse salida de una publicación: número nuevo y total recalculado.
type PublishVersionResponse struct {
	VersionNumber int             `json:"version_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// BudgetResponse salida de un presupuesto con el snapshot de la versión pedida.
// IsCurrent distingue la versión vigente de una vista histórica de solo lectura:
// cualquier edición debe dirigirse a la versión vigente.
type BudgetResponse struct {
	ID             string          `json:"id"`
	ProjectID      string          `json:"project_id"`
	OrganizationID string          `json:"organization_id"`
	Status         string          `json:"status"`
	CurrentVersion int             `json:"current_version"`
	VersionNumber  int             `json:"version_number"`
	IsCurrent      bool            `json:"is_current"`
	ReadOnly       bool            `json:"read_only"`
	Snapshot       json.RawMessage `json:"snapshot"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// VersionSummaryResponse un renglón del historial de versiones.
type VersionSummaryResponse struct {
	VersionNumber int             `json:"version_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedBy     string          `json:"created_by"`
	CreatorName   string          `json:"creator_name"`
	CreatedAt     time.Time       `json:"created_at"`
}

// VersionListResponse historial completo, descendente por número de versión.
type VersionListResponse struct {
	BudgetID string                   `json:"budget_id"`
	Items    []VersionSummaryResponse `json:"items"`
}
