package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// VersionSummary es una versión anotada con el nombre de quien la creó,
// para el historial de versiones.
type VersionSummary struct {
	ID            string
	VersionNumber int
	TotalAmount   decimal.Decimal
	CreatedBy     string
	CreatorName   string
	CreatedAt     time.Time
}

// BudgetRepository define el puerto de persistencia para Budget y sus versiones.
// Las versiones son append-only: no existe Update ni Delete de versión.
type BudgetRepository interface {
	Create(b *entity.Budget) error
	GetByID(id string) (*entity.Budget, error)
	GetByProject(projectID string) (*entity.Budget, error)
	// GetPublishedByProject devuelve el presupuesto del proyecto solo si está
	// en estado published; (nil, nil) en caso contrario.
	GetPublishedByProject(projectID string) (*entity.Budget, error)
	UpdateStatus(id, status string) error
	// UpdateCurrentVersion mueve el puntero current_version del presupuesto.
	UpdateCurrentVersion(budgetID string, version int) error

	CreateVersion(v *entity.BudgetVersion) error
	GetVersion(budgetID string, versionNumber int) (*entity.BudgetVersion, error)
	// ListVersions devuelve todas las versiones ordenadas por número descendente.
	ListVersions(budgetID string) ([]VersionSummary, error)
}
