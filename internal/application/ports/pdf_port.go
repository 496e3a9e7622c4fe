package ports

import (
	budgetdom "github.com/obrasoft/obra-api/internal/domain/budget"
	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// BudgetPDFInput todo lo que necesita el generador para renderizar un
// presupuesto: el árbol ya parseado más los metadatos de despliegue.
type BudgetPDFInput struct {
	Project    *entity.Project
	Budget     *entity.Budget
	Version    *entity.BudgetVersion
	Snapshot   *budgetdom.Snapshot
	RubroNames map[string]string
}

// BudgetPDFGenerator renderiza una versión de presupuesto como documento PDF.
type BudgetPDFGenerator interface {
	GenerateBudget(in BudgetPDFInput) ([]byte, error)
}
