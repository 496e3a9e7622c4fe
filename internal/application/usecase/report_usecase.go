package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain"
	budgetdom "github.com/obrasoft/obra-api/internal/domain/budget"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// ReportUseCase comparación real-vs-presupuesto por rubro de un proyecto.
type ReportUseCase struct {
	budgetRepo repository.BudgetRepository
	rubroRepo  repository.RubroRepository
	ledgerRepo repository.LedgerRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	budgetRepo repository.BudgetRepository,
	rubroRepo repository.RubroRepository,
	ledgerRepo repository.LedgerRepository,
) *ReportUseCase {
	return &ReportUseCase{budgetRepo: budgetRepo, rubroRepo: rubroRepo, ledgerRepo: ledgerRepo}
}

// ActualVsBudget compara el presupuesto publicado del proyecto contra el gasto
// real por rubro. Solo participa un presupuesto marcado published; si no hay,
// se responde no encontrado. Por rubro: presupuestado (subtotal de sección si
// existe, si no suma de ítems), costo planificado (ídem con cost), real
// (gastos + recibos del rubro), diferencia y porcentaje consumido.
func (uc *ReportUseCase) ActualVsBudget(ctx context.Context, organizationID, projectID string) (*dto.ComparisonResponse, error) {
	b, err := uc.budgetRepo.GetPublishedByProject(projectID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	v, err := uc.budgetRepo.GetVersion(b.ID, b.CurrentVersion)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVersionNotFound
	}
	snap, err := budgetdom.Parse(v.Snapshot)
	if err != nil {
		return nil, err
	}

	spendRows, err := uc.ledgerRepo.ActualSpendByRubro(ctx, organizationID, projectID)
	if err != nil {
		return nil, err
	}
	spend := make(map[string]decimal.Decimal, len(spendRows))
	for _, row := range spendRows {
		spend[row.RubroID] = row.Total
	}

	rubros, err := uc.rubroRepo.ListByBudget(b.ID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rubros))
	for _, r := range rubros {
		names[r.ID] = r.Name
	}

	// Acumular por rubro en orden de aparición en el snapshot: un rubro puede
	// aparecer en más de una sección.
	type acc struct {
		budgeted decimal.Decimal
		planned  decimal.Decimal
	}
	order := make([]string, 0, len(snap.Sections))
	byRubro := make(map[string]*acc)
	for i := range snap.Sections {
		sec := &snap.Sections[i]
		if sec.RubroID == "" {
			continue
		}
		a, ok := byRubro[sec.RubroID]
		if !ok {
			a = &acc{budgeted: decimal.Zero, planned: decimal.Zero}
			byRubro[sec.RubroID] = a
			order = append(order, sec.RubroID)
		}
		a.budgeted = a.budgeted.Add(sec.BudgetedAmount())
		a.planned = a.planned.Add(sec.PlannedCost())
	}

	rows := make([]dto.RubroComparisonRow, 0, len(order))
	totalBudgeted, totalPlanned, totalActual := decimal.Zero, decimal.Zero, decimal.Zero
	for _, rubroID := range order {
		a := byRubro[rubroID]
		actual, ok := spend[rubroID]
		if !ok {
			actual = decimal.Zero
		}
		rows = append(rows, dto.RubroComparisonRow{
			RubroID:     rubroID,
			RubroName:   names[rubroID],
			Budgeted:    a.budgeted,
			PlannedCost: a.planned,
			Actual:      actual,
			Difference:  a.planned.Sub(actual),
			Percentage:  budgetdom.ConsumedPercentage(actual, a.planned),
		})
		totalBudgeted = totalBudgeted.Add(a.budgeted)
		totalPlanned = totalPlanned.Add(a.planned)
		totalActual = totalActual.Add(actual)
	}

	return &dto.ComparisonResponse{
		ProjectID: projectID,
		BudgetID:  b.ID,
		Rubros:    rows,
		Total: dto.RubroComparisonRow{
			RubroName:   "Total",
			Budgeted:    totalBudgeted,
			PlannedCost: totalPlanned,
			Actual:      totalActual,
			Difference:  totalPlanned.Sub(totalActual),
			Percentage:  budgetdom.ConsumedPercentage(totalActual, totalPlanned),
		},
	}, nil
}
