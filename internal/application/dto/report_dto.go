package dto

import "github.com/shopspring/decimal"

// RubroComparisonRow comparación real-vs-presupuesto de un rubro.
// Percentage = round(100 × real / costo planificado); 0 cuando el costo
// planificado es 0 (ver domain/budget.ConsumedPercentage).
type RubroComparisonRow struct {
	RubroID     string          `json:"rubro_id"`
	RubroName   string          `json:"rubro_name"`
	Budgeted    decimal.Decimal `json:"budgeted"`
	PlannedCost decimal.Decimal `json:"planned_cost"`
	Actual      decimal.Decimal `json:"actual"`
	Difference  decimal.Decimal `json:"difference"`
	Percentage  int64           `json:"percentage"`
}

// ComparisonResponse comparación completa de un proyecto con total general.
type ComparisonResponse struct {
	ProjectID string               `json:"project_id"`
	BudgetID  string               `json:"budget_id"`
	Rubros    []RubroComparisonRow `json:"rubros"`
	Total     RubroComparisonRow   `json:"total"`
}
