package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// RubroSpend es el gasto real acumulado de un rubro: suma de gastos más suma
// de totales de recibos etiquetados con ese rubro.
type RubroSpend struct {
	RubroID string
	Total   decimal.Decimal
}

// LedgerRepository define el puerto para el libro de gastos/ingresos del
// módulo de administración, más la consulta agregada para la comparación
// real-vs-presupuesto.
type LedgerRepository interface {
	CreateExpense(e *entity.Expense) error
	CreateIncome(i *entity.Income) error
	ListExpensesByProject(projectID string, limit, offset int) ([]*entity.Expense, error)
	ListIncomesByProject(projectID string, limit, offset int) ([]*entity.Income, error)
	// ActualSpendByRubro agrupa por rubro la suma de expenses.amount y
	// receipts.total del proyecto, siempre acotado a la organización.
	ActualSpendByRubro(ctx context.Context, organizationID, projectID string) ([]RubroSpend, error)
}
