package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	ProjectID   string          `json:"project_id" validate:"required,uuid"`
	RubroID     *string         `json:"rubro_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"required,max=300"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
}

// CreateIncomeRequest entrada para registrar un ingreso.
type CreateIncomeRequest struct {
	ProjectID   string          `json:"project_id" validate:"required,uuid"`
	Description string          `json:"description" validate:"required,max=300"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	RubroID     *string         `json:"rubro_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IncomeResponse salida de un ingreso.
type IncomeResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListResponse listado de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// IncomeListResponse listado de ingresos.
type IncomeListResponse struct {
	Items []IncomeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
