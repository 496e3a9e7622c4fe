package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia para el libro de gastos/ingresos.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CreateExpense persiste un gasto.
func (r *LedgerRepo) CreateExpense(e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, organization_id, project_id, rubro_id, description, amount, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.OrganizationID, e.ProjectID, e.RubroID, e.Description, e.Amount, e.Date, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// CreateIncome persiste un ingreso.
func (r *LedgerRepo) CreateIncome(i *entity.Income) error {
	query := `
		INSERT INTO incomes (id, organization_id, project_id, description, amount, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.OrganizationID, i.ProjectID, i.Description, i.Amount, i.Date, i.CreatedBy, i.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

// ListExpensesByProject lista gastos del proyecto, más recientes primero.
func (r *LedgerRepo) ListExpensesByProject(projectID string, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, organization_id, project_id, rubro_id, description, amount, date, created_by, created_at
		FROM expenses WHERE project_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.ProjectID, &e.RubroID,
			&e.Description, &e.Amount, &e.Date, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListIncomesByProject lista ingresos del proyecto, más recientes primero.
func (r *LedgerRepo) ListIncomesByProject(projectID string, limit, offset int) ([]*entity.Income, error) {
	query := `
		SELECT id, organization_id, project_id, description, amount, date, created_by, created_at
		FROM incomes WHERE project_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Income
	for rows.Next() {
		var i entity.Income
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.ProjectID,
			&i.Description, &i.Amount, &i.Date, &i.CreatedBy, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// ActualSpendByRubro suma gastos y totales de recibos por rubro para el
// proyecto, acotado a la organización. Los registros sin rubro no participan.
func (r *LedgerRepo) ActualSpendByRubro(ctx context.Context, organizationID, projectID string) ([]repository.RubroSpend, error) {
	query := `
		SELECT rubro_id, SUM(amount) AS total FROM (
			SELECT rubro_id, amount FROM expenses
			WHERE organization_id = $1 AND project_id = $2 AND rubro_id IS NOT NULL
			UNION ALL
			SELECT rubro_id, total AS amount FROM receipts
			WHERE organization_id = $1 AND project_id = $2 AND rubro_id IS NOT NULL
		) spend
		GROUP BY rubro_id`
	rows, err := r.q.Query(ctx, query, organizationID, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("actual spend by rubro: %w", err)
	}
	defer rows.Close()
	var list []repository.RubroSpend
	for rows.Next() {
		var s repository.RubroSpend
		if err := rows.Scan(&s.RubroID, &s.Total); err != nil {
			return nil, fmt.Errorf("scan rubro spend: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
