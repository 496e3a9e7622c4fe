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

var _ repository.RubroRepository = (*RubroRepo)(nil)

// RubroRepo implementación del puerto RubroRepository sobre PostgreSQL.
type RubroRepo struct {
	q Querier
}

// NewRubroRepository construye el adaptador de persistencia para rubros.
func NewRubroRepository(q Querier) *RubroRepo {
	return &RubroRepo{q: q}
}

// Create persiste un nuevo rubro.
func (r *RubroRepo) Create(rubro *entity.Rubro) error {
	query := `
		INSERT INTO rubros (id, budget_id, name, color, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rubro.ID, rubro.BudgetID, rubro.Name, rubro.Color, rubro.SortOrder, rubro.CreatedAt, rubro.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rubro: %w", err)
	}
	return nil
}

// GetByID obtiene un rubro por ID.
func (r *RubroRepo) GetByID(id string) (*entity.Rubro, error) {
	query := `
		SELECT id, budget_id, name, color, sort_order, created_at, updated_at
		FROM rubros WHERE id = $1`
	var rb entity.Rubro
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rb.ID, &rb.BudgetID, &rb.Name, &rb.Color, &rb.SortOrder, &rb.CreatedAt, &rb.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rubro: %w", err)
	}
	return &rb, nil
}

// Update actualiza nombre y color del rubro.
func (r *RubroRepo) Update(rubro *entity.Rubro) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE rubros SET name = $2, color = $3, updated_at = $4 WHERE id = $1`,
		rubro.ID, rubro.Name, rubro.Color, rubro.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rubro: %w", err)
	}
	return nil
}

// Delete elimina un rubro. El guard referencial va en el use case; aquí no hay cascade.
func (r *RubroRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM rubros WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rubro: %w", err)
	}
	return nil
}

// ListByBudget lista los rubros de un presupuesto en orden de despliegue.
func (r *RubroRepo) ListByBudget(budgetID string) ([]*entity.Rubro, error) {
	query := `
		SELECT id, budget_id, name, color, sort_order, created_at, updated_at
		FROM rubros WHERE budget_id = $1 ORDER BY sort_order ASC`
	rows, err := r.q.Query(context.Background(), query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list rubros: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rubro
	for rows.Next() {
		var rb entity.Rubro
		if err := rows.Scan(&rb.ID, &rb.BudgetID, &rb.Name, &rb.Color, &rb.SortOrder, &rb.CreatedAt, &rb.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rubro: %w", err)
		}
		list = append(list, &rb)
	}
	return list, rows.Err()
}

// CountReferences cuenta recibos y gastos que apuntan al rubro.
func (r *RubroRepo) CountReferences(ctx context.Context, rubroID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM receipts WHERE rubro_id = $1)
		     + (SELECT COUNT(*) FROM expenses WHERE rubro_id = $1)`,
		rubroID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count rubro references: %w", err)
	}
	return n, nil
}
