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

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementación del puerto BudgetRepository sobre PostgreSQL
// (usable con pool o tx). Las versiones solo se insertan, nunca se actualizan
// ni se borran.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador de persistencia para presupuestos. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, project_id, organization_id, status, current_version, created_at, updated_at`

// Create persiste el presupuesto. El unique de project_id garantiza a lo sumo
// uno por proyecto.
func (r *BudgetRepo) Create(b *entity.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.ProjectID, b.OrganizationID, b.Status, b.CurrentVersion, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// GetByID obtiene un presupuesto por ID.
func (r *BudgetRepo) GetByID(id string) (*entity.Budget, error) {
	return r.scanOne(`SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
}

// GetByProject obtiene el presupuesto de un proyecto.
func (r *BudgetRepo) GetByProject(projectID string) (*entity.Budget, error) {
	return r.scanOne(`SELECT `+budgetColumns+` FROM budgets WHERE project_id = $1`, projectID)
}

// GetPublishedByProject obtiene el presupuesto solo si está publicado.
func (r *BudgetRepo) GetPublishedByProject(projectID string) (*entity.Budget, error) {
	return r.scanOne(`SELECT `+budgetColumns+` FROM budgets WHERE project_id = $1 AND status = 'published'`, projectID)
}

// UpdateStatus cambia el estado del presupuesto (draft -> published).
func (r *BudgetRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE budgets SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update budget status: %w", err)
	}
	return nil
}

// UpdateCurrentVersion mueve el puntero current_version.
func (r *BudgetRepo) UpdateCurrentVersion(budgetID string, version int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE budgets SET current_version = $2, updated_at = now() WHERE id = $1`,
		budgetID, version,
	)
	if err != nil {
		return fmt.Errorf("update current version: %w", err)
	}
	return nil
}

// CreateVersion inserta una versión inmutable. El unique (budget_id,
// version_number) rechaza publicaciones concurrentes con el mismo número.
func (r *BudgetRepo) CreateVersion(v *entity.BudgetVersion) error {
	query := `
		INSERT INTO budget_versions (id, budget_id, version_number, snapshot, total_amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.BudgetID, v.VersionNumber, v.Snapshot, v.TotalAmount, v.CreatedBy, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert budget version: %w", err)
	}
	return nil
}

// GetVersion obtiene una versión por número dentro de un presupuesto.
func (r *BudgetRepo) GetVersion(budgetID string, versionNumber int) (*entity.BudgetVersion, error) {
	query := `
		SELECT id, budget_id, version_number, snapshot, total_amount, created_by, created_at
		FROM budget_versions WHERE budget_id = $1 AND version_number = $2`
	var v entity.BudgetVersion
	err := r.q.QueryRow(context.Background(), query, budgetID, versionNumber).Scan(
		&v.ID, &v.BudgetID, &v.VersionNumber, &v.Snapshot, &v.TotalAmount, &v.CreatedBy, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget version: %w", err)
	}
	return &v, nil
}

// ListVersions historial descendente por número, anotado con el nombre del
// autor (sin snapshot: el historial no necesita cargar los árboles completos).
func (r *BudgetRepo) ListVersions(budgetID string) ([]repository.VersionSummary, error) {
	query := `
		SELECT v.id, v.version_number, v.total_amount, v.created_by, COALESCE(u.name, ''), v.created_at
		FROM budget_versions v
		LEFT JOIN users u ON u.id = v.created_by
		WHERE v.budget_id = $1
		ORDER BY v.version_number DESC`
	rows, err := r.q.Query(context.Background(), query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list budget versions: %w", err)
	}
	defer rows.Close()
	var list []repository.VersionSummary
	for rows.Next() {
		var s repository.VersionSummary
		if err := rows.Scan(&s.ID, &s.VersionNumber, &s.TotalAmount, &s.CreatedBy, &s.CreatorName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget version: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *BudgetRepo) scanOne(query string, args ...any) (*entity.Budget, error) {
	var b entity.Budget
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.ProjectID, &b.OrganizationID, &b.Status, &b.CurrentVersion, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}
