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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, organization_id, name, address, client_name, status, created_by, created_at, updated_at`

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.OrganizationID, project.Name, project.Address,
		project.ClientName, project.Status, project.CreatedBy, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p entity.Project
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.OrganizationID, &p.Name, &p.Address, &p.ClientName,
		&p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos editables del proyecto.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, address = $3, client_name = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Address, project.ClientName, project.Status, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// ListByOrganization lista proyectos de una organización con paginación.
func (r *ProjectRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Address, &p.ClientName,
			&p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByOrganization alimenta el límite de proyectos del plan.
func (r *ProjectRepo) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE organization_id = $1`,
		organizationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
