package repository

import (
	"context"

	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	Update(project *entity.Project) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Project, error)
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
}
