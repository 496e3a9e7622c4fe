package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// PlanLimitError una denegación del guard de límites de plan. Es una falla de
// autorización con mensaje de upgrade para el usuario, no un "forbidden" genérico.
type PlanLimitError struct {
	Reason string
}

func (e *PlanLimitError) Error() string { return e.Reason }

// ProjectUseCase casos de uso de proyectos/obras. La creación pasa por el
// guard de límites del plan.
type ProjectUseCase struct {
	repo        repository.ProjectRepository
	entitlement *EntitlementService
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, entitlement *EntitlementService) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, entitlement: entitlement}
}

// Create crea un proyecto si el plan de la organización lo permite.
func (uc *ProjectUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	decision, err := uc.entitlement.CheckResource(ctx, organizationID, ResourceProject, "")
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &PlanLimitError{Reason: decision.Reason}
	}
	now := time.Now()
	project := &entity.Project{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Address:        in.Address,
		ClientName:     in.ClientName,
		Status:         entity.ProjectActive,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetByID obtiene un proyecto de la organización. Cross-tenant se reporta
// como no encontrado.
func (uc *ProjectUseCase) GetByID(organizationID, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(project), nil
}

// List lista proyectos de la organización con paginación.
func (uc *ProjectUseCase) List(organizationID string, limit, offset int) (*dto.ProjectListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Address:        p.Address,
		ClientName:     p.ClientName,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
