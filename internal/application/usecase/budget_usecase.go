package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain"
	budgetdom "github.com/obrasoft/obra-api/internal/domain/budget"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// BudgetTxRunner ejecuta fn con un BudgetRepository atado a una transacción.
// Se usa solo para la creación inicial (presupuesto + versión 1 en un paso).
type BudgetTxRunner interface {
	Run(ctx context.Context, fn func(budgets repository.BudgetRepository) error) error
}

// BudgetUseCase mantiene la secuencia append-only de versiones inmutables de
// presupuesto por proyecto: crear, publicar versiones nuevas y leer la versión
// vigente o una histórica.
type BudgetUseCase struct {
	txRunner    BudgetTxRunner
	budgetRepo  repository.BudgetRepository
	projectRepo repository.ProjectRepository
}

// NewBudgetUseCase construye el caso de uso.
func NewBudgetUseCase(txRunner BudgetTxRunner, budgetRepo repository.BudgetRepository, projectRepo repository.ProjectRepository) *BudgetUseCase {
	return &BudgetUseCase{txRunner: txRunner, budgetRepo: budgetRepo, projectRepo: projectRepo}
}

// Create crea el presupuesto inicial de un proyecto: current_version = 1 y la
// versión 1 con el snapshot dado. Un proyecto tiene a lo sumo un presupuesto.
// Devuelve domain.ErrNotFound si el proyecto no existe o es de otra
// organización, y domain.ErrBudgetExists si ya hay presupuesto.
func (uc *BudgetUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	// Cross-tenant se reporta igual que inexistente para no filtrar existencia.
	if project == nil || project.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.budgetRepo.GetByProject(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrBudgetExists
	}

	snap, err := budgetdom.Parse(in.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	total := snap.TotalAmount()

	now := time.Now()
	b := &entity.Budget{
		ID:             uuid.New().String(),
		ProjectID:      in.ProjectID,
		OrganizationID: organizationID,
		Status:         entity.BudgetDraft,
		CurrentVersion: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	v := &entity.BudgetVersion{
		ID:            uuid.New().String(),
		BudgetID:      b.ID,
		VersionNumber: 1,
		Snapshot:      in.Snapshot,
		TotalAmount:   total,
		CreatedBy:     userID,
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(budgets repository.BudgetRepository) error {
		if err := budgets.Create(b); err != nil {
			return err
		}
		return budgets.CreateVersion(v)
	})
	if err != nil {
		if err == domain.ErrDuplicate {
			// Carrera contra otra creación simultánea: el unique de project_id manda.
			return nil, domain.ErrBudgetExists
		}
		return nil, err
	}

	return uc.toResponse(b, v, true), nil
}

// PublishVersion valida el snapshot, inserta la versión current_version+1 y
// luego mueve el puntero current_version. Son dos escrituras separadas, sin
// transacción: si el bump falla tras el insert queda una versión huérfana por
// delante del puntero. Ventana de inconsistencia conocida y aceptada; cerrar
// la carrera exigiría envolver el par en una transacción o un unique con
// reintento (ver DESIGN.md).
func (uc *BudgetUseCase) PublishVersion(ctx context.Context, organizationID, userID, budgetID string, in dto.PublishVersionRequest) (*dto.PublishVersionResponse, error) {
	b, err := uc.getOwned(budgetID, organizationID)
	if err != nil {
		return nil, err
	}

	snap, err := budgetdom.Parse(in.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	total := snap.TotalAmount()

	newNumber := b.CurrentVersion + 1
	v := &entity.BudgetVersion{
		ID:            uuid.New().String(),
		BudgetID:      b.ID,
		VersionNumber: newNumber,
		Snapshot:      in.Snapshot,
		TotalAmount:   total,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}
	if err := uc.budgetRepo.CreateVersion(v); err != nil {
		return nil, err
	}
	if err := uc.budgetRepo.UpdateCurrentVersion(b.ID, newNumber); err != nil {
		return nil, err
	}

	return &dto.PublishVersionResponse{VersionNumber: newNumber, TotalAmount: total}, nil
}

// Get devuelve el presupuesto con el snapshot de la versión pedida.
// versionNumber 0 resuelve a la versión vigente. Leer una versión histórica
// nunca mueve current_version; la respuesta la marca como solo lectura.
func (uc *BudgetUseCase) Get(ctx context.Context, organizationID, budgetID string, versionNumber int) (*dto.BudgetResponse, error) {
	b, err := uc.getOwned(budgetID, organizationID)
	if err != nil {
		return nil, err
	}

	target := versionNumber
	if target == 0 {
		target = b.CurrentVersion
	}
	v, err := uc.budgetRepo.GetVersion(b.ID, target)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVersionNotFound
	}

	return uc.toResponse(b, v, target == b.CurrentVersion), nil
}

// ListVersions devuelve el historial completo, descendente por número de
// versión, anotado con el nombre de quien creó cada una.
func (uc *BudgetUseCase) ListVersions(ctx context.Context, organizationID, budgetID string) (*dto.VersionListResponse, error) {
	b, err := uc.getOwned(budgetID, organizationID)
	if err != nil {
		return nil, err
	}
	list, err := uc.budgetRepo.ListVersions(b.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VersionSummaryResponse, 0, len(list))
	for _, v := range list {
		items = append(items, dto.VersionSummaryResponse{
			VersionNumber: v.VersionNumber,
			TotalAmount:   v.TotalAmount,
			CreatedBy:     v.CreatedBy,
			CreatorName:   v.CreatorName,
			CreatedAt:     v.CreatedAt,
		})
	}
	return &dto.VersionListResponse{BudgetID: b.ID, Items: items}, nil
}

// MarkPublished marca el presupuesto como publicado. Es el paso de workflow
// explícito (solo admin) que lo habilita para la comparación real-vs-presupuesto;
// no tiene relación con crear versiones.
func (uc *BudgetUseCase) MarkPublished(ctx context.Context, organizationID, budgetID string) error {
	b, err := uc.getOwned(budgetID, organizationID)
	if err != nil {
		return err
	}
	return uc.budgetRepo.UpdateStatus(b.ID, entity.BudgetPublished)
}

func (uc *BudgetUseCase) getOwned(budgetID, organizationID string) (*entity.Budget, error) {
	b, err := uc.budgetRepo.GetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *BudgetUseCase) toResponse(b *entity.Budget, v *entity.BudgetVersion, isCurrent bool) *dto.BudgetResponse {
	return &dto.BudgetResponse{
		ID:             b.ID,
		ProjectID:      b.ProjectID,
		OrganizationID: b.OrganizationID,
		Status:         b.Status,
		CurrentVersion: b.CurrentVersion,
		VersionNumber:  v.VersionNumber,
		IsCurrent:      isCurrent,
		ReadOnly:       !isCurrent,
		Snapshot:       v.Snapshot,
		TotalAmount:    v.TotalAmount,
		CreatedAt:      v.CreatedAt,
	}
}
