package usecase

import (
	"context"
	"fmt"

	"github.com/obrasoft/obra-api/internal/application/ports"
	"github.com/obrasoft/obra-api/internal/domain"
	budgetdom "github.com/obrasoft/obra-api/internal/domain/budget"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// BudgetPDFUseCase exporta una versión de presupuesto (vigente o histórica)
// como PDF descargable.
type BudgetPDFUseCase struct {
	budgetRepo  repository.BudgetRepository
	projectRepo repository.ProjectRepository
	rubroRepo   repository.RubroRepository
	generator   ports.BudgetPDFGenerator
}

// NewBudgetPDFUseCase construye el caso de uso.
func NewBudgetPDFUseCase(
	budgetRepo repository.BudgetRepository,
	projectRepo repository.ProjectRepository,
	rubroRepo repository.RubroRepository,
	generator ports.BudgetPDFGenerator,
) *BudgetPDFUseCase {
	return &BudgetPDFUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
		rubroRepo:   rubroRepo,
		generator:   generator,
	}
}

// Export renderiza la versión pedida (0 = vigente) y devuelve el PDF junto con
// un nombre de archivo sugerido.
func (uc *BudgetPDFUseCase) Export(ctx context.Context, organizationID, budgetID string, versionNumber int) ([]byte, string, error) {
	b, err := uc.budgetRepo.GetByID(budgetID)
	if err != nil {
		return nil, "", err
	}
	if b == nil || b.OrganizationID != organizationID {
		return nil, "", domain.ErrNotFound
	}
	project, err := uc.projectRepo.GetByID(b.ProjectID)
	if err != nil {
		return nil, "", err
	}
	if project == nil {
		return nil, "", domain.ErrNotFound
	}

	target := versionNumber
	if target == 0 {
		target = b.CurrentVersion
	}
	v, err := uc.budgetRepo.GetVersion(b.ID, target)
	if err != nil {
		return nil, "", err
	}
	if v == nil {
		return nil, "", domain.ErrVersionNotFound
	}

	snap, err := budgetdom.Parse(v.Snapshot)
	if err != nil {
		return nil, "", err
	}
	rubros, err := uc.rubroRepo.ListByBudget(b.ID)
	if err != nil {
		return nil, "", err
	}
	names := make(map[string]string, len(rubros))
	for _, r := range rubros {
		names[r.ID] = r.Name
	}

	pdf, err := uc.generator.GenerateBudget(ports.BudgetPDFInput{
		Project:    project,
		Budget:     b,
		Version:    v,
		Snapshot:   snap,
		RubroNames: names,
	})
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	filename := fmt.Sprintf("presupuesto_%s_v%d.pdf", project.Name, v.VersionNumber)
	return pdf, filename, nil
}
