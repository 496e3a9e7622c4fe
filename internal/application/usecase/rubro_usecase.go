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

// RubroUseCase gestión de rubros (líneas de cuenta) de un presupuesto.
type RubroUseCase struct {
	repo       repository.RubroRepository
	budgetRepo repository.BudgetRepository
}

// NewRubroUseCase construye el caso de uso.
func NewRubroUseCase(repo repository.RubroRepository, budgetRepo repository.BudgetRepository) *RubroUseCase {
	return &RubroUseCase{repo: repo, budgetRepo: budgetRepo}
}

// Create crea un rubro al final del orden del presupuesto.
func (uc *RubroUseCase) Create(ctx context.Context, organizationID string, in dto.CreateRubroRequest) (*dto.RubroResponse, error) {
	if _, err := uc.ownedBudget(in.BudgetID, organizationID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.ListByBudget(in.BudgetID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.Rubro{
		ID:        uuid.New().String(),
		BudgetID:  in.BudgetID,
		Name:      in.Name,
		Color:     in.Color,
		SortOrder: len(existing), // append al final; sin huecos por convención
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	return toRubroResponse(r), nil
}

// Update actualiza nombre y/o color de un rubro.
func (uc *RubroUseCase) Update(ctx context.Context, organizationID, rubroID string, in dto.UpdateRubroRequest) (*dto.RubroResponse, error) {
	r, err := uc.ownedRubro(ctx, rubroID, organizationID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Color != nil {
		r.Color = *in.Color
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(r); err != nil {
		return nil, err
	}
	return toRubroResponse(r), nil
}

// Delete elimina un rubro solo si nada lo referencia: mientras exista algún
// recibo o gasto asociado devuelve ErrRubroEnUso (guard referencial explícito,
// no un cascade de base de datos).
func (uc *RubroUseCase) Delete(ctx context.Context, organizationID, rubroID string) error {
	r, err := uc.ownedRubro(ctx, rubroID, organizationID)
	if err != nil {
		return err
	}
	refs, err := uc.repo.CountReferences(ctx, r.ID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrRubroEnUso
	}
	return uc.repo.Delete(r.ID)
}

// ListByBudget lista los rubros del presupuesto en su orden de despliegue.
func (uc *RubroUseCase) ListByBudget(ctx context.Context, organizationID, budgetID string) ([]dto.RubroResponse, error) {
	if _, err := uc.ownedBudget(budgetID, organizationID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBudget(budgetID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RubroResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRubroResponse(r))
	}
	return items, nil
}

func (uc *RubroUseCase) ownedBudget(budgetID, organizationID string) (*entity.Budget, error) {
	b, err := uc.budgetRepo.GetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *RubroUseCase) ownedRubro(ctx context.Context, rubroID, organizationID string) (*entity.Rubro, error) {
	return rubroOwnedBy(uc.repo, uc.budgetRepo, organizationID, rubroID)
}

// rubroOwnedBy devuelve el rubro solo si su presupuesto padre pertenece a la
// organización. La pertenencia se verifica vía el presupuesto (pre-read
// explícito); cualquier desajuste se enmascara como ErrNotFound. Lo comparten
// todos los caminos que etiquetan con rubro (recibos, gastos).
func rubroOwnedBy(rubroRepo repository.RubroRepository, budgetRepo repository.BudgetRepository, organizationID, rubroID string) (*entity.Rubro, error) {
	r, err := rubroRepo.GetByID(rubroID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	b, err := budgetRepo.GetByID(r.BudgetID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func toRubroResponse(r *entity.Rubro) *dto.RubroResponse {
	if r == nil {
		return nil
	}
	return &dto.RubroResponse{
		ID:        r.ID,
		BudgetID:  r.BudgetID,
		Name:      r.Name,
		Color:     r.Color,
		SortOrder: r.SortOrder,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
