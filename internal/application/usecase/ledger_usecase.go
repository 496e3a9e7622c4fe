package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// LedgerUseCase libro de gastos e ingresos del módulo de administración.
// El acceso al módulo se gatea por plan en el middleware HTTP; aquí solo se
// verifican pertenencias y se escribe.
type LedgerUseCase struct {
	repo        repository.LedgerRepository
	projectRepo repository.ProjectRepository
	rubroRepo   repository.RubroRepository
	budgetRepo  repository.BudgetRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.LedgerRepository, projectRepo repository.ProjectRepository, rubroRepo repository.RubroRepository, budgetRepo repository.BudgetRepository) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, projectRepo: projectRepo, rubroRepo: rubroRepo, budgetRepo: budgetRepo}
}

// CreateExpense registra un gasto, opcionalmente etiquetado con un rubro para
// la comparación real-vs-presupuesto.
func (uc *LedgerUseCase) CreateExpense(ctx context.Context, organizationID, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := uc.checkProject(organizationID, in.ProjectID); err != nil {
		return nil, err
	}
	if in.RubroID != nil {
		// El rubro debe colgar de un presupuesto de la misma organización.
		if _, err := rubroOwnedBy(uc.rubroRepo, uc.budgetRepo, organizationID, *in.RubroID); err != nil {
			return nil, err
		}
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	e := &entity.Expense{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ProjectID:      in.ProjectID,
		RubroID:        in.RubroID,
		Description:    in.Description,
		Amount:         in.Amount,
		Date:           date,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.CreateExpense(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// CreateIncome registra un ingreso del proyecto.
func (uc *LedgerUseCase) CreateIncome(ctx context.Context, organizationID, userID string, in dto.CreateIncomeRequest) (*dto.IncomeResponse, error) {
	if err := uc.checkProject(organizationID, in.ProjectID); err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	i := &entity.Income{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ProjectID:      in.ProjectID,
		Description:    in.Description,
		Amount:         in.Amount,
		Date:           date,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.CreateIncome(i); err != nil {
		return nil, err
	}
	return toIncomeResponse(i), nil
}

// ListExpenses lista gastos del proyecto con paginación.
func (uc *LedgerUseCase) ListExpenses(ctx context.Context, organizationID, projectID string, limit, offset int) (*dto.ExpenseListResponse, error) {
	if err := uc.checkProject(organizationID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListExpensesByProject(projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListIncomes lista ingresos del proyecto con paginación.
func (uc *LedgerUseCase) ListIncomes(ctx context.Context, organizationID, projectID string, limit, offset int) (*dto.IncomeListResponse, error) {
	if err := uc.checkProject(organizationID, projectID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListIncomesByProject(projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncomeResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIncomeResponse(i))
	}
	return &dto.IncomeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *LedgerUseCase) checkProject(organizationID, projectID string) error {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return err
	}
	if project == nil || project.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	return nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		RubroID:     e.RubroID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func toIncomeResponse(i *entity.Income) *dto.IncomeResponse {
	return &dto.IncomeResponse{
		ID:          i.ID,
		ProjectID:   i.ProjectID,
		Description: i.Description,
		Amount:      i.Amount,
		Date:        i.Date,
		CreatedAt:   i.CreatedAt,
	}
}
