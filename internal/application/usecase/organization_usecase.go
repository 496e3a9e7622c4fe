package usecase

import (
	"context"

	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// OrganizationUseCase consultas sobre la organización del usuario autenticado.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Get devuelve la organización con su plan y estado de suscripción.
func (uc *OrganizationUseCase) Get(ctx context.Context, organizationID string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrganizationResponse(org), nil
}

// ToOrganizationResponse mapea la entidad al DTO de salida.
func ToOrganizationResponse(org *entity.Organization) *dto.OrganizationResponse {
	if org == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:                 org.ID,
		Name:               org.Name,
		Plan:               org.Plan,
		SeatCount:          org.SeatCount,
		BillingCycle:       org.BillingCycle,
		SubscriptionStatus: org.SubscriptionStatus,
		CreatedAt:          org.CreatedAt,
		UpdatedAt:          org.UpdatedAt,
	}
}
