package repository

import "github.com/obrasoft/obra-api/internal/domain/entity"

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// Los Get devuelven (nil, nil) si el registro no existe.
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	Update(org *entity.Organization) error
	List(limit, offset int) ([]*entity.Organization, error)
}
