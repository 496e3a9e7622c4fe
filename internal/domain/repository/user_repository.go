package repository

import (
	"context"

	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByEmailAndOrganization(email, organizationID string) (*entity.User, error)
	Update(user *entity.User) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error)
	// CountActiveByOrganization cuenta solo usuarios activos: los desactivados
	// no ocupan asiento para el guard de límites.
	CountActiveByOrganization(ctx context.Context, organizationID string) (int, error)
}
