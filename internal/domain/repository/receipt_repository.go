package repository

import (
	"context"

	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para Receipt (DIP).
type ReceiptRepository interface {
	Create(r *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	ListByProject(projectID string, limit, offset int) ([]*entity.Receipt, error)
	// CountByProject alimenta el límite de recibos por proyecto del plan.
	CountByProject(ctx context.Context, projectID string) (int, error)
}
