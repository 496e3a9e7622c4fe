package repository

import (
	"context"

	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// RubroRepository define el puerto de persistencia para Rubro (DIP).
type RubroRepository interface {
	Create(r *entity.Rubro) error
	GetByID(id string) (*entity.Rubro, error)
	Update(r *entity.Rubro) error
	Delete(id string) error
	ListByBudget(budgetID string) ([]*entity.Rubro, error)
	// CountReferences cuenta recibos y gastos que referencian el rubro.
	// El borrado se bloquea mientras sea > 0 (guard referencial, no cascade).
	CountReferences(ctx context.Context, rubroID string) (int, error)
}
