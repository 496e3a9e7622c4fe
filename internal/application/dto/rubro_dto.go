package dto

import "time"

// CreateRubroRequest entrada para crear un rubro (línea de cuenta).
type CreateRubroRequest struct {
	BudgetID string `json:"budget_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateRubroRequest entrada para actualizar nombre/color de un rubro.
type UpdateRubroRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=120"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// RubroResponse salida de un rubro.
type RubroResponse struct {
	ID        string    `json:"id"`
	BudgetID  string    `json:"budget_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
