package dto

import "time"

// CreateProjectRequest entrada para crear un proyecto/obra.
type CreateProjectRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Address    string `json:"address" validate:"omitempty,max=300"`
	ClientName string `json:"client_name" validate:"omitempty,max=200"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	ClientName     string    `json:"client_name,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProjectListResponse listado de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
