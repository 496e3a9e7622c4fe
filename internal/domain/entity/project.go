package entity

import "time"

// Estados de proyecto.
const (
	ProjectActive   = "active"
	ProjectFinished = "finished"
	ProjectArchived = "archived"
)

// Project representa una obra/proyecto de construcción de una organización.
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	Address        string
	ClientName     string
	Status         string // active, finished, archived
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
