package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleArchitect  = "architect"
)

// User representa un usuario del sistema (pertenece a una Organization).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Name           string
	Role           string // admin, supervisor, architect
	Active         bool   // false = desactivado; excluido del conteo de asientos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
