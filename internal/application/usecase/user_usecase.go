package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase gestión de usuarios de la organización: invitar, listar,
// desactivar. La invitación pasa por el guard de asientos del plan.
type UserUseCase struct {
	repo        repository.UserRepository
	entitlement *EntitlementService
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, entitlement *EntitlementService) *UserUseCase {
	return &UserUseCase{repo: repo, entitlement: entitlement}
}

// Create invita/crea un usuario si quedan asientos en el plan.
func (uc *UserUseCase) Create(ctx context.Context, organizationID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	decision, err := uc.entitlement.CheckResource(ctx, organizationID, ResourceUser, "")
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &PlanLimitError{Reason: decision.Reason}
	}
	existing, err := uc.repo.GetByEmailAndOrganization(in.Email, organizationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Name:           in.Name,
		Role:           in.Role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Deactivate desactiva un usuario: deja de contar como asiento ocupado para
// el guard de límites y no puede volver a iniciar sesión.
func (uc *UserUseCase) Deactivate(ctx context.Context, organizationID, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	user.Active = false
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios de la organización con paginación.
func (uc *UserUseCase) List(organizationID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Active:         u.Active,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
