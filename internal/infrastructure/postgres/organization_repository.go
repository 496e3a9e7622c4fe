package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, plan, seat_count, pending_seat_count, billing_cycle, subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.Plan, org.SeatCount, org.PendingSeatCount,
		org.BillingCycle, org.SubscriptionStatus, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	query := `
		SELECT id, name, plan, seat_count, pending_seat_count, billing_cycle, subscription_status, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o entity.Organization
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Name, &o.Plan, &o.SeatCount, &o.PendingSeatCount,
		&o.BillingCycle, &o.SubscriptionStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// Update actualiza plan, asientos, ciclo y estado de suscripción.
func (r *OrganizationRepo) Update(org *entity.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, plan = $3, seat_count = $4, pending_seat_count = $5, billing_cycle = $6, subscription_status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.Plan, org.SeatCount, org.PendingSeatCount,
		org.BillingCycle, org.SubscriptionStatus, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

// List lista organizaciones con paginación (uso administrativo).
func (r *OrganizationRepo) List(limit, offset int) ([]*entity.Organization, error) {
	query := `
		SELECT id, name, plan, seat_count, pending_seat_count, billing_cycle, subscription_status, created_at, updated_at
		FROM organizations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		var o entity.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Plan, &o.SeatCount, &o.PendingSeatCount,
			&o.BillingCycle, &o.SubscriptionStatus, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
