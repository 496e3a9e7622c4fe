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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación del puerto ReceiptRepository sobre PostgreSQL.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de persistencia para recibos.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, organization_id, project_id, rubro_id, vendor, date, total, line_items, confidence_score, image_path, created_by, created_at`

// Create persiste un recibo.
func (r *ReceiptRepo) Create(rc *entity.Receipt) error {
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		rc.ID, rc.OrganizationID, rc.ProjectID, rc.RubroID, rc.Vendor, rc.Date,
		rc.Total, rc.LineItems, rc.ConfidenceScore, rc.ImagePath, rc.CreatedBy, rc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un recibo por ID.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	var rc entity.Receipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rc.ID, &rc.OrganizationID, &rc.ProjectID, &rc.RubroID, &rc.Vendor, &rc.Date,
		&rc.Total, &rc.LineItems, &rc.ConfidenceScore, &rc.ImagePath, &rc.CreatedBy, &rc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rc, nil
}

// ListByProject lista recibos de un proyecto, más recientes primero.
func (r *ReceiptRepo) ListByProject(projectID string, limit, offset int) ([]*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts WHERE project_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rc entity.Receipt
		if err := rows.Scan(&rc.ID, &rc.OrganizationID, &rc.ProjectID, &rc.RubroID, &rc.Vendor, &rc.Date,
			&rc.Total, &rc.LineItems, &rc.ConfidenceScore, &rc.ImagePath, &rc.CreatedBy, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rc)
	}
	return list, rows.Err()
}

// CountByProject alimenta el límite de recibos por proyecto del plan.
func (r *ReceiptRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM receipts WHERE project_id = $1`,
		projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return n, nil
}
