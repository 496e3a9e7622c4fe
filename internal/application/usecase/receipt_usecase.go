package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/ports"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// signedURLTTL vigencia de las URLs firmadas de imágenes de recibos.
const signedURLTTL = time.Hour

// extractTimeout tope para la llamada al modelo de extracción.
const extractTimeout = 30 * time.Second

// ReceiptUseCase captura de recibos: subir la imagen, extraer campos con IA y
// registrar el recibo (limitado por el plan, por proyecto).
type ReceiptUseCase struct {
	repo        repository.ReceiptRepository
	projectRepo repository.ProjectRepository
	rubroRepo   repository.RubroRepository
	budgetRepo  repository.BudgetRepository
	entitlement *EntitlementService
	extractor   ports.ReceiptExtractor
	storage     ports.FileStorage
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	repo repository.ReceiptRepository,
	projectRepo repository.ProjectRepository,
	rubroRepo repository.RubroRepository,
	budgetRepo repository.BudgetRepository,
	entitlement *EntitlementService,
	extractor ports.ReceiptExtractor,
	storage ports.FileStorage,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		repo:        repo,
		projectRepo: projectRepo,
		rubroRepo:   rubroRepo,
		budgetRepo:  budgetRepo,
		entitlement: entitlement,
		extractor:   extractor,
		storage:     storage,
	}
}

// Extract sube la imagen al bucket y pide al modelo los campos del recibo.
// La imagen queda guardada aunque el usuario luego no confirme el registro.
func (uc *ReceiptUseCase) Extract(ctx context.Context, organizationID string, image []byte, mediaType, filename string) (*dto.ExtractReceiptResponse, error) {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("receipts/%s/%s%s", organizationID, uuid.New().String(), ext)
	if err := uc.storage.Upload(ctx, key, bytes.NewReader(image), mediaType); err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}

	extractCtx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()
	extraction, err := uc.extractor.ExtractReceipt(extractCtx, image, mediaType)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractReceiptResponse{ImagePath: key, Extraction: *extraction}, nil
}

// Create registra un recibo ya revisado. Verifica el límite de recibos por
// proyecto del plan y la pertenencia del proyecto y del rubro (pre-reads
// explícitos antes de escribir).
func (uc *ReceiptUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	decision, err := uc.entitlement.CheckResource(ctx, organizationID, ResourceReceipt, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &PlanLimitError{Reason: decision.Reason}
	}

	if in.RubroID != nil {
		// El rubro debe colgar de un presupuesto de la misma organización.
		if _, err := rubroOwnedBy(uc.rubroRepo, uc.budgetRepo, organizationID, *in.RubroID); err != nil {
			return nil, err
		}
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}

	r := &entity.Receipt{
		ID:              uuid.New().String(),
		OrganizationID:  organizationID,
		ProjectID:       in.ProjectID,
		RubroID:         in.RubroID,
		Vendor:          in.Vendor,
		Date:            date,
		Total:           in.Total,
		LineItems:       in.LineItems,
		ConfidenceScore: in.ConfidenceScore,
		ImagePath:       in.ImagePath,
		CreatedBy:       userID,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, r, false), nil
}

// GetByID obtiene un recibo con URL firmada de 1 hora para la imagen.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ReceiptResponse, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, r, true), nil
}

// ListByProject lista recibos de un proyecto (sin URLs firmadas; pedir el
// detalle para obtener la imagen).
func (uc *ReceiptUseCase) ListByProject(ctx context.Context, organizationID, projectID string, limit, offset int) (*dto.ReceiptListResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByProject(projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *uc.toResponse(ctx, r, false))
	}
	return &dto.ReceiptListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ReceiptUseCase) toResponse(ctx context.Context, r *entity.Receipt, withURL bool) *dto.ReceiptResponse {
	resp := &dto.ReceiptResponse{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		RubroID:         r.RubroID,
		Vendor:          r.Vendor,
		Date:            r.Date,
		Total:           r.Total,
		LineItems:       r.LineItems,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
	}
	if withURL && r.ImagePath != "" {
		// Si la firma falla se devuelve el recibo sin URL; el cliente puede reintentar.
		if url, err := uc.storage.SignedURL(ctx, r.ImagePath, signedURLTTL); err == nil {
			resp.ImageURL = url
		}
	}
	return resp
}
