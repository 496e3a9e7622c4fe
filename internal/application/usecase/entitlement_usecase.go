package usecase

import (
	"context"
	"fmt"

	"github.com/obrasoft/obra-api/internal/domain/plan"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// Resource categorías de recurso verificables por el guard de límites.
type Resource string

const (
	ResourceProject Resource = "project"
	ResourceReceipt Resource = "receipt"
	ResourceUser    Resource = "user"
	ResourceReports Resource = "reports"
)

// EntitlementService decide si una acción está permitida bajo los límites del
// plan de la organización. Es de solo lectura: los chequeos por conteo son
// best-effort y dos requests concurrentes pueden pasar ambos el límite; no se
// serializa con transacciones porque el límite es una política comercial, no
// una invariante de datos.
type EntitlementService struct {
	orgRepo     repository.OrganizationRepository
	projectRepo repository.ProjectRepository
	receiptRepo repository.ReceiptRepository
	userRepo    repository.UserRepository
}

// NewEntitlementService construye el guard de límites de plan.
func NewEntitlementService(
	orgRepo repository.OrganizationRepository,
	projectRepo repository.ProjectRepository,
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
) *EntitlementService {
	return &EntitlementService{
		orgRepo:     orgRepo,
		projectRepo: projectRepo,
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
	}
}

// CheckResource verifica si la organización puede crear/usar el recurso dado.
// projectID solo aplica a ResourceReceipt (acota el contador por proyecto).
// Devuelve una Decision para reglas de negocio (incluida organización
// inexistente); el error solo transporta fallos de infraestructura.
func (s *EntitlementService) CheckResource(ctx context.Context, organizationID string, res Resource, projectID string) (plan.Decision, error) {
	org, err := s.orgRepo.GetByID(organizationID)
	if err != nil {
		return plan.Decision{}, fmt.Errorf("entitlement: consultar organización: %w", err)
	}
	if org == nil {
		return plan.Deny("organización no encontrada"), nil
	}
	limits := plan.LimitsFor(org.Plan)

	switch res {
	case ResourceProject:
		if limits.MaxProjects == plan.Unlimited {
			return plan.Allow(), nil
		}
		count, err := s.projectRepo.CountByOrganization(ctx, organizationID)
		if err != nil {
			return plan.Decision{}, fmt.Errorf("entitlement: contar proyectos: %w", err)
		}
		if count >= limits.MaxProjects {
			return plan.Denyf("has alcanzado el límite de %d %s de tu plan; actualiza tu plan para crear más",
				limits.MaxProjects, pluralize(limits.MaxProjects, "proyecto", "proyectos")), nil
		}
		return plan.Allow(), nil

	case ResourceReceipt:
		if limits.MaxReceiptsPerProject == plan.Unlimited {
			return plan.Allow(), nil
		}
		// Sin proyecto no hay contador que acotar: se permite.
		if projectID == "" {
			return plan.Allow(), nil
		}
		count, err := s.receiptRepo.CountByProject(ctx, projectID)
		if err != nil {
			return plan.Decision{}, fmt.Errorf("entitlement: contar recibos: %w", err)
		}
		if count >= limits.MaxReceiptsPerProject {
			return plan.Denyf("has alcanzado el límite de %d recibos por proyecto de tu plan",
				limits.MaxReceiptsPerProject), nil
		}
		return plan.Allow(), nil

	case ResourceUser:
		ceiling := limits.MaxSeats
		if limits.SeatsDynamic {
			// En advance el techo lo fija la pasarela en la organización,
			// no la tabla estática. Sin asignar, o con un valor no positivo,
			// se trata como 1: el 0 aquí nunca significa ilimitado.
			ceiling = 1
			if org.SeatCount != nil && *org.SeatCount > 0 {
				ceiling = *org.SeatCount
			}
		}
		if ceiling == plan.Unlimited {
			return plan.Allow(), nil
		}
		count, err := s.userRepo.CountActiveByOrganization(ctx, organizationID)
		if err != nil {
			return plan.Decision{}, fmt.Errorf("entitlement: contar usuarios: %w", err)
		}
		if count >= ceiling {
			return plan.Denyf("has alcanzado el límite de %d %s de tu plan",
				ceiling, pluralize(ceiling, "asiento", "asientos")), nil
		}
		return plan.Allow(), nil

	case ResourceReports:
		if !limits.ReportsEnabled {
			return plan.Deny("los reportes no están incluidos en tu plan; actualiza a un plan superior"), nil
		}
		return plan.Allow(), nil

	default:
		return plan.Decision{}, fmt.Errorf("entitlement: recurso desconocido %q", res)
	}
}

// CanUseAdministration verifica el acceso al módulo de administración
// (ingresos/gastos): denegado de plano en el plan free, sin mirar conteos.
func (s *EntitlementService) CanUseAdministration(ctx context.Context, organizationID string) (plan.Decision, error) {
	org, err := s.orgRepo.GetByID(organizationID)
	if err != nil {
		return plan.Decision{}, fmt.Errorf("entitlement: consultar organización: %w", err)
	}
	if org == nil {
		return plan.Deny("organización no encontrada"), nil
	}
	if org.Plan == plan.Free {
		return plan.Deny("el módulo de administración no está disponible en el plan free; actualiza tu plan"), nil
	}
	return plan.Allow(), nil
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
