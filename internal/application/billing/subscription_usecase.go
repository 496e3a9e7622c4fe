package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/ports"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/plan"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// SubscriptionUseCase orquesta los cambios de plan contra la pasarela externa.
// Regla general: el estado local solo cambia después de que la llamada externa
// tenga éxito. La única escritura previa es la reserva de asientos pendientes
// antes del checkout, que se revierte si la pasarela falla.
type SubscriptionUseCase struct {
	orgRepo   repository.OrganizationRepository
	processor ports.BillingProcessor
	log       zerolog.Logger
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(orgRepo repository.OrganizationRepository, processor ports.BillingProcessor, log zerolog.Logger) *SubscriptionUseCase {
	return &SubscriptionUseCase{orgRepo: orgRepo, processor: processor, log: log}
}

// Checkout inicia la compra de asientos del plan advance: guarda la cantidad
// pedida como pendiente, crea la sesión de pago y devuelve la URL. Si la
// pasarela falla, la reserva pendiente se revierte antes de devolver el error.
func (uc *SubscriptionUseCase) Checkout(ctx context.Context, organizationID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	org, err := uc.getOrg(organizationID)
	if err != nil {
		return nil, err
	}

	seats := in.Seats
	org.PendingSeatCount = &seats
	org.BillingCycle = in.BillingCycle
	org.UpdatedAt = time.Now()
	if err := uc.orgRepo.Update(org); err != nil {
		return nil, err
	}

	url, err := uc.processor.CreateCheckout(ctx, ports.CheckoutInput{
		OrganizationID: organizationID,
		Plan:           plan.Advance,
		Seats:          seats,
		BillingCycle:   in.BillingCycle,
	})
	if err != nil {
		// Revertir la reserva: sin checkout no hay asientos pendientes.
		org.PendingSeatCount = nil
		org.UpdatedAt = time.Now()
		if rbErr := uc.orgRepo.Update(org); rbErr != nil {
			uc.log.Error().Err(rbErr).Str("organization_id", organizationID).
				Msg("no se pudo revertir la reserva de asientos pendientes")
		}
		return nil, err
	}
	return &dto.CheckoutResponse{CheckoutURL: url}, nil
}

// Cancel cancela la suscripción en la pasarela y luego degrada la organización
// a plan free: estado canceled y asientos en cero.
func (uc *SubscriptionUseCase) Cancel(ctx context.Context, organizationID string) error {
	org, err := uc.getOrg(organizationID)
	if err != nil {
		return err
	}
	if err := uc.processor.CancelSubscription(ctx, organizationID); err != nil {
		return err
	}
	org.Plan = plan.Free
	org.SubscriptionStatus = entity.SubscriptionCanceled
	org.SeatCount = nil
	org.PendingSeatCount = nil
	org.UpdatedAt = time.Now()
	return uc.orgRepo.Update(org)
}

// Pause pausa el cobro sin degradar el plan; el acceso se conserva hasta que
// la pasarela reporte otra cosa vía webhook.
func (uc *SubscriptionUseCase) Pause(ctx context.Context, organizationID string) error {
	org, err := uc.getOrg(organizationID)
	if err != nil {
		return err
	}
	if err := uc.processor.PauseSubscription(ctx, organizationID); err != nil {
		return err
	}
	org.SubscriptionStatus = entity.SubscriptionPaused
	org.UpdatedAt = time.Now()
	return uc.orgRepo.Update(org)
}

// Resume reactiva una suscripción pausada.
func (uc *SubscriptionUseCase) Resume(ctx context.Context, organizationID string) error {
	org, err := uc.getOrg(organizationID)
	if err != nil {
		return err
	}
	if err := uc.processor.ResumeSubscription(ctx, organizationID); err != nil {
		return err
	}
	org.SubscriptionStatus = entity.SubscriptionActive
	org.UpdatedAt = time.Now()
	return uc.orgRepo.Update(org)
}

// PaymentHistory lista los pagos registrados en la pasarela para la organización.
func (uc *SubscriptionUseCase) PaymentHistory(ctx context.Context, organizationID string) (*dto.PaymentHistoryResponse, error) {
	if _, err := uc.getOrg(organizationID); err != nil {
		return nil, err
	}
	items, err := uc.processor.PaymentHistory(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentHistoryResponse{Items: items}, nil
}

// HandleWebhook aplica un evento de la pasarela al estado local. Es la única
// vía por la que los asientos pendientes se consolidan como asientos reales.
func (uc *SubscriptionUseCase) HandleWebhook(ctx context.Context, ev dto.BillingWebhookEvent) error {
	org, err := uc.getOrg(ev.OrganizationID)
	if err != nil {
		return err
	}

	switch ev.Type {
	case "subscription.activated":
		if ev.Plan != "" {
			if !plan.IsValid(ev.Plan) {
				return domain.ErrInvalidInput
			}
			org.Plan = ev.Plan
		}
		if ev.Seats != nil {
			org.SeatCount = ev.Seats
		} else if org.PendingSeatCount != nil {
			org.SeatCount = org.PendingSeatCount
		}
		org.PendingSeatCount = nil
		org.SubscriptionStatus = entity.SubscriptionActive
	case "subscription.canceled":
		org.Plan = plan.Free
		org.SubscriptionStatus = entity.SubscriptionCanceled
		org.SeatCount = nil
		org.PendingSeatCount = nil
	case "subscription.paused":
		org.SubscriptionStatus = entity.SubscriptionPaused
	case "subscription.resumed":
		org.SubscriptionStatus = entity.SubscriptionActive
	case "checkout.failed":
		org.PendingSeatCount = nil
	default:
		uc.log.Warn().Str("type", ev.Type).Str("organization_id", ev.OrganizationID).
			Msg("evento de facturación desconocido, ignorado")
		return nil
	}

	org.UpdatedAt = time.Now()
	if err := uc.orgRepo.Update(org); err != nil {
		return err
	}
	uc.log.Info().Str("type", ev.Type).Str("organization_id", ev.OrganizationID).
		Str("plan", org.Plan).Msg("evento de facturación aplicado")
	return nil
}

func (uc *SubscriptionUseCase) getOrg(organizationID string) (*entity.Organization, error) {
	org, err := uc.orgRepo.GetByID(organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}
