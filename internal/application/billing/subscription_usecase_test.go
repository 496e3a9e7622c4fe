package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/obrasoft/obra-api/internal/application/billing"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/ports"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/plan"
)

const testOrgID = "00000000-0000-0000-0000-00000000000a"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrgRepo struct {
	orgs map[string]*entity.Organization
}

func newFakeOrgRepo(orgs ...*entity.Organization) *fakeOrgRepo {
	m := make(map[string]*entity.Organization)
	for _, o := range orgs {
		m[o.ID] = o
	}
	return &fakeOrgRepo{orgs: m}
}

func (f *fakeOrgRepo) Create(org *entity.Organization) error {
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) GetByID(id string) (*entity.Organization, error) {
	o := f.orgs[id]
	if o == nil {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrgRepo) Update(org *entity.Organization) error {
	cp := *org
	f.orgs[org.ID] = &cp
	return nil
}

func (f *fakeOrgRepo) List(limit, offset int) ([]*entity.Organization, error) {
	return nil, nil
}

// fakeProcessor registra las llamadas a la pasarela y permite forzar fallos.
type fakeProcessor struct {
	checkoutErr  error
	cancelErr    error
	checkoutSeen *ports.CheckoutInput
}

func (f *fakeProcessor) CreateCheckout(ctx context.Context, in ports.CheckoutInput) (string, error) {
	f.checkoutSeen = &in
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return "https://pay.example.com/session/abc", nil
}

func (f *fakeProcessor) CancelSubscription(ctx context.Context, organizationID string) error {
	return f.cancelErr
}

func (f *fakeProcessor) PauseSubscription(ctx context.Context, organizationID string) error {
	return nil
}

func (f *fakeProcessor) ResumeSubscription(ctx context.Context, organizationID string) error {
	return nil
}

func (f *fakeProcessor) PaymentHistory(ctx context.Context, organizationID string) ([]dto.PaymentRecord, error) {
	return []dto.PaymentRecord{}, nil
}

func buildSubscriptionUC(org *entity.Organization, proc *fakeProcessor) (*appbilling.SubscriptionUseCase, *fakeOrgRepo) {
	repo := newFakeOrgRepo(org)
	return appbilling.NewSubscriptionUseCase(repo, proc, zerolog.Nop()), repo
}

func freeOrg() *entity.Organization {
	return &entity.Organization{ID: testOrgID, Name: "Constructora Andina", Plan: plan.Free}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_ReservaAsientosPendientes(t *testing.T) {
	proc := &fakeProcessor{}
	uc, repo := buildSubscriptionUC(freeOrg(), proc)

	out, err := uc.Checkout(context.Background(), testOrgID, dto.CheckoutRequest{
		Seats: 5, BillingCycle: entity.BillingMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/abc", out.CheckoutURL)

	org, _ := repo.GetByID(testOrgID)
	require.NotNil(t, org.PendingSeatCount)
	assert.Equal(t, 5, *org.PendingSeatCount, "los asientos quedan pendientes hasta el webhook")
	assert.Nil(t, org.SeatCount, "el checkout nunca consolida asientos reales")
	assert.Equal(t, entity.BillingMonthly, org.BillingCycle)

	require.NotNil(t, proc.checkoutSeen)
	assert.Equal(t, plan.Advance, proc.checkoutSeen.Plan)
	assert.Equal(t, 5, proc.checkoutSeen.Seats)
}

// Si la pasarela falla, la reserva pendiente se revierte antes de devolver el error.
func TestCheckout_FalloDePasarela_RevierteReserva(t *testing.T) {
	proc := &fakeProcessor{checkoutErr: errors.New("gateway timeout")}
	uc, repo := buildSubscriptionUC(freeOrg(), proc)

	_, err := uc.Checkout(context.Background(), testOrgID, dto.CheckoutRequest{
		Seats: 5, BillingCycle: entity.BillingMonthly,
	})
	assert.Error(t, err)

	org, _ := repo.GetByID(testOrgID)
	assert.Nil(t, org.PendingSeatCount, "sin checkout no hay asientos pendientes")
}

func TestCheckout_OrganizacionInexistente(t *testing.T) {
	uc, _ := buildSubscriptionUC(freeOrg(), &fakeProcessor{})

	_, err := uc.Checkout(context.Background(), "org-fantasma", dto.CheckoutRequest{
		Seats: 1, BillingCycle: entity.BillingYearly,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_DegradaAFree(t *testing.T) {
	seats := 5
	org := freeOrg()
	org.Plan = plan.Advance
	org.SeatCount = &seats
	org.SubscriptionStatus = entity.SubscriptionActive

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{})
	require.NoError(t, uc.Cancel(context.Background(), testOrgID))

	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, plan.Free, got.Plan)
	assert.Equal(t, entity.SubscriptionCanceled, got.SubscriptionStatus)
	assert.Nil(t, got.SeatCount)
}

// El estado local no cambia si la pasarela rechaza la cancelación.
func TestCancel_FalloExterno_NoTocaEstadoLocal(t *testing.T) {
	org := freeOrg()
	org.Plan = plan.Advance
	org.SubscriptionStatus = entity.SubscriptionActive

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{cancelErr: errors.New("gateway error")})
	assert.Error(t, uc.Cancel(context.Background(), testOrgID))

	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, plan.Advance, got.Plan, "el plan no debe degradarse si la pasarela falló")
	assert.Equal(t, entity.SubscriptionActive, got.SubscriptionStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HandleWebhook — única vía de consolidación de asientos
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_ActivacionConsolidaPendientes(t *testing.T) {
	pending := 5
	org := freeOrg()
	org.PendingSeatCount = &pending

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{})
	err := uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type:           "subscription.activated",
		OrganizationID: testOrgID,
		Plan:           plan.Advance,
	})
	require.NoError(t, err)

	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, plan.Advance, got.Plan)
	require.NotNil(t, got.SeatCount)
	assert.Equal(t, 5, *got.SeatCount, "sin seats explícitos en el evento, consolida los pendientes")
	assert.Nil(t, got.PendingSeatCount)
	assert.Equal(t, entity.SubscriptionActive, got.SubscriptionStatus)
}

// Si el evento trae seats explícitos, estos mandan sobre la reserva pendiente.
func TestWebhook_SeatsExplicitosMandanSobrePendientes(t *testing.T) {
	pending, explicit := 5, 8
	org := freeOrg()
	org.PendingSeatCount = &pending

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{})
	err := uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type:           "subscription.activated",
		OrganizationID: testOrgID,
		Plan:           plan.Advance,
		Seats:          &explicit,
	})
	require.NoError(t, err)

	got, _ := repo.GetByID(testOrgID)
	require.NotNil(t, got.SeatCount)
	assert.Equal(t, 8, *got.SeatCount)
}

func TestWebhook_PlanInvalidoRechazado(t *testing.T) {
	uc, repo := buildSubscriptionUC(freeOrg(), &fakeProcessor{})

	err := uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type:           "subscription.activated",
		OrganizationID: testOrgID,
		Plan:           "premium-2019",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, plan.Free, got.Plan, "un plan desconocido no debe aplicarse")
}

func TestWebhook_CancelacionDegradaAFree(t *testing.T) {
	seats := 5
	org := freeOrg()
	org.Plan = plan.Advance
	org.SeatCount = &seats
	org.SubscriptionStatus = entity.SubscriptionActive

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{})
	err := uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type:           "subscription.canceled",
		OrganizationID: testOrgID,
	})
	require.NoError(t, err)

	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, plan.Free, got.Plan)
	assert.Nil(t, got.SeatCount)
	assert.Equal(t, entity.SubscriptionCanceled, got.SubscriptionStatus)
}

func TestWebhook_CheckoutFallidoLiberaPendientes(t *testing.T) {
	pending := 5
	org := freeOrg()
	org.PendingSeatCount = &pending

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{})
	err := uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type:           "checkout.failed",
		OrganizationID: testOrgID,
	})
	require.NoError(t, err)

	got, _ := repo.GetByID(testOrgID)
	assert.Nil(t, got.PendingSeatCount)
	assert.Equal(t, plan.Free, got.Plan, "un checkout fallido no toca el plan")
}

// Un tipo de evento desconocido se ignora sin error (la pasarela puede agregar
// tipos nuevos antes de que nosotros los soportemos).
func TestWebhook_EventoDesconocidoIgnorado(t *testing.T) {
	uc, repo := buildSubscriptionUC(freeOrg(), &fakeProcessor{})

	err := uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type:           "invoice.finalized",
		OrganizationID: testOrgID,
	})
	assert.NoError(t, err)

	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, plan.Free, got.Plan)
	assert.Empty(t, got.SubscriptionStatus)
}

func TestWebhook_PausaYReanudacion(t *testing.T) {
	org := freeOrg()
	org.Plan = plan.Advance
	org.SubscriptionStatus = entity.SubscriptionActive

	uc, repo := buildSubscriptionUC(org, &fakeProcessor{})

	require.NoError(t, uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type: "subscription.paused", OrganizationID: testOrgID,
	}))
	got, _ := repo.GetByID(testOrgID)
	assert.Equal(t, entity.SubscriptionPaused, got.SubscriptionStatus)
	assert.Equal(t, plan.Advance, got.Plan, "pausar no degrada el plan")

	require.NoError(t, uc.HandleWebhook(context.Background(), dto.BillingWebhookEvent{
		Type: "subscription.resumed", OrganizationID: testOrgID,
	}))
	got, _ = repo.GetByID(testOrgID)
	assert.Equal(t, entity.SubscriptionActive, got.SubscriptionStatus)
}
