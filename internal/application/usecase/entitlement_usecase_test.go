package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-api/internal/application/usecase"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/plan"
)

const (
	testOrgID     = "00000000-0000-0000-0000-00000000000a"
	testProjectID = "00000000-0000-0000-0000-00000000000b"
)

func buildEntitlement(org *entity.Organization, projects []*entity.Project, receipts []*entity.Receipt, users []*entity.User) *usecase.EntitlementService {
	var orgs []*entity.Organization
	if org != nil {
		orgs = append(orgs, org)
	}
	return usecase.NewEntitlementService(
		newFakeOrgRepo(orgs...),
		newFakeProjectRepo(projects...),
		newFakeReceiptRepo(receipts...),
		newFakeUserRepo(users...),
	)
}

func orgWithPlan(p string) *entity.Organization {
	return &entity.Organization{ID: testOrgID, Name: "Constructora Andina", Plan: p}
}

func projectsFor(orgID string, n int) []*entity.Project {
	out := make([]*entity.Project, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entity.Project{
			ID:             orgID + "-p" + string(rune('a'+i)),
			OrganizationID: orgID,
			Status:         entity.ProjectActive,
		})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckResource — proyectos
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckResource_FreeSinProyectos_Permite(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, nil, nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceProject, "")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCheckResource_FreeConUnProyecto_Deniega(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), projectsFor(testOrgID, 1), nil, nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceProject, "")
	require.NoError(t, err, "la denegación es una decisión de negocio, no un error")
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "1 proyecto", "la razón debe citar el límite en singular")
	assert.Contains(t, d.Reason, "actualiza tu plan")
}

func TestCheckResource_AdvanceBajoLimite_Permite(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Advance), projectsFor(testOrgID, 9), nil, nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceProject, "")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCheckResource_AdvanceEnLimite_Deniega(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Advance), projectsFor(testOrgID, 10), nil, nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceProject, "")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "10 proyectos")
}

// En enterprise no se cuentan proyectos: ilimitado corta antes del contador.
func TestCheckResource_EnterpriseSiemprePermiteProyectos(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Enterprise), projectsFor(testOrgID, 50), nil, nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceProject, "")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckResource — recibos por proyecto
// ──────────────────────────────────────────────────────────────────────────────

func receiptsFor(projectID string, n int) []*entity.Receipt {
	out := make([]*entity.Receipt, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entity.Receipt{
			ID:             projectID + "-r" + string(rune('a'+i)),
			OrganizationID: testOrgID,
			ProjectID:      projectID,
		})
	}
	return out
}

func TestCheckResource_FreeRecibosEnLimite_Deniega(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, receiptsFor(testProjectID, 10), nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceReceipt, testProjectID)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "10 recibos por proyecto")
}

func TestCheckResource_FreeRecibosBajoLimite_Permite(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, receiptsFor(testProjectID, 9), nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceReceipt, testProjectID)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

// El contador de recibos solo cuenta el proyecto indicado, no toda la organización.
func TestCheckResource_RecibosDeOtroProyectoNoCuentan(t *testing.T) {
	receipts := receiptsFor("otro-proyecto", 10)
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, receipts, nil)

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceReceipt, testProjectID)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckResource — asientos (usuarios activos)
// ──────────────────────────────────────────────────────────────────────────────

func usersFor(orgID string, active, inactive int) []*entity.User {
	var out []*entity.User
	for i := 0; i < active; i++ {
		out = append(out, &entity.User{ID: orgID + "-ua" + string(rune('a'+i)), OrganizationID: orgID, Active: true})
	}
	for i := 0; i < inactive; i++ {
		out = append(out, &entity.User{ID: orgID + "-ui" + string(rune('a'+i)), OrganizationID: orgID, Active: false})
	}
	return out
}

func TestCheckResource_FreeSegundoAsiento_Deniega(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, nil, usersFor(testOrgID, 1, 0))

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "1 asiento")
}

// Los usuarios desactivados liberan su asiento: no participan del conteo.
func TestCheckResource_UsuariosDesactivadosNoCuentan(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, nil, usersFor(testOrgID, 0, 3))

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCheckResource_AdvanceAsientosDinamicos(t *testing.T) {
	seats := 5
	org := orgWithPlan(plan.Advance)
	org.SeatCount = &seats

	svc := buildEntitlement(org, nil, nil, usersFor(testOrgID, 4, 0))
	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "4 activos con 5 asientos comprados debe permitir")

	svc = buildEntitlement(org, nil, nil, usersFor(testOrgID, 5, 0))
	d, err = svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.False(t, d.Allowed, "5 activos con 5 asientos comprados debe denegar")
	assert.Contains(t, d.Reason, "5 asientos")
}

// Advance sin SeatCount asignado (checkout nunca completado) se trata como 1 asiento.
func TestCheckResource_AdvanceSinSeatCount_TechoUno(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Advance), nil, nil, usersFor(testOrgID, 1, 0))

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

// Un SeatCount en 0 (p.ej. un webhook con seats=0) también se trata como 1
// asiento: en el techo dinámico el 0 nunca significa ilimitado.
func TestCheckResource_AdvanceSeatCountCero_TechoUno(t *testing.T) {
	zero := 0
	org := orgWithPlan(plan.Advance)
	org.SeatCount = &zero

	svc := buildEntitlement(org, nil, nil, usersFor(testOrgID, 2, 0))
	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "1 asiento")
}

func TestCheckResource_EnterpriseAsientosIlimitados(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Enterprise), nil, nil, usersFor(testOrgID, 200, 0))

	d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceUser, "")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckResource — reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckResource_ReportesPorPlan(t *testing.T) {
	cases := []struct {
		plan    string
		allowed bool
	}{
		{plan.Free, false},
		{plan.Advance, true},
		{plan.Enterprise, true},
	}
	for _, tc := range cases {
		svc := buildEntitlement(orgWithPlan(tc.plan), nil, nil, nil)
		d, err := svc.CheckResource(context.Background(), testOrgID, usecase.ResourceReports, "")
		require.NoError(t, err, "plan %s", tc.plan)
		assert.Equal(t, tc.allowed, d.Allowed, "plan %s", tc.plan)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests casos borde
// ──────────────────────────────────────────────────────────────────────────────

// Organización inexistente deniega como decisión, no como error: el guard no
// distingue "no existe" de "no permitido" hacia afuera.
func TestCheckResource_OrganizacionInexistente_Deniega(t *testing.T) {
	svc := buildEntitlement(nil, nil, nil, nil)

	d, err := svc.CheckResource(context.Background(), "org-fantasma", usecase.ResourceProject, "")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "organización no encontrada")
}

func TestCheckResource_RecursoDesconocido_Error(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, nil, nil)

	_, err := svc.CheckResource(context.Background(), testOrgID, usecase.Resource("marciano"), "")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CanUseAdministration — gate del módulo de administración
// ──────────────────────────────────────────────────────────────────────────────

func TestCanUseAdministration_FreeDenegadoDePlano(t *testing.T) {
	svc := buildEntitlement(orgWithPlan(plan.Free), nil, nil, nil)

	d, err := svc.CanUseAdministration(context.Background(), testOrgID)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "módulo de administración")
}

func TestCanUseAdministration_AdvanceYEnterprise_Permiten(t *testing.T) {
	for _, p := range []string{plan.Advance, plan.Enterprise} {
		svc := buildEntitlement(orgWithPlan(p), nil, nil, nil)
		d, err := svc.CanUseAdministration(context.Background(), testOrgID)
		require.NoError(t, err, "plan %s", p)
		assert.True(t, d.Allowed, "plan %s", p)
	}
}
