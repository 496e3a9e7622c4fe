package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obrasoft/obra-api/internal/domain/plan"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests LimitsFor — la tabla plan → límites es estática y exhaustiva
// ──────────────────────────────────────────────────────────────────────────────

func TestLimitsFor_Free(t *testing.T) {
	l := plan.LimitsFor(plan.Free)

	assert.Equal(t, 1, l.MaxProjects, "free permite exactamente 1 proyecto")
	assert.Equal(t, 10, l.MaxReceiptsPerProject, "free permite 10 recibos por proyecto")
	assert.Equal(t, 1, l.MaxSeats, "free permite 1 asiento")
	assert.False(t, l.SeatsDynamic)
	assert.False(t, l.ReportsEnabled, "free no incluye reportes")
}

func TestLimitsFor_Advance(t *testing.T) {
	l := plan.LimitsFor(plan.Advance)

	assert.Equal(t, 10, l.MaxProjects)
	assert.Equal(t, 100, l.MaxReceiptsPerProject)
	assert.True(t, l.SeatsDynamic, "en advance el techo de asientos lo fija la pasarela")
	assert.True(t, l.ReportsEnabled)
}

func TestLimitsFor_Enterprise_TodoIlimitado(t *testing.T) {
	l := plan.LimitsFor(plan.Enterprise)

	assert.Equal(t, plan.Unlimited, l.MaxProjects)
	assert.Equal(t, plan.Unlimited, l.MaxReceiptsPerProject)
	assert.Equal(t, plan.Unlimited, l.MaxSeats)
	assert.False(t, l.SeatsDynamic)
	assert.True(t, l.ReportsEnabled)
}

// Un plan desconocido (dato corrupto o migración vieja) degrada a los límites
// de free: nunca debe abrir acceso de más.
func TestLimitsFor_PlanDesconocido_DegradaAFree(t *testing.T) {
	assert.Equal(t, plan.LimitsFor(plan.Free), plan.LimitsFor("premium-2019"))
	assert.Equal(t, plan.LimitsFor(plan.Free), plan.LimitsFor(""))
}

func TestIsValid(t *testing.T) {
	assert.True(t, plan.IsValid(plan.Free))
	assert.True(t, plan.IsValid(plan.Advance))
	assert.True(t, plan.IsValid(plan.Enterprise))
	assert.False(t, plan.IsValid("premium"))
	assert.False(t, plan.IsValid(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Decision
// ──────────────────────────────────────────────────────────────────────────────

func TestDecision_Allow(t *testing.T) {
	d := plan.Allow()
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Reason)
}

func TestDecision_Deny_ConservaRazon(t *testing.T) {
	d := plan.Deny("límite alcanzado")
	assert.False(t, d.Allowed)
	assert.Equal(t, "límite alcanzado", d.Reason)
}

func TestDecision_Denyf_Formatea(t *testing.T) {
	d := plan.Denyf("límite de %d proyectos", 1)
	assert.False(t, d.Allowed)
	assert.Equal(t, "límite de 1 proyectos", d.Reason)
}
