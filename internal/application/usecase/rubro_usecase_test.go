package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
)

const testBudgetID = "00000000-0000-0000-0000-00000000000d"

func buildRubroUC(t *testing.T) (*usecase.RubroUseCase, *fakeRubroRepo) {
	t.Helper()
	budgets := newFakeBudgetRepo()
	require.NoError(t, budgets.Create(&entity.Budget{
		ID:             testBudgetID,
		ProjectID:      testProjectID,
		OrganizationID: testOrgID,
		Status:         entity.BudgetDraft,
		CurrentVersion: 1,
	}))
	rubros := newFakeRubroRepo()
	return usecase.NewRubroUseCase(rubros, budgets), rubros
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestRubroCreate_AppendAlFinalDelOrden(t *testing.T) {
	uc, _ := buildRubroUC(t)

	first, err := uc.Create(context.Background(), testOrgID, dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Cimentación", Color: "#aa0000",
	})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testOrgID, dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Acabados",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, first.SortOrder)
	assert.Equal(t, 1, second.SortOrder, "el segundo rubro va al final del orden")
}

func TestRubroCreate_PresupuestoAjeno_NotFound(t *testing.T) {
	uc, _ := buildRubroUC(t)

	_, err := uc.Create(context.Background(), "otra-org", dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Cimentación",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRubroUpdate_SoloCamposPresentes(t *testing.T) {
	uc, _ := buildRubroUC(t)
	created, err := uc.Create(context.Background(), testOrgID, dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Cimentación", Color: "#aa0000",
	})
	require.NoError(t, err)

	nuevo := "Estructura"
	out, err := uc.Update(context.Background(), testOrgID, created.ID, dto.UpdateRubroRequest{Name: &nuevo})
	require.NoError(t, err)

	assert.Equal(t, "Estructura", out.Name)
	assert.Equal(t, "#aa0000", out.Color, "un campo ausente en el request no se toca")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete — guard referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestRubroDelete_SinReferencias_Elimina(t *testing.T) {
	uc, rubros := buildRubroUC(t)
	created, err := uc.Create(context.Background(), testOrgID, dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Cimentación",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), testOrgID, created.ID))

	r, err := rubros.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, r)
}

// Mientras algún recibo o gasto apunte al rubro, el borrado se rechaza.
func TestRubroDelete_ConReferencias_RubroEnUso(t *testing.T) {
	uc, rubros := buildRubroUC(t)
	created, err := uc.Create(context.Background(), testOrgID, dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Cimentación",
	})
	require.NoError(t, err)
	rubros.refs[created.ID] = 3

	err = uc.Delete(context.Background(), testOrgID, created.ID)
	assert.ErrorIs(t, err, domain.ErrRubroEnUso)

	r, err := rubros.GetByID(created.ID)
	require.NoError(t, err)
	assert.NotNil(t, r, "el rubro referenciado debe seguir existiendo")
}

func TestRubroDelete_AjenoEnmascaradoComoNotFound(t *testing.T) {
	uc, _ := buildRubroUC(t)
	created, err := uc.Create(context.Background(), testOrgID, dto.CreateRubroRequest{
		BudgetID: testBudgetID, Name: "Cimentación",
	})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), "otra-org", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
