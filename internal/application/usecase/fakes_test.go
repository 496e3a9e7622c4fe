package usecase_test

import (
	"context"

	"github.com/obrasoft/obra-api/internal/application/usecase"
	"github.com/obrasoft/obra-api/internal/domain"
	"github.com/obrasoft/obra-api/internal/domain/entity"
	"github.com/obrasoft/obra-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Solo implementan lo que
// los use cases ejercitan; el resto devuelve valores neutros.

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
	return f.orgs[id], nil
}

func (f *fakeOrgRepo) Update(org *entity.Organization) error {
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) List(limit, offset int) ([]*entity.Organization, error) {
	return nil, nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo(projects ...*entity.Project) *fakeProjectRepo {
	m := make(map[string]*entity.Project)
	for _, p := range projects {
		m[p.ID] = p
	}
	return &fakeProjectRepo{projects: m}
}

func (f *fakeProjectRepo) Create(p *entity.Project) error {
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	return f.projects[id], nil
}

func (f *fakeProjectRepo) Update(p *entity.Project) error {
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range f.projects {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	n := 0
	for _, p := range f.projects {
		if p.OrganizationID == organizationID {
			n++
		}
	}
	return n, nil
}

type fakeReceiptRepo struct {
	receipts map[string]*entity.Receipt
}

func newFakeReceiptRepo(receipts ...*entity.Receipt) *fakeReceiptRepo {
	m := make(map[string]*entity.Receipt)
	for _, r := range receipts {
		m[r.ID] = r
	}
	return &fakeReceiptRepo{receipts: m}
}

func (f *fakeReceiptRepo) Create(r *entity.Receipt) error {
	f.receipts[r.ID] = r
	return nil
}

func (f *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	return f.receipts[id], nil
}

func (f *fakeReceiptRepo) ListByProject(projectID string, limit, offset int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, r := range f.receipts {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	n := 0
	for _, r := range f.receipts {
		if r.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmailAndOrganization(email, organizationID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.OrganizationID == organizationID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.OrganizationID == organizationID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountActiveByOrganization(ctx context.Context, organizationID string) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.OrganizationID == organizationID && u.Active {
			n++
		}
	}
	return n, nil
}

type fakeBudgetRepo struct {
	budgets  map[string]*entity.Budget
	versions map[string]map[int]*entity.BudgetVersion
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{
		budgets:  make(map[string]*entity.Budget),
		versions: make(map[string]map[int]*entity.BudgetVersion),
	}
}

func (f *fakeBudgetRepo) Create(b *entity.Budget) error {
	for _, existing := range f.budgets {
		if existing.ProjectID == b.ProjectID {
			return domain.ErrDuplicate
		}
	}
	cp := *b
	f.budgets[b.ID] = &cp
	return nil
}

func (f *fakeBudgetRepo) GetByID(id string) (*entity.Budget, error) {
	b := f.budgets[id]
	if b == nil {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBudgetRepo) GetByProject(projectID string) (*entity.Budget, error) {
	for _, b := range f.budgets {
		if b.ProjectID == projectID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBudgetRepo) GetPublishedByProject(projectID string) (*entity.Budget, error) {
	for _, b := range f.budgets {
		if b.ProjectID == projectID && b.Status == entity.BudgetPublished {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBudgetRepo) UpdateStatus(id, status string) error {
	b := f.budgets[id]
	if b == nil {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBudgetRepo) UpdateCurrentVersion(budgetID string, version int) error {
	b := f.budgets[budgetID]
	if b == nil {
		return domain.ErrNotFound
	}
	b.CurrentVersion = version
	return nil
}

func (f *fakeBudgetRepo) CreateVersion(v *entity.BudgetVersion) error {
	vs := f.versions[v.BudgetID]
	if vs == nil {
		vs = make(map[int]*entity.BudgetVersion)
		f.versions[v.BudgetID] = vs
	}
	if _, exists := vs[v.VersionNumber]; exists {
		return domain.ErrDuplicate
	}
	cp := *v
	vs[v.VersionNumber] = &cp
	return nil
}

func (f *fakeBudgetRepo) GetVersion(budgetID string, versionNumber int) (*entity.BudgetVersion, error) {
	v := f.versions[budgetID][versionNumber]
	if v == nil {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (f *fakeBudgetRepo) ListVersions(budgetID string) ([]repository.VersionSummary, error) {
	var out []repository.VersionSummary
	vs := f.versions[budgetID]
	// descendente por número de versión
	for n := len(vs); n >= 1; n-- {
		if v, ok := vs[n]; ok {
			out = append(out, repository.VersionSummary{
				ID:            v.ID,
				VersionNumber: v.VersionNumber,
				TotalAmount:   v.TotalAmount,
				CreatedBy:     v.CreatedBy,
				CreatedAt:     v.CreatedAt,
			})
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente con el repo dado (sin tx real).
type fakeTxRunner struct {
	repo repository.BudgetRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.BudgetRepository) error) error {
	return fn(f.repo)
}

var _ usecase.BudgetTxRunner = (*fakeTxRunner)(nil)

type fakeLedgerRepo struct {
	expenses []*entity.Expense
	incomes  []*entity.Income
	spend    []repository.RubroSpend
}

func (f *fakeLedgerRepo) CreateExpense(e *entity.Expense) error {
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeLedgerRepo) CreateIncome(i *entity.Income) error {
	f.incomes = append(f.incomes, i)
	return nil
}

func (f *fakeLedgerRepo) ListExpensesByProject(projectID string, limit, offset int) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range f.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListIncomesByProject(projectID string, limit, offset int) ([]*entity.Income, error) {
	var out []*entity.Income
	for _, i := range f.incomes {
		if i.ProjectID == projectID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ActualSpendByRubro(ctx context.Context, organizationID, projectID string) ([]repository.RubroSpend, error) {
	return f.spend, nil
}

type fakeRubroRepo struct {
	rubros map[string]*entity.Rubro
	refs   map[string]int
}

func newFakeRubroRepo(rubros ...*entity.Rubro) *fakeRubroRepo {
	m := make(map[string]*entity.Rubro)
	for _, r := range rubros {
		m[r.ID] = r
	}
	return &fakeRubroRepo{rubros: m, refs: make(map[string]int)}
}

func (f *fakeRubroRepo) Create(r *entity.Rubro) error {
	f.rubros[r.ID] = r
	return nil
}

func (f *fakeRubroRepo) GetByID(id string) (*entity.Rubro, error) {
	return f.rubros[id], nil
}

func (f *fakeRubroRepo) Update(r *entity.Rubro) error {
	f.rubros[r.ID] = r
	return nil
}

func (f *fakeRubroRepo) Delete(id string) error {
	delete(f.rubros, id)
	return nil
}

func (f *fakeRubroRepo) ListByBudget(budgetID string) ([]*entity.Rubro, error) {
	var out []*entity.Rubro
	for _, r := range f.rubros {
		if r.BudgetID == budgetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRubroRepo) CountReferences(ctx context.Context, rubroID string) (int, error) {
	return f.refs[rubroID], nil
}
