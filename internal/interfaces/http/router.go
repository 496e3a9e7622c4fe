package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/auth"
	appbilling "github.com/obrasoft/obra-api/internal/application/billing"
	"github.com/obrasoft/obra-api/internal/application/usecase"
	"github.com/obrasoft/obra-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	ProjectUC      *usecase.ProjectUseCase
	UserUC         *usecase.UserUseCase
	BudgetUC       *usecase.BudgetUseCase
	BudgetPDFUC    *usecase.BudgetPDFUseCase
	RubroUC        *usecase.RubroUseCase
	ReceiptUC      *usecase.ReceiptUseCase
	LedgerUC       *usecase.LedgerUseCase
	ReportUC       *usecase.ReportUseCase
	SubscriptionUC *appbilling.SubscriptionUseCase
	Entitlement    *usecase.EntitlementService

	JWTSecret            string
	BillingWebhookSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, rate limit por IP)
	authGroup := api.Group("/auth", RateLimiter("auth", 20, time.Minute))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhook de facturación (público, autenticado por secret compartido)
	billingHandler := NewBillingHandler(deps.SubscriptionUC, deps.BillingWebhookSecret)
	api.Post("/billing/webhook", billingHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token; rate limit por organización)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RateLimiter("api", 300, time.Minute))

	// Organización del token
	organizationHandler := NewOrganizationHandler(deps.OrganizationUC)
	protected.Get("/organizations/me", organizationHandler.Me)

	// Projects
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)

	// Users (solo admin gestiona asientos)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Post("/:id/deactivate", userHandler.Deactivate)

	// Budgets y versiones
	budgets := protected.Group("/budgets")
	budgetHandler := NewBudgetHandler(deps.BudgetUC, deps.BudgetPDFUC)
	budgets.Post("/", budgetHandler.Create)
	budgets.Get("/:id", budgetHandler.Get)
	budgets.Post("/:id/versions", budgetHandler.PublishVersion)
	budgets.Get("/:id/versions", budgetHandler.ListVersions)
	budgets.Post("/:id/publish", RequireRole(entity.RoleAdmin), budgetHandler.MarkPublished)
	budgets.Get("/:id/pdf", budgetHandler.ExportPDF)

	// Rubros
	rubroHandler := NewRubroHandler(deps.RubroUC)
	budgets.Get("/:id/rubros", rubroHandler.ListByBudget)
	rubros := protected.Group("/rubros")
	rubros.Post("/", rubroHandler.Create)
	rubros.Put("/:id", rubroHandler.Update)
	rubros.Delete("/:id", rubroHandler.Delete)

	// Receipts
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/extract", receiptHandler.Extract)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/:id", receiptHandler.GetByID)
	projects.Get("/:id/receipts", receiptHandler.ListByProject)

	// Ledger (módulo de administración; denegado de plano en plan free)
	requireAdmin := RequireAdministration(deps.Entitlement)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledger := protected.Group("/ledger", requireAdmin)
	ledger.Post("/expenses", ledgerHandler.CreateExpense)
	ledger.Post("/incomes", ledgerHandler.CreateIncome)
	projects.Get("/:id/expenses", requireAdmin, ledgerHandler.ListExpenses)
	projects.Get("/:id/incomes", requireAdmin, ledgerHandler.ListIncomes)

	// Reports (solo planes con reportes habilitados)
	reportHandler := NewReportHandler(deps.ReportUC)
	projects.Get("/:id/reports/comparison", RequireReports(deps.Entitlement), reportHandler.Comparison)

	// Billing (suscripción; solo admin)
	billing := protected.Group("/billing", RequireRole(entity.RoleAdmin))
	billing.Post("/checkout", billingHandler.Checkout)
	billing.Post("/cancel", billingHandler.Cancel)
	billing.Post("/pause", billingHandler.Pause)
	billing.Post("/resume", billingHandler.Resume)
	billing.Get("/payments", billingHandler.PaymentHistory)
}
