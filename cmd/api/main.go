package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/obrasoft/obra-api/internal/application/auth"
	appbilling "github.com/obrasoft/obra-api/internal/application/billing"
	"github.com/obrasoft/obra-api/internal/application/usecase"
	infraai "github.com/obrasoft/obra-api/internal/infrastructure/ai"
	infrabilling "github.com/obrasoft/obra-api/internal/infrastructure/billing"
	infrapdf "github.com/obrasoft/obra-api/internal/infrastructure/pdf"
	"github.com/obrasoft/obra-api/internal/infrastructure/postgres"
	infrastorage "github.com/obrasoft/obra-api/internal/infrastructure/storage"
	httpRouter "github.com/obrasoft/obra-api/internal/interfaces/http"
	"github.com/obrasoft/obra-api/pkg/config"
	"github.com/obrasoft/obra-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	rubroRepo := postgres.NewRubroRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	entitlement := usecase.NewEntitlementService(orgRepo, projectRepo, receiptRepo, userRepo)

	storageSvc, err := infrastorage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento S3")
	}
	extractor := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	billingProcessor := infrabilling.NewHTTPProcessor(cfg.Billing.BaseURL, cfg.Billing.APIKey)
	pdfGenerator := infrapdf.NewMarotoBudgetGenerator()

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	organizationUC := usecase.NewOrganizationUseCase(orgRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, entitlement)
	userUC := usecase.NewUserUseCase(userRepo, entitlement)
	budgetUC := usecase.NewBudgetUseCase(txRunner, budgetRepo, projectRepo)
	budgetPDFUC := usecase.NewBudgetPDFUseCase(budgetRepo, projectRepo, rubroRepo, pdfGenerator)
	rubroUC := usecase.NewRubroUseCase(rubroRepo, budgetRepo)
	receiptUC := usecase.NewReceiptUseCase(receiptRepo, projectRepo, rubroRepo, budgetRepo, entitlement, extractor, storageSvc)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, projectRepo, rubroRepo, budgetRepo)
	reportUC := usecase.NewReportUseCase(budgetRepo, rubroRepo, ledgerRepo)
	subscriptionUC := appbilling.NewSubscriptionUseCase(orgRepo, billingProcessor, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // imágenes de recibos de hasta 10 MB + margen multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Obra API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:               authUC,
		OrganizationUC:       organizationUC,
		ProjectUC:            projectUC,
		UserUC:               userUC,
		BudgetUC:             budgetUC,
		BudgetPDFUC:          budgetPDFUC,
		RubroUC:              rubroUC,
		ReceiptUC:            receiptUC,
		LedgerUC:             ledgerUC,
		ReportUC:             reportUC,
		SubscriptionUC:       subscriptionUC,
		Entitlement:          entitlement,
		JWTSecret:            cfg.JWT.Secret,
		BillingWebhookSecret: cfg.Billing.WebhookSecret,
	})

	// Apagado limpio con SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}
