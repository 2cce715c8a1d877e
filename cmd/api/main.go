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

	"github.com/jcamargo/factura-pro/internal/application/auth"
	"github.com/jcamargo/factura-pro/internal/application/billing"
	"github.com/jcamargo/factura-pro/internal/application/usecase"
	infrapdf "github.com/jcamargo/factura-pro/internal/infrastructure/pdf"
	"github.com/jcamargo/factura-pro/internal/infrastructure/postgres"
	infraubl "github.com/jcamargo/factura-pro/internal/infrastructure/ubl"
	httpRouter "github.com/jcamargo/factura-pro/internal/interfaces/http"
	"github.com/jcamargo/factura-pro/pkg/config"
	"github.com/jcamargo/factura-pro/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	taxTemplateRepo := postgres.NewTaxTemplateRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, taxTemplateRepo)
	taxTemplateUC := usecase.NewTaxTemplateUseCase(taxTemplateRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	quoteUC := billing.NewQuoteUseCase()

	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, customerRepo, companyRepo, productRepo, taxTemplateRepo, invoiceRepo,
	)

	// Representaciones de la factura: PDF (Maroto) y XML (UBL 2.1)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	xmlBuilder := infraubl.NewXMLBuilder()
	documentUC := billing.NewDocumentUseCase(
		invoiceRepo, companyRepo, customerRepo, productRepo, pdfGenerator, xmlBuilder,
	)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Factura Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		ProductUC:     productUC,
		TaxTemplateUC: taxTemplateUC,
		CustomerUC:    customerUC,
		CreateInvoice: createInvoiceUC,
		DocumentUC:    documentUC,
		QuoteUC:       quoteUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
