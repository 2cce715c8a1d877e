package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/factura-pro/internal/application/auth"
	"github.com/jcamargo/factura-pro/internal/application/billing"
	"github.com/jcamargo/factura-pro/internal/application/usecase"
	"github.com/jcamargo/factura-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	ProductUC     *usecase.ProductUseCase
	TaxTemplateUC *usecase.TaxTemplateUseCase
	CustomerUC    *billing.CustomerUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	DocumentUC    *billing.DocumentUseCase
	QuoteUC       *billing.QuoteUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (alta pública para bootstrap; lectura protegida)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", AuthMiddleware(deps.JWTSecret), companyHandler.List)
	companies.Get("/:id", AuthMiddleware(deps.JWTSecret), companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo admin/contador)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleContador), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleContador), productHandler.Update)

	// Tax templates (protegido; escritura solo admin/contador)
	taxes := protected.Group("/tax-templates")
	taxHandler := NewTaxTemplateHandler(deps.TaxTemplateUC)
	taxes.Post("/", RequireRole(entity.RoleAdmin, entity.RoleContador), taxHandler.Create)
	taxes.Get("/", taxHandler.List)
	taxes.Get("/:id", taxHandler.GetByID)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Pricing (protegido): cotización sin persistencia
	pricingGroup := protected.Group("/pricing")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	pricingGroup.Post("/quote", quoteHandler.Quote)

	// Invoices (protegido; emitir solo admin/contador)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.DocumentUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/issue", RequireRole(entity.RoleAdmin, entity.RoleContador), invoiceHandler.Issue)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.DownloadXML)
}
