package dto

import "github.com/shopspring/decimal"

// CreateTaxTemplateRequest body para POST /api/tax-templates.
// Rates en orden de aplicación (cascada); fracción (0.19) o porcentaje (19).
type CreateTaxTemplateRequest struct {
	Name            string            `json:"name" validate:"required,min=1,max=200"`
	Rates           []decimal.Decimal `json:"rates" validate:"required,min=1"`
	IncludedInPrice bool              `json:"included_in_price"`
}

// TaxTemplateResponse plantilla de impuestos en respuestas.
type TaxTemplateResponse struct {
	ID              string            `json:"id"`
	CompanyID       string            `json:"company_id"`
	Name            string            `json:"name"`
	Rates           []decimal.Decimal `json:"rates"`
	IncludedInPrice bool              `json:"included_in_price"`
}
