package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description,omitempty"`
	ListPrice     decimal.Decimal `json:"list_price"`
	TaxTemplateID string          `json:"tax_template_id,omitempty"`
	UnitMeasure   string          `json:"unit_measure,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	ListPrice     *decimal.Decimal `json:"list_price,omitempty"`
	TaxTemplateID *string          `json:"tax_template_id,omitempty"`
	UnitMeasure   *string          `json:"unit_measure,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	ListPrice     decimal.Decimal `json:"list_price"`
	TaxTemplateID string          `json:"tax_template_id,omitempty"`
	UnitMeasure   string          `json:"unit_measure,omitempty"`
}
