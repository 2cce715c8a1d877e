package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio facturable.
// ListPrice es el precio de lista; si la plantilla de impuestos del producto
// tiene IncludedInPrice, ese precio ya incluye impuestos (precio TTC) y el
// neto se deriva en el cálculo de la factura.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	ListPrice     decimal.Decimal
	TaxTemplateID string // plantilla de impuestos aplicable (vacío = sin impuestos)
	UnitMeasure   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
