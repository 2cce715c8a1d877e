package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxTemplate es un esquema de impuestos nombrado: una lista ordenada de
// tasas en cascada (cada tramo grava el acumulado anterior) y la bandera de
// si el precio de lista ya las incluye.
//
// Las tasas se aceptan como fracción (0.19) o porcentaje (19); pricing las
// normaliza al calcular el factor.
type TaxTemplate struct {
	ID              string
	CompanyID       string
	Name            string // "IVA 19%", "TVA 7% + 19%"…
	Rates           []decimal.Decimal
	IncludedInPrice bool // true = el precio de lista es TTC
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
