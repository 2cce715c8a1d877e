// Package money resuelve la precisión de presentación por moneda (decimales
// de la unidad menor ISO 4217) y centraliza el redondeo de importes.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultPrecision se usa para códigos de moneda desconocidos.
const DefaultPrecision int32 = 2

// overrides: decisiones de presentación propias que priman sobre ISO 4217.
// COP se factura sin decimales aunque la unidad menor ISO sea el centavo.
var overrides = map[string]int32{
	"COP": 0,
}

// Precision devuelve los decimales de presentación para un código ISO 4217.
// Orden de resolución: override propio → unidad menor ISO (vía x/text) →
// DefaultPrecision.
func Precision(code string) int32 {
	code = strings.ToUpper(strings.TrimSpace(code))
	if p, ok := overrides[code]; ok {
		return p
	}
	cur, err := currency.ParseISO(code)
	if err != nil {
		return DefaultPrecision
	}
	scale, _ := currency.Standard.Rounding(cur)
	return int32(scale)
}

// Round redondea un importe a la precisión de la moneda.
func Round(v decimal.Decimal, code string) decimal.Decimal {
	return v.Round(Precision(code))
}

// Format devuelve el importe con los decimales fijos de la moneda
// (para PDF y XML: "66.384", "83.34", "120").
func Format(v decimal.Decimal, code string) string {
	return v.Round(Precision(code)).StringFixed(Precision(code))
}
