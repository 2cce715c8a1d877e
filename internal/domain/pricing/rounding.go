// Package pricing implementa el cálculo de precios con impuesto incluido
// (precio TTC / "IVA incluido") como servicio de dominio puro.
//
// El orden de redondeo es la regla central: el precio unitario neto se
// redondea PRIMERO a la precisión de la moneda y el importe de la línea se
// deriva del precio ya redondeado. Así se garantiza que, a precisión de
// presentación, siempre se cumpla:
//
//	round(net_rate × qty) == net_amount
//
// Redondear el importe de forma independiente (desde intermedios sin
// redondear) rompe esa identidad hasta en un centavo por línea.
package pricing

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Line resultado del cálculo de una línea: valores ya conciliados a la
// precisión indicada.
type Line struct {
	NetRate     decimal.Decimal // precio unitario neto (redondeado primero)
	NetAmount   decimal.Decimal // NetRate × qty, redondeado (idempotente)
	TaxAmount   decimal.Decimal // NetAmount × (factor − 1), redondeado
	GrossAmount decimal.Decimal // NetAmount + TaxAmount
}

// NormalizeRate acepta tasas como fracción (0.19) o porcentaje (19) y
// devuelve siempre la fracción.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

// TaxFactor devuelve el factor combinado Π(1 + rᵢ) de un esquema de
// impuestos en cascada (cada tramo grava el acumulado anterior).
// Esquema vacío ⇒ factor 1.
func TaxFactor(rates []decimal.Decimal) decimal.Decimal {
	factor := one
	for _, r := range rates {
		factor = factor.Mul(one.Add(NormalizeRate(r)))
	}
	return factor
}

// NetFromInclusiveRate calcula la línea a partir de un precio unitario que ya
// incluye impuestos.
//
//	net_rate   = round(grossRate / factor, precision)
//	net_amount = round(net_rate × qty, precision)
func NetFromInclusiveRate(grossRate, qty, factor decimal.Decimal, precision int32) Line {
	netRate := grossRate.Div(factor).Round(precision)
	return deriveFromNetRate(netRate, qty, factor, precision)
}

// NetFromInclusiveAmount calcula la línea a partir del total TTC de la línea
// (la forma del reporte original: precio con impuestos para toda la cantidad).
// Con qty cero el importe es trivialmente cero.
func NetFromInclusiveAmount(grossAmount, qty, factor decimal.Decimal, precision int32) Line {
	if qty.IsZero() {
		netRate := grossAmount.Div(factor).Round(precision)
		return Line{NetRate: netRate}
	}
	netRate := grossAmount.Div(factor).Div(qty).Round(precision)
	return deriveFromNetRate(netRate, qty, factor, precision)
}

// FromNetRate calcula la línea para precios que NO incluyen impuestos,
// con el mismo orden: primero el precio, luego el importe derivado.
func FromNetRate(netRate, qty, factor decimal.Decimal, precision int32) Line {
	return deriveFromNetRate(netRate.Round(precision), qty, factor, precision)
}

func deriveFromNetRate(netRate, qty, factor decimal.Decimal, precision int32) Line {
	netAmount := netRate.Mul(qty).Round(precision)
	taxAmount := netAmount.Mul(factor.Sub(one)).Round(precision)
	return Line{
		NetRate:     netRate,
		NetAmount:   netAmount,
		TaxAmount:   taxAmount,
		GrossAmount: netAmount.Add(taxAmount),
	}
}

// Reconciled verifica la identidad round(netRate × qty) == netAmount a la
// precisión dada.
func Reconciled(netRate, qty, netAmount decimal.Decimal, precision int32) bool {
	return netRate.Mul(qty).Round(precision).Equal(netAmount)
}
