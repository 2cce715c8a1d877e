package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamargo/factura-pro/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Suite de conciliación de precios con impuesto incluido.
//
// Requisito: a precisión de presentación, round(net_rate × qty) == net_amount.
// El orden correcto redondea el precio unitario neto PRIMERO y deriva el
// importe del precio ya redondeado. El orden inverso (redondear el importe de
// forma independiente y derivar el precio por división) rompe la identidad
// hasta en un centavo por línea; cada escenario demuestra ambos caminos.
//
// Escenarios del reporte original:
//   1. TND (3 decimales), 19% IVA, qty 12, total TTC 79.000
//   2. TND, impuestos en cascada 7% + 19% (factor 1.2733)
//   3. EUR (2 decimales), 20% IVA, qty 3, total TTC 100.00
//   4. USD (2 decimales), 8.5%, qty 7, total TTC 99.99
// ──────────────────────────────────────────────────────────────────────────────

// buggyFromInclusiveAmount reproduce el orden de redondeo defectuoso:
// primero redondea el importe neto y deriva el precio unitario por división.
func buggyFromInclusiveAmount(grossAmount, qty, factor decimal.Decimal, precision int32) (netRate, netAmount decimal.Decimal) {
	netAmount = grossAmount.Div(factor).Round(precision)
	netRate = netAmount.Div(qty).Round(precision)
	return netRate, netAmount
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNetFromInclusiveAmount_TND19(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("19")})
	line := pricing.NetFromInclusiveAmount(d("79.000"), d("12"), factor, 3)

	// 79 / 1.19 = 66.38655462…; /12 = 5.53221…→ 5.532; ×12 = 66.384
	assert.True(t, d("5.532").Equal(line.NetRate), "net_rate = %s", line.NetRate)
	assert.True(t, d("66.384").Equal(line.NetAmount), "net_amount = %s", line.NetAmount)
	assert.True(t, pricing.Reconciled(line.NetRate, d("12"), line.NetAmount, 3))

	// El orden defectuoso guarda 66.387 pero muestra un precio que ×12 da 66.384.
	badRate, badAmount := buggyFromInclusiveAmount(d("79.000"), d("12"), factor, 3)
	assert.True(t, d("66.387").Equal(badAmount))
	assert.False(t, pricing.Reconciled(badRate, d("12"), badAmount, 3),
		"el redondeo importe-primero debe romper la identidad en este escenario")
}

func TestNetFromInclusiveAmount_CascadaTND(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("7"), d("19")})
	require.True(t, d("1.2733").Equal(factor), "factor combinado 1.07 × 1.19")

	line := pricing.NetFromInclusiveAmount(d("79.000"), d("12"), factor, 3)

	// 79 / 1.2733 = 62.04350…; /12 = 5.17029…→ 5.170; ×12 = 62.040
	assert.True(t, d("5.170").Equal(line.NetRate), "net_rate = %s", line.NetRate)
	assert.True(t, d("62.040").Equal(line.NetAmount), "net_amount = %s", line.NetAmount)
	assert.True(t, pricing.Reconciled(line.NetRate, d("12"), line.NetAmount, 3))

	badRate, badAmount := buggyFromInclusiveAmount(d("79.000"), d("12"), factor, 3)
	assert.True(t, d("62.044").Equal(badAmount))
	assert.False(t, pricing.Reconciled(badRate, d("12"), badAmount, 3))
}

func TestNetFromInclusiveAmount_EUR20(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("20")})
	line := pricing.NetFromInclusiveAmount(d("100.00"), d("3"), factor, 2)

	// 100 / 1.20 = 83.3333…; /3 = 27.7777…→ 27.78; ×3 = 83.34
	assert.True(t, d("27.78").Equal(line.NetRate))
	assert.True(t, d("83.34").Equal(line.NetAmount))
	assert.True(t, pricing.Reconciled(line.NetRate, d("3"), line.NetAmount, 2))

	badRate, badAmount := buggyFromInclusiveAmount(d("100.00"), d("3"), factor, 2)
	assert.True(t, d("83.33").Equal(badAmount))
	assert.False(t, pricing.Reconciled(badRate, d("3"), badAmount, 2))
}

func TestNetFromInclusiveAmount_USD85(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("8.5")})
	line := pricing.NetFromInclusiveAmount(d("99.99"), d("7"), factor, 2)

	// 99.99 / 1.085 = 92.15668…; /7 = 13.16524…→ 13.17; ×7 = 92.19
	assert.True(t, d("13.17").Equal(line.NetRate))
	assert.True(t, d("92.19").Equal(line.NetAmount))
	assert.True(t, pricing.Reconciled(line.NetRate, d("7"), line.NetAmount, 2))

	badRate, badAmount := buggyFromInclusiveAmount(d("99.99"), d("7"), factor, 2)
	assert.True(t, d("92.16").Equal(badAmount))
	assert.False(t, pricing.Reconciled(badRate, d("7"), badAmount, 2))
}

// TestNetFromInclusiveRate_Unitario100 cubre el caso de precio unitario TTC:
// 100 con 5% y qty 3. El precio neto es round(100/1.05) = 95.24 y el importe
// derivado 95.24 × 3 = 285.72; el importe redondeado de forma independiente
// sería round(285.7142…) = 285.71, un centavo menos.
func TestNetFromInclusiveRate_Unitario100(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("5")})
	line := pricing.NetFromInclusiveRate(d("100"), d("3"), factor, 2)

	assert.True(t, d("95.24").Equal(line.NetRate))
	assert.True(t, d("285.72").Equal(line.NetAmount))
	assert.True(t, pricing.Reconciled(line.NetRate, d("3"), line.NetAmount, 2))

	independiente := d("100").Mul(d("3")).Div(factor).Round(2)
	assert.True(t, d("285.71").Equal(independiente))
	assert.False(t, pricing.Reconciled(line.NetRate, d("3"), independiente, 2),
		"el importe redondeado de forma independiente difiere en un centavo")
}

// TestIdentidad_Construccion: la identidad se cumple por construcción para
// cualquier qty positiva, esquema de tasas y precisión soportada.
func TestIdentidad_Construccion(t *testing.T) {
	grosses := []string{"79.000", "99.99", "100", "0.01", "1234567.89", "3.333"}
	qtys := []string{"1", "2", "3", "7", "12", "144", "0.5", "2.25"}
	schedules := [][]decimal.Decimal{
		{},
		{d("5")},
		{d("8.5")},
		{d("19")},
		{d("0.19")},
		{d("7"), d("19")},
		{d("2.04"), d("1.02"), d("16")},
	}
	for _, g := range grosses {
		for _, q := range qtys {
			for _, rates := range schedules {
				factor := pricing.TaxFactor(rates)
				for _, prec := range []int32{0, 2, 3} {
					line := pricing.NetFromInclusiveAmount(d(g), d(q), factor, prec)
					assert.True(t,
						pricing.Reconciled(line.NetRate, d(q), line.NetAmount, prec),
						"g=%s q=%s factor=%s prec=%d", g, q, factor, prec)

					line = pricing.NetFromInclusiveRate(d(g), d(q), factor, prec)
					assert.True(t,
						pricing.Reconciled(line.NetRate, d(q), line.NetAmount, prec),
						"rate g=%s q=%s factor=%s prec=%d", g, q, factor, prec)
				}
			}
		}
	}
}

func TestFromNetRate_MismoOrden(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("19")})
	line := pricing.FromNetRate(d("5.5325"), d("12"), factor, 3)

	// El precio exclusivo también se redondea antes de multiplicar.
	assert.True(t, d("5.533").Equal(line.NetRate))
	assert.True(t, d("66.396").Equal(line.NetAmount))
	assert.True(t, pricing.Reconciled(line.NetRate, d("12"), line.NetAmount, 3))
}

func TestNetFromInclusiveAmount_QtyCero(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("19")})
	line := pricing.NetFromInclusiveAmount(d("79.000"), decimal.Zero, factor, 3)

	assert.True(t, line.NetAmount.IsZero(), "qty cero ⇒ importe cero")
	assert.True(t, line.TaxAmount.IsZero())
	assert.True(t, line.GrossAmount.IsZero())
	assert.True(t, pricing.Reconciled(line.NetRate, decimal.Zero, line.NetAmount, 3))
}

// ── TaxFactor y normalización ────────────────────────────────────────────────

func TestTaxFactor_EsquemaVacio(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1).Equal(pricing.TaxFactor(nil)))
}

func TestNormalizeRate_PorcentajeYFraccion(t *testing.T) {
	// 19 (porcentaje) y 0.19 (fracción) deben producir el mismo factor.
	fPct := pricing.TaxFactor([]decimal.Decimal{d("19")})
	fFrac := pricing.TaxFactor([]decimal.Decimal{d("0.19")})
	assert.True(t, fPct.Equal(fFrac))
	assert.True(t, d("1.19").Equal(fPct))
}

func TestLine_DescomposicionImpuesto(t *testing.T) {
	factor := pricing.TaxFactor([]decimal.Decimal{d("19")})
	line := pricing.NetFromInclusiveAmount(d("79.000"), d("12"), factor, 3)

	// TaxAmount = round(net_amount × 0.19) y GrossAmount = neto + impuesto.
	require.True(t, d("66.384").Equal(line.NetAmount))
	assert.True(t, d("12.613").Equal(line.TaxAmount), "tax = %s", line.TaxAmount)
	assert.True(t, line.GrossAmount.Equal(line.NetAmount.Add(line.TaxAmount)))
}
