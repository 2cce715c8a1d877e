package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jcamargo/factura-pro/pkg/money"
)

func TestPrecision_UnidadMenorISO(t *testing.T) {
	// Dinar tunecino: milésimas; dólar y euro: centavos; yen: sin decimales.
	assert.Equal(t, int32(3), money.Precision("TND"))
	assert.Equal(t, int32(2), money.Precision("USD"))
	assert.Equal(t, int32(2), money.Precision("EUR"))
	assert.Equal(t, int32(0), money.Precision("JPY"))
}

func TestPrecision_Override(t *testing.T) {
	// Política propia: COP sin decimales aunque ISO defina 2.
	assert.Equal(t, int32(0), money.Precision("COP"))
}

func TestPrecision_CodigoDesconocido(t *testing.T) {
	assert.Equal(t, money.DefaultPrecision, money.Precision("XQZ"))
	assert.Equal(t, money.DefaultPrecision, money.Precision(""))
}

func TestPrecision_NormalizaEntrada(t *testing.T) {
	assert.Equal(t, int32(3), money.Precision(" tnd "))
}

func TestRound_PorMoneda(t *testing.T) {
	v := decimal.RequireFromString("66.3865546")
	assert.True(t, decimal.RequireFromString("66.387").Equal(money.Round(v, "TND")))
	assert.True(t, decimal.RequireFromString("66.39").Equal(money.Round(v, "USD")))
	assert.True(t, decimal.RequireFromString("66").Equal(money.Round(v, "JPY")))
}

func TestFormat_DecimalesFijos(t *testing.T) {
	v := decimal.RequireFromString("66.384")
	assert.Equal(t, "66.384", money.Format(v, "TND"))
	assert.Equal(t, "66.38", money.Format(v, "USD"))
	assert.Equal(t, "66", money.Format(v, "JPY"))
}
