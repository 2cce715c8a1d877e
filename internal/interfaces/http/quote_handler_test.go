package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamargo/factura-pro/internal/application/billing"
	"github.com/jcamargo/factura-pro/internal/application/dto"
	apphttp "github.com/jcamargo/factura-pro/internal/interfaces/http"
)

func buildQuoteApp() *fiber.App {
	app := fiber.New()
	handler := apphttp.NewQuoteHandler(billing.NewQuoteUseCase())
	app.Post("/api/pricing/quote", handler.Quote)
	return app
}

func postQuote(t *testing.T, app *fiber.App, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/quote", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Cotización TTC en TND (3 decimales) por precio unitario: 79.000 con 19%
// incluido, qty 12. El precio neto se redondea primero (66.387) y el importe
// sale del precio redondeado (796.644), no del bruto de la línea.
func TestQuote_PrecioUnitarioConImpuestoIncluido(t *testing.T) {
	app := buildQuoteApp()
	resp := postQuote(t, app, dto.QuoteRequest{
		Currency: "TND",
		Lines: []dto.QuoteLineRequest{{
			GrossRate:        decimal.RequireFromString("79.000"),
			Quantity:         decimal.RequireFromString("12"),
			TaxRates:         []decimal.Decimal{decimal.RequireFromString("19")},
			PriceIncludesTax: true,
		}},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.QuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Lines, 1)

	assert.Equal(t, int32(3), out.Precision)
	assert.True(t, out.Lines[0].NetRate.Equal(decimal.RequireFromString("66.387")),
		"net_rate: esperado 66.387, obtenido %s", out.Lines[0].NetRate)
	assert.True(t, out.Lines[0].NetAmount.Equal(decimal.RequireFromString("796.644")),
		"net_amount: esperado 796.644, obtenido %s", out.Lines[0].NetAmount)

	// Invariante visible para el cliente: net_rate × qty == net_amount
	qty := decimal.RequireFromString("12")
	assert.True(t, out.Lines[0].NetRate.Mul(qty).Round(3).Equal(out.Lines[0].NetAmount))
}

// Cotización por total TTC de línea: 79.000 "todo incluido" para 12 unidades
// con 19%. El unitario neto se redondea primero (5.532) y el importe se deriva
// de él (66.384) en lugar de redondear 79.000/1.19 por separado.
func TestQuote_TotalLineaConImpuestoIncluido(t *testing.T) {
	app := buildQuoteApp()
	resp := postQuote(t, app, dto.QuoteRequest{
		Currency: "TND",
		Lines: []dto.QuoteLineRequest{{
			GrossAmount:      decimal.RequireFromString("79.000"),
			Quantity:         decimal.RequireFromString("12"),
			TaxRates:         []decimal.Decimal{decimal.RequireFromString("19")},
			PriceIncludesTax: true,
		}},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.QuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Lines, 1)

	assert.True(t, out.Lines[0].NetRate.Equal(decimal.RequireFromString("5.532")),
		"net_rate: esperado 5.532, obtenido %s", out.Lines[0].NetRate)
	assert.True(t, out.Lines[0].NetAmount.Equal(decimal.RequireFromString("66.384")),
		"net_amount: esperado 66.384, obtenido %s", out.Lines[0].NetAmount)
	assert.True(t, out.Lines[0].TaxAmount.Equal(decimal.RequireFromString("12.613")),
		"tax_amount: esperado 12.613, obtenido %s", out.Lines[0].TaxAmount)

	qty := decimal.RequireFromString("12")
	assert.True(t, out.Lines[0].NetRate.Mul(qty).Round(3).Equal(out.Lines[0].NetAmount))
}

// gross_rate y gross_amount a la vez es ambiguo: la línea se rechaza.
func TestQuote_RateYAmountJuntosRetorna400(t *testing.T) {
	app := buildQuoteApp()
	resp := postQuote(t, app, dto.QuoteRequest{
		Currency: "TND",
		Lines: []dto.QuoteLineRequest{{
			GrossRate:        decimal.RequireFromString("79.000"),
			GrossAmount:      decimal.RequireFromString("79.000"),
			Quantity:         decimal.RequireFromString("12"),
			TaxRates:         []decimal.Decimal{decimal.RequireFromString("19")},
			PriceIncludesTax: true,
		}},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuote_SinMonedaRetorna400(t *testing.T) {
	app := buildQuoteApp()
	resp := postQuote(t, app, dto.QuoteRequest{
		Lines: []dto.QuoteLineRequest{{
			GrossRate: decimal.RequireFromString("10"),
			Quantity:  decimal.RequireFromString("1"),
		}},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuote_CantidadNegativaRetorna400(t *testing.T) {
	app := buildQuoteApp()
	resp := postQuote(t, app, dto.QuoteRequest{
		Currency: "USD",
		Lines: []dto.QuoteLineRequest{{
			GrossRate: decimal.RequireFromString("10"),
			Quantity:  decimal.RequireFromString("-1"),
		}},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
