package dto

import "github.com/shopspring/decimal"

// QuoteRequest body para POST /api/pricing/quote: previsualización de líneas
// sin persistir nada. Cada línea trae su esquema de tasas explícito.
type QuoteRequest struct {
	Currency string             `json:"currency" validate:"required,len=3"`
	Lines    []QuoteLineRequest `json:"lines" validate:"required,min=1"`
}

// QuoteLineRequest una línea a cotizar. Si PriceIncludesTax es true, GrossRate
// es el precio unitario TTC y el neto se deriva redondeando primero el precio.
// Alternativamente GrossAmount es el total TTC de toda la línea (precio "todo
// incluido" para la cantidad completa); es excluyente con GrossRate.
type QuoteLineRequest struct {
	GrossRate        decimal.Decimal   `json:"gross_rate,omitempty"`
	GrossAmount      decimal.Decimal   `json:"gross_amount,omitempty"`
	Quantity         decimal.Decimal   `json:"quantity"`
	TaxRates         []decimal.Decimal `json:"tax_rates,omitempty"`
	PriceIncludesTax bool              `json:"price_includes_tax"`
}

// QuoteLineResponse línea cotizada con los valores conciliados.
type QuoteLineResponse struct {
	NetRate     decimal.Decimal `json:"net_rate"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

// QuoteResponse respuesta de la cotización.
type QuoteResponse struct {
	Currency   string              `json:"currency"`
	Precision  int32               `json:"precision"`
	Lines      []QuoteLineResponse `json:"lines"`
	NetTotal   decimal.Decimal     `json:"net_total"`
	TaxTotal   decimal.Decimal     `json:"tax_total"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
}
