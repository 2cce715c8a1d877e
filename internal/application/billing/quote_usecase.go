package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jcamargo/factura-pro/internal/application/dto"
	"github.com/jcamargo/factura-pro/internal/domain"
	"github.com/jcamargo/factura-pro/internal/domain/pricing"
	"github.com/jcamargo/factura-pro/pkg/money"
)

// QuoteUseCase cotiza líneas sin persistir: la frontera de cálculo expuesta
// tal cual (entradas: precio bruto, tasas, cantidad; salidas: neto conciliado).
type QuoteUseCase struct{}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase() *QuoteUseCase { return &QuoteUseCase{} }

// Quote calcula cada línea con el precio neto redondeado primero y acumula
// totales desde los importes ya conciliados.
func (uc *QuoteUseCase) Quote(in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if in.Currency == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	precision := money.Precision(in.Currency)

	resp := &dto.QuoteResponse{
		Currency:  in.Currency,
		Precision: precision,
		Lines:     make([]dto.QuoteLineResponse, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		if l.Quantity.LessThan(decimal.Zero) || l.GrossRate.LessThan(decimal.Zero) || l.GrossAmount.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		factor := pricing.TaxFactor(l.TaxRates)
		var line pricing.Line
		switch {
		case !l.GrossAmount.IsZero():
			// Total TTC de la línea completa: excluyente con gross_rate y solo
			// tiene sentido con impuesto incluido.
			if !l.GrossRate.IsZero() || !l.PriceIncludesTax {
				return nil, domain.ErrInvalidInput
			}
			line = pricing.NetFromInclusiveAmount(l.GrossAmount, l.Quantity, factor, precision)
		case l.PriceIncludesTax:
			line = pricing.NetFromInclusiveRate(l.GrossRate, l.Quantity, factor, precision)
		default:
			line = pricing.FromNetRate(l.GrossRate, l.Quantity, factor, precision)
		}
		resp.Lines = append(resp.Lines, dto.QuoteLineResponse{
			NetRate:     line.NetRate,
			NetAmount:   line.NetAmount,
			TaxAmount:   line.TaxAmount,
			GrossAmount: line.GrossAmount,
		})
		resp.NetTotal = resp.NetTotal.Add(line.NetAmount)
		resp.TaxTotal = resp.TaxTotal.Add(line.TaxAmount)
	}
	resp.GrandTotal = resp.NetTotal.Add(resp.TaxTotal)
	return resp, nil
}
