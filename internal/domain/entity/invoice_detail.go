package entity

import "github.com/shopspring/decimal"

// InvoiceDetail representa una línea de detalle de una factura.
//
// GrossRate es el precio unitario capturado (TTC si la plantilla del producto
// incluye impuestos). NetRate es el precio neto redondeado PRIMERO a la
// precisión de la moneda; NetAmount = round(NetRate × Quantity). Invariante:
// round(NetRate × Quantity) == NetAmount a la precisión de la factura.
type InvoiceDetail struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	GrossRate decimal.Decimal
	NetRate   decimal.Decimal
	NetAmount decimal.Decimal
	TaxRate   decimal.Decimal // tasa efectiva combinada (factor − 1), como fracción
	TaxAmount decimal.Decimal
}
