package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft  = "DRAFT"  // Guardada para reservar ID y consecutivo
	InvoiceStatusIssued = "ISSUED" // Emitida; totales inmutables
	InvoiceStatusVoid   = "VOID"   // Anulada
)

// Invoice representa la cabecera de una factura.
// NetTotal es la suma de los importes netos conciliados de las líneas
// (round(net_rate × qty) por línea, nunca un redondeo independiente del
// total), TaxTotal la suma de impuestos por línea y GrandTotal su suma.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string
	Prefix     string
	Number     string
	Date       time.Time
	Currency   string // ISO 4217; define la precisión de redondeo de la factura
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
