package billing

import (
	"context"

	"github.com/jcamargo/factura-pro/internal/domain/entity"
	"github.com/jcamargo/factura-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los
// repositorios de facturación atados a la misma tx.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceLineDoc línea enriquecida con datos del producto para documentos.
type InvoiceLineDoc struct {
	Detail      *entity.InvoiceDetail
	ProductName string
	ProductSKU  string
	UnitCode    string
}

// InvoiceDocument datos completos de una factura para renderizar (PDF o XML).
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []InvoiceLineDoc
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceXMLBuilder genera la representación UBL 2.1 de una factura.
type InvoiceXMLBuilder interface {
	Build(doc *InvoiceDocument) ([]byte, error)
}
