package billing

import (
	"context"
	"fmt"

	"github.com/jcamargo/factura-pro/internal/domain"
	"github.com/jcamargo/factura-pro/internal/domain/repository"
)

// DocumentUseCase genera las representaciones de una factura: PDF (gráfica)
// y XML (UBL 2.1). Ambas salen de los mismos detalles conciliados que se
// persistieron; ningún importe se recalcula al renderizar.
type DocumentUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	pdfGen       InvoicePDFGenerator
	xmlBuilder   InvoiceXMLBuilder
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	pdfGen InvoicePDFGenerator,
	xmlBuilder InvoiceXMLBuilder,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		pdfGen:       pdfGen,
		xmlBuilder:   xmlBuilder,
	}
}

// DownloadInvoicePDF recupera los datos de la factura y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
//   - domain.ErrForbidden       si la factura no pertenece a la empresa del token.
func (uc *DocumentUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.loadDocument(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdfGen.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s%s.pdf", doc.Invoice.Prefix, doc.Invoice.Number)
	return pdfBytes, filename, nil
}

// DownloadInvoiceXML genera el UBL 2.1 de la factura.
func (uc *DocumentUseCase) DownloadInvoiceXML(ctx context.Context, companyID, invoiceID string) (xmlBytes []byte, filename string, err error) {
	doc, err := uc.loadDocument(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	xmlBytes, err = uc.xmlBuilder.Build(doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s%s.xml", doc.Invoice.Prefix, doc.Invoice.Number)
	return xmlBytes, filename, nil
}

// loadDocument carga factura, empresa, cliente y detalles enriquecidos.
func (uc *DocumentUseCase) loadDocument(companyID, invoiceID string) (*InvoiceDocument, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, fmt.Errorf("documento: obtener empresa: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("documento: obtener cliente: %w", err)
	}
	rawDetails, err := uc.invoiceRepo.GetDetailsByInvoiceID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener detalles: %w", err)
	}

	lines := make([]InvoiceLineDoc, 0, len(rawDetails))
	for _, d := range rawDetails {
		name := "Producto " + d.ProductID // fallback
		sku := ""
		unit := "EA"
		if product, pErr := uc.productRepo.GetByID(d.ProductID); pErr == nil && product != nil {
			name = product.Name
			sku = product.SKU
			if product.UnitMeasure != "" {
				unit = product.UnitMeasure
			}
		}
		lines = append(lines, InvoiceLineDoc{
			Detail:      d,
			ProductName: name,
			ProductSKU:  sku,
			UnitCode:    unit,
		})
	}

	return &InvoiceDocument{
		Invoice:  inv,
		Company:  company,
		Customer: customer,
		Lines:    lines,
	}, nil
}
