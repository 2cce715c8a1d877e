package repository

import "github.com/jcamargo/factura-pro/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y detalles.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	// UpdateStatus cambia el estado (DRAFT → ISSUED → VOID) y updated_at.
	UpdateStatus(id, status string) error
	GetByID(id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
}
