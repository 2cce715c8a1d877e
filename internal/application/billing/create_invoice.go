package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcamargo/factura-pro/internal/application/dto"
	"github.com/jcamargo/factura-pro/internal/domain"
	"github.com/jcamargo/factura-pro/internal/domain/entity"
	"github.com/jcamargo/factura-pro/internal/domain/pricing"
	"github.com/jcamargo/factura-pro/internal/domain/repository"
	"github.com/jcamargo/factura-pro/pkg/money"
)

// CreateInvoiceUseCase es el controlador de totales: calcula cada línea con
// el orden de redondeo correcto (precio neto primero, importe derivado) y
// persiste cabecera y detalles en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	productRepo  repository.ProductRepository
	taxRepo      repository.TaxTemplateRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxTemplateRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		productRepo:  productRepo,
		taxRepo:      taxRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateInvoice crea la factura con sus líneas ya conciliadas.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 || in.Prefix == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente y que sea de la empresa
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Empresa (moneda por defecto)
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	currency := in.Currency
	if currency == "" {
		currency = company.Currency
	}
	precision := money.Precision(currency)

	// Validar productos, resolver plantillas de impuestos y precios (solo lectura)
	productsByID := make(map[string]*entity.Product)
	templatesByID := make(map[string]*entity.TaxTemplate)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.ListPrice
		}
		if product.TaxTemplateID != "" {
			if _, ok := templatesByID[product.TaxTemplateID]; !ok {
				tpl, err := uc.taxRepo.GetByID(product.TaxTemplateID)
				if err != nil || tpl == nil {
					return nil, domain.ErrNotFound
				}
				templatesByID[product.TaxTemplateID] = tpl
			}
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	var inv *entity.Invoice
	var details []*entity.InvoiceDetail

	// Cálculo de líneas: el precio unitario neto se redondea a la precisión
	// de la moneda ANTES de extender; el importe sale del precio redondeado.
	var netTotal, taxTotal decimal.Decimal
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		factor := decimal.NewFromInt(1)
		included := false
		if product.TaxTemplateID != "" {
			tpl := templatesByID[product.TaxTemplateID]
			factor = pricing.TaxFactor(tpl.Rates)
			included = tpl.IncludedInPrice
		}
		var line pricing.Line
		if included {
			line = pricing.NetFromInclusiveRate(item.UnitPrice, item.Quantity, factor, precision)
		} else {
			line = pricing.FromNetRate(item.UnitPrice, item.Quantity, factor, precision)
		}
		netTotal = netTotal.Add(line.NetAmount)
		taxTotal = taxTotal.Add(line.TaxAmount)
		details = append(details, &entity.InvoiceDetail{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			GrossRate: item.UnitPrice,
			NetRate:   line.NetRate,
			NetAmount: line.NetAmount,
			TaxRate:   factor.Sub(decimal.NewFromInt(1)),
			TaxAmount: line.TaxAmount,
		})
	}

	number := in.Number
	if number == "" {
		number = fmt.Sprintf("%s-%d", in.Prefix, now.Unix())
	}
	inv = &entity.Invoice{
		ID:         invoiceID,
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		Prefix:     in.Prefix,
		Number:     number,
		Date:       now,
		Currency:   currency,
		NetTotal:   netTotal,
		TaxTotal:   taxTotal,
		GrandTotal: netTotal.Add(taxTotal),
		Status:     entity.InvoiceStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, detail := range details {
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, customer.Name, details), nil
}

// IssueInvoice pasa una factura de DRAFT a ISSUED (totales inmutables).
func (uc *CreateInvoiceUseCase) IssueInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if inv.Status != entity.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}
	if err := uc.invoiceRepo.UpdateStatus(id, entity.InvoiceStatusIssued); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatusIssued
	return uc.buildResponse(inv)
}

// ListInvoices lista las facturas de la empresa (cabeceras, sin detalle).
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, companyID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	invoices, err := uc.invoiceRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, uc.toResponse(inv, "", nil))
	}
	return result, nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.buildResponse(inv)
}

func (uc *CreateInvoiceUseCase) buildResponse(inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(inv.CustomerID)
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, details), nil
}

func (uc *CreateInvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		CompanyID:    inv.CompanyID,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		Prefix:       inv.Prefix,
		Number:       inv.Number,
		Date:         inv.Date.Format("2006-01-02"),
		Currency:     inv.Currency,
		NetTotal:     inv.NetTotal,
		TaxTotal:     inv.TaxTotal,
		GrandTotal:   inv.GrandTotal,
		Status:       inv.Status,
		Details:      make([]dto.InvoiceDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			GrossRate: d.GrossRate,
			NetRate:   d.NetRate,
			NetAmount: d.NetAmount,
			TaxRate:   d.TaxRate,
			TaxAmount: d.TaxAmount,
		})
	}
	return resp
}
