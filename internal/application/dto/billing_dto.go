package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Currency opcional: si va vacío se usa la moneda por defecto de la empresa.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	Prefix     string               `json:"prefix"`
	Number     string               `json:"number,omitempty"` // opcional; si va vacío se genera
	Currency   string               `json:"currency,omitempty"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura. UnitPrice opcional: si va en cero se
// toma el precio de lista del producto. El precio se interpreta como TTC o
// neto según la plantilla de impuestos del producto.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string                  `json:"id"`
	CompanyID    string                  `json:"company_id"`
	CustomerID   string                  `json:"customer_id"`
	CustomerName string                  `json:"customer_name,omitempty"`
	Prefix       string                  `json:"prefix"`
	Number       string                  `json:"number"`
	Date         string                  `json:"date"`
	Currency     string                  `json:"currency"`
	NetTotal     decimal.Decimal         `json:"net_total"`
	TaxTotal     decimal.Decimal         `json:"tax_total"`
	GrandTotal   decimal.Decimal         `json:"grand_total"`
	Status       string                  `json:"status"`
	Details      []InvoiceDetailResponse `json:"details"`
}

// InvoiceDetailResponse línea de detalle en la respuesta. net_rate × quantity
// redondeado a la precisión de la moneda siempre es igual a net_amount.
type InvoiceDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	GrossRate decimal.Decimal `json:"gross_rate"`
	NetRate   decimal.Decimal `json:"net_rate"`
	NetAmount decimal.Decimal `json:"net_amount"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}
