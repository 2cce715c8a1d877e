// Package ubl genera la representación UBL 2.1 (Invoice) de una factura,
// sin firma digital. Los importes se serializan con los decimales de la
// moneda del documento y salen tal cual fueron conciliados al emitir:
// LineExtensionAmount es net_amount = round(net_rate × qty) y PriceAmount el
// net_rate ya redondeado, de modo que cualquier validador que multiplique
// precio por cantidad reproduce el importe exacto.
package ubl

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jcamargo/factura-pro/internal/application/billing"
	"github.com/jcamargo/factura-pro/pkg/money"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// XMLBuilder implementa billing.InvoiceXMLBuilder con etree.
type XMLBuilder struct{}

// NewXMLBuilder crea el builder.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

var _ billing.InvoiceXMLBuilder = (*XMLBuilder)(nil)

// Build genera el documento Invoice UBL 2.1 como []byte con indentación.
func (b *XMLBuilder) Build(doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Company == nil || doc.Customer == nil {
		return nil, fmt.Errorf("ubl: faltan invoice, company o customer en el documento")
	}
	inv := doc.Invoice
	cur := inv.Currency

	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	invoiceID := inv.Prefix + inv.Number

	root.CreateElement("cbc:UBLVersionID").SetText("2.1")
	root.CreateElement("cbc:ID").SetText(invoiceID)
	root.CreateElement("cbc:UUID").SetText(inv.ID)
	root.CreateElement("cbc:IssueDate").SetText(inv.Date.Format("2006-01-02"))
	root.CreateElement("cbc:IssueTime").SetText(inv.Date.Format("15:04:05-07:00"))
	root.CreateElement("cbc:InvoiceTypeCode").SetText("380") // factura comercial
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(cur)
	root.CreateElement("cbc:LineCountNumeric").SetText(fmt.Sprintf("%d", len(doc.Lines)))

	b.writeParty(root, "cac:AccountingSupplierParty", partyData{
		name: doc.Company.Name, taxID: doc.Company.TaxID,
		address: doc.Company.Address, email: doc.Company.Email, phone: doc.Company.Phone,
	})
	b.writeParty(root, "cac:AccountingCustomerParty", partyData{
		name: doc.Customer.Name, taxID: doc.Customer.TaxID,
		address: doc.Customer.Address, email: doc.Customer.Email, phone: doc.Customer.Phone,
	})

	b.writeTaxTotal(root, doc)
	b.writeLegalMonetaryTotal(root, doc)

	for i, line := range doc.Lines {
		b.writeInvoiceLine(root, i+1, line, cur)
	}

	d.Indent(2)
	return d.WriteToBytes()
}

type partyData struct {
	name    string
	taxID   string
	address string
	email   string
	phone   string
}

// writeParty escribe cac:AccountingSupplierParty o cac:AccountingCustomerParty.
func (b *XMLBuilder) writeParty(root *etree.Element, tag string, p partyData) {
	wrapper := root.CreateElement(tag)
	party := wrapper.CreateElement("cac:Party")

	name := party.CreateElement("cac:PartyName")
	name.CreateElement("cbc:Name").SetText(p.name)

	if p.taxID != "" {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		scheme.CreateElement("cbc:RegistrationName").SetText(p.name)
		scheme.CreateElement("cbc:CompanyID").SetText(p.taxID)
	}
	if p.address != "" {
		loc := party.CreateElement("cac:PhysicalLocation")
		addr := loc.CreateElement("cac:Address")
		line := addr.CreateElement("cac:AddressLine")
		line.CreateElement("cbc:Line").SetText(p.address)
	}
	if p.email != "" || p.phone != "" {
		contact := party.CreateElement("cac:Contact")
		if p.phone != "" {
			contact.CreateElement("cbc:Telephone").SetText(p.phone)
		}
		if p.email != "" {
			contact.CreateElement("cbc:ElectronicMail").SetText(p.email)
		}
	}
}

// writeTaxTotal escribe el cac:TaxTotal del documento con el impuesto total.
func (b *XMLBuilder) writeTaxTotal(root *etree.Element, doc *billing.InvoiceDocument) {
	cur := doc.Invoice.Currency
	total := root.CreateElement("cac:TaxTotal")
	amt := total.CreateElement("cbc:TaxAmount")
	amt.CreateAttr("currencyID", cur)
	amt.SetText(money.Format(doc.Invoice.TaxTotal, cur))
}

// writeLegalMonetaryTotal escribe los totales monetarios del documento.
func (b *XMLBuilder) writeLegalMonetaryTotal(root *etree.Element, doc *billing.InvoiceDocument) {
	cur := doc.Invoice.Currency
	write := func(parent *etree.Element, tag string, v decimal.Decimal) {
		e := parent.CreateElement(tag)
		e.CreateAttr("currencyID", cur)
		e.SetText(money.Format(v, cur))
	}
	total := root.CreateElement("cac:LegalMonetaryTotal")
	write(total, "cbc:LineExtensionAmount", doc.Invoice.NetTotal)
	write(total, "cbc:TaxExclusiveAmount", doc.Invoice.NetTotal)
	write(total, "cbc:TaxInclusiveAmount", doc.Invoice.GrandTotal)
	write(total, "cbc:PayableAmount", doc.Invoice.GrandTotal)
}

// writeInvoiceLine escribe una cac:InvoiceLine por detalle.
func (b *XMLBuilder) writeInvoiceLine(root *etree.Element, n int, line billing.InvoiceLineDoc, cur string) {
	d := line.Detail
	el := root.CreateElement("cac:InvoiceLine")
	el.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", n))

	qty := el.CreateElement("cbc:InvoicedQuantity")
	if line.UnitCode != "" {
		qty.CreateAttr("unitCode", line.UnitCode)
	}
	qty.SetText(d.Quantity.String())

	ext := el.CreateElement("cbc:LineExtensionAmount")
	ext.CreateAttr("currencyID", cur)
	ext.SetText(money.Format(d.NetAmount, cur))

	if d.TaxAmount.Sign() != 0 {
		taxTotal := el.CreateElement("cac:TaxTotal")
		taxAmt := taxTotal.CreateElement("cbc:TaxAmount")
		taxAmt.CreateAttr("currencyID", cur)
		taxAmt.SetText(money.Format(d.TaxAmount, cur))
	}

	item := el.CreateElement("cac:Item")
	item.CreateElement("cbc:Description").SetText(line.ProductName)
	if line.ProductSKU != "" {
		ident := item.CreateElement("cac:SellersItemIdentification")
		ident.CreateElement("cbc:ID").SetText(line.ProductSKU)
	}

	price := el.CreateElement("cac:Price")
	priceAmt := price.CreateElement("cbc:PriceAmount")
	priceAmt.CreateAttr("currencyID", cur)
	priceAmt.SetText(money.Format(d.NetRate, cur))
	price.CreateElement("cbc:BaseQuantity").SetText("1")
}
