package ubl_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamargo/factura-pro/internal/application/billing"
	"github.com/jcamargo/factura-pro/internal/domain/entity"
	"github.com/jcamargo/factura-pro/internal/infrastructure/ubl"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// testDocument arma una factura TND (3 decimales) con una línea conciliada:
// precio TTC 79.000, 19% incluido, qty 12 → net_rate 5.532, net_amount 66.384.
func testDocument() *billing.InvoiceDocument {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return &billing.InvoiceDocument{
		Invoice: &entity.Invoice{
			ID:         "inv-001",
			Prefix:     "FV",
			Number:     "000123",
			Date:       date,
			Currency:   "TND",
			NetTotal:   d("66.384"),
			TaxTotal:   d("12.613"),
			GrandTotal: d("78.997"),
			Status:     entity.InvoiceStatusIssued,
		},
		Company: &entity.Company{
			Name:    "Comercial del Sur S.A.",
			TaxID:   "900123456",
			Address: "Calle 10 # 5-51",
			Email:   "facturacion@comsur.co",
		},
		Customer: &entity.Customer{
			Name:  "Cliente Uno Ltda.",
			TaxID: "800987654",
		},
		Lines: []billing.InvoiceLineDoc{
			{
				Detail: &entity.InvoiceDetail{
					Quantity:  d("12"),
					GrossRate: d("79.000"),
					NetRate:   d("5.532"),
					NetAmount: d("66.384"),
					TaxRate:   d("0.19"),
					TaxAmount: d("12.613"),
				},
				ProductName: "Café especial 500g",
				ProductSKU:  "CAF-500",
				UnitCode:    "UND",
			},
		},
	}
}

func TestBuild_DocumentoCompleto(t *testing.T) {
	out, err := ubl.NewXMLBuilder().Build(testDocument())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)

	assert.Equal(t, "2.1", root.FindElement("cbc:UBLVersionID").Text())
	assert.Equal(t, "FV000123", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "2024-03-15", root.FindElement("cbc:IssueDate").Text())
	assert.Equal(t, "TND", root.FindElement("cbc:DocumentCurrencyCode").Text())
	assert.Equal(t, "1", root.FindElement("cbc:LineCountNumeric").Text())

	supplier := root.FindElement("cac:AccountingSupplierParty/cac:Party/cac:PartyName/cbc:Name")
	require.NotNil(t, supplier)
	assert.Equal(t, "Comercial del Sur S.A.", supplier.Text())

	customer := root.FindElement("cac:AccountingCustomerParty/cac:Party/cac:PartyTaxScheme/cbc:CompanyID")
	require.NotNil(t, customer)
	assert.Equal(t, "800987654", customer.Text())
}

// TestBuild_ImportesConciliados verifica que el XML reproduce los importes
// guardados con la precisión de la moneda: PriceAmount × InvoicedQuantity
// debe dar exactamente LineExtensionAmount.
func TestBuild_ImportesConciliados(t *testing.T) {
	out, err := ubl.NewXMLBuilder().Build(testDocument())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()

	line := root.FindElement("cac:InvoiceLine")
	require.NotNil(t, line)

	priceAmt := line.FindElement("cac:Price/cbc:PriceAmount")
	qty := line.FindElement("cbc:InvoicedQuantity")
	ext := line.FindElement("cbc:LineExtensionAmount")
	require.NotNil(t, priceAmt)
	require.NotNil(t, qty)
	require.NotNil(t, ext)

	assert.Equal(t, "5.532", priceAmt.Text())
	assert.Equal(t, "TND", priceAmt.SelectAttrValue("currencyID", ""))
	assert.Equal(t, "12", qty.Text())
	assert.Equal(t, "UND", qty.SelectAttrValue("unitCode", ""))
	assert.Equal(t, "66.384", ext.Text())

	// El validador externo: precio × cantidad a 3 decimales == importe de línea
	price := d(priceAmt.Text())
	quantity := d(qty.Text())
	assert.True(t, price.Mul(quantity).Round(3).Equal(d(ext.Text())),
		"PriceAmount × InvoicedQuantity debe reproducir LineExtensionAmount")

	payable := root.FindElement("cac:LegalMonetaryTotal/cbc:PayableAmount")
	require.NotNil(t, payable)
	assert.Equal(t, "78.997", payable.Text())
}

func TestBuild_DocumentoIncompleto(t *testing.T) {
	b := ubl.NewXMLBuilder()

	_, err := b.Build(nil)
	assert.Error(t, err)

	_, err = b.Build(&billing.InvoiceDocument{Invoice: &entity.Invoice{}})
	assert.Error(t, err)
}

func TestBuild_LineaSinImpuesto(t *testing.T) {
	doc := testDocument()
	doc.Lines[0].Detail.TaxAmount = decimal.Zero

	out, err := ubl.NewXMLBuilder().Build(doc)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))

	line := parsed.Root().FindElement("cac:InvoiceLine")
	require.NotNil(t, line)
	assert.Nil(t, line.FindElement("cac:TaxTotal"), "línea sin impuesto no lleva cac:TaxTotal")
}
