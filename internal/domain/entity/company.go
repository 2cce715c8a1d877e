package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
// Currency es la moneda de facturación por defecto y define la precisión de
// redondeo de las facturas que no indiquen otra.
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria (NIT, RUT, VAT number…)
	Currency  string // código ISO 4217 (COP, USD, EUR, TND…)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
