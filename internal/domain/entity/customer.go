package entity

import "time"

// Customer representa un cliente de la empresa (receptor de facturas).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // identificación tributaria del cliente
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
