package dto

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	TaxID    string `json:"tax_id" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,len=3"` // ISO 4217; default COP
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Currency string `json:"currency"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status"`
}
