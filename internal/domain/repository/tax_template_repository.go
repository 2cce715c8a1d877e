package repository

import "github.com/jcamargo/factura-pro/internal/domain/entity"

// TaxTemplateRepository define el puerto de persistencia para TaxTemplate.
type TaxTemplateRepository interface {
	Create(template *entity.TaxTemplate) error
	GetByID(id string) (*entity.TaxTemplate, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.TaxTemplate, error)
	Update(template *entity.TaxTemplate) error
	Delete(id string) error
}
