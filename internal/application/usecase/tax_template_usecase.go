package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcamargo/factura-pro/internal/application/dto"
	"github.com/jcamargo/factura-pro/internal/domain"
	"github.com/jcamargo/factura-pro/internal/domain/entity"
	"github.com/jcamargo/factura-pro/internal/domain/repository"
)

// TaxTemplateUseCase casos de uso para plantillas de impuestos.
type TaxTemplateUseCase struct {
	repo repository.TaxTemplateRepository
}

// NewTaxTemplateUseCase construye el caso de uso.
func NewTaxTemplateUseCase(repo repository.TaxTemplateRepository) *TaxTemplateUseCase {
	return &TaxTemplateUseCase{repo: repo}
}

// Create crea una plantilla. Tasas negativas o mayores al 100% se rechazan
// (una tasa de −100% haría división por cero al derivar el neto).
func (uc *TaxTemplateUseCase) Create(companyID string, in dto.CreateTaxTemplateRequest) (*dto.TaxTemplateResponse, error) {
	if in.Name == "" || len(in.Rates) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cien := decimal.NewFromInt(100)
	for _, r := range in.Rates {
		if r.LessThan(decimal.Zero) || r.GreaterThan(cien) {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	tpl := &entity.TaxTemplate{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Name:            in.Name,
		Rates:           in.Rates,
		IncludedInPrice: in.IncludedInPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(tpl); err != nil {
		return nil, err
	}
	return toTaxTemplateResponse(tpl), nil
}

// GetByID obtiene una plantilla por ID.
func (uc *TaxTemplateUseCase) GetByID(companyID, id string) (*dto.TaxTemplateResponse, error) {
	tpl, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, nil
	}
	if tpl.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toTaxTemplateResponse(tpl), nil
}

// List lista plantillas de la empresa.
func (uc *TaxTemplateUseCase) List(companyID string, limit, offset int) ([]*dto.TaxTemplateResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	templates, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TaxTemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTaxTemplateResponse(t))
	}
	return out, nil
}

func toTaxTemplateResponse(t *entity.TaxTemplate) *dto.TaxTemplateResponse {
	return &dto.TaxTemplateResponse{
		ID:              t.ID,
		CompanyID:       t.CompanyID,
		Name:            t.Name,
		Rates:           t.Rates,
		IncludedInPrice: t.IncludedInPrice,
	}
}
