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

// ProductUseCase casos de uso CRUD para productos facturables.
type ProductUseCase struct {
	repo    repository.ProductRepository
	taxRepo repository.TaxTemplateRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, taxRepo repository.TaxTemplateRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, taxRepo: taxRepo}
}

// Create crea un nuevo producto. Si trae plantilla de impuestos, debe existir
// y pertenecer a la misma empresa.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.ListPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.TaxTemplateID != "" {
		tpl, err := uc.taxRepo.GetByID(in.TaxTemplateID)
		if err != nil || tpl == nil {
			return nil, domain.ErrNotFound
		}
		if tpl.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "EA"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		ListPrice:     in.ListPrice,
		TaxTemplateID: in.TaxTemplateID,
		UnitMeasure:   in.UnitMeasure,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto (campos opcionales).
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ListPrice != nil {
		if in.ListPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.ListPrice = *in.ListPrice
	}
	if in.TaxTemplateID != nil {
		if *in.TaxTemplateID != "" {
			tpl, err := uc.taxRepo.GetByID(*in.TaxTemplateID)
			if err != nil || tpl == nil {
				return nil, domain.ErrNotFound
			}
			if tpl.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
		}
		product.TaxTemplateID = *in.TaxTemplateID
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa.
func (uc *ProductUseCase) List(companyID string, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	products, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		ListPrice:     p.ListPrice,
		TaxTemplateID: p.TaxTemplateID,
		UnitMeasure:   p.UnitMeasure,
	}
}
