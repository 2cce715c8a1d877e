package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcamargo/factura-pro/internal/domain"
	"github.com/jcamargo/factura-pro/internal/domain/entity"
	"github.com/jcamargo/factura-pro/internal/domain/repository"
)

var _ repository.TaxTemplateRepository = (*TaxTemplateRepo)(nil)

// TaxTemplateRepo implementación de TaxTemplateRepository (usable con pool o tx).
// Las tasas se guardan como JSONB para preservar el orden de aplicación.
type TaxTemplateRepo struct {
	q Querier
}

// NewTaxTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxTemplateRepository(q Querier) *TaxTemplateRepo {
	return &TaxTemplateRepo{q: q}
}

// Create persiste una nueva plantilla.
func (r *TaxTemplateRepo) Create(template *entity.TaxTemplate) error {
	rates, err := json.Marshal(template.Rates)
	if err != nil {
		return fmt.Errorf("marshal rates: %w", err)
	}
	query := `
		INSERT INTO tax_templates (id, company_id, name, rates, included_in_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(context.Background(), query,
		template.ID, template.CompanyID, template.Name, rates, template.IncludedInPrice,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax template: %w", err)
	}
	return nil
}

// GetByID obtiene una plantilla por ID.
func (r *TaxTemplateRepo) GetByID(id string) (*entity.TaxTemplate, error) {
	query := `
		SELECT id, company_id, name, rates, included_in_price, created_at, updated_at
		FROM tax_templates WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByCompany lista plantillas de la empresa con paginación.
func (r *TaxTemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.TaxTemplate, error) {
	query := `
		SELECT id, company_id, name, rates, included_in_price, created_at, updated_at
		FROM tax_templates WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tax templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaxTemplate
	for rows.Next() {
		tpl, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tpl)
	}
	return list, rows.Err()
}

// Update actualiza la plantilla.
func (r *TaxTemplateRepo) Update(template *entity.TaxTemplate) error {
	rates, err := json.Marshal(template.Rates)
	if err != nil {
		return fmt.Errorf("marshal rates: %w", err)
	}
	query := `
		UPDATE tax_templates
		SET name = $2, rates = $3, included_in_price = $4, updated_at = $5
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		template.ID, template.Name, rates, template.IncludedInPrice, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax template: %w", err)
	}
	return nil
}

// Delete elimina una plantilla.
func (r *TaxTemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tax_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tax template: %w", err)
	}
	return nil
}

func (r *TaxTemplateRepo) scanOne(row pgx.Row) (*entity.TaxTemplate, error) {
	var tpl entity.TaxTemplate
	var rates []byte
	err := row.Scan(&tpl.ID, &tpl.CompanyID, &tpl.Name, &rates, &tpl.IncludedInPrice, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax template: %w", err)
	}
	tpl.Rates = []decimal.Decimal{}
	if err := json.Unmarshal(rates, &tpl.Rates); err != nil {
		return nil, fmt.Errorf("unmarshal rates: %w", err)
	}
	return &tpl, nil
}
