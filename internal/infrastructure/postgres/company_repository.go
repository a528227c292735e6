package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, company_code, logo, address, phone, website,
	subscription_status, trial_ends_at, subscription_ends_at, is_active, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una empresa nueva.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, company_code, logo, address, phone, website, subscription_status, trial_ends_at, subscription_ends_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.CompanyCode, company.Logo, company.Address,
		company.Phone, company.Website, company.SubscriptionStatus, company.TrialEndsAt,
		company.SubscriptionEndsAt, company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByName obtiene una empresa por nombre.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.getBy(ctx, "name = $1", name)
}

// GetByCode obtiene una empresa por su company code.
func (r *CompanyRepo) GetByCode(ctx context.Context, companyCode string) (*entity.Company, error) {
	return r.getBy(ctx, "company_code = $1", companyCode)
}

func (r *CompanyRepo) getBy(ctx context.Context, where string, arg any) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ` + where
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.CompanyCode, &c.Logo, &c.Address, &c.Phone, &c.Website,
		&c.SubscriptionStatus, &c.TrialEndsAt, &c.SubscriptionEndsAt, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos editables de una empresa, incluido el estado de
// suscripción fijado desde la consola superadmin.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, logo = $3, address = $4, phone = $5, website = $6,
			subscription_status = $7, trial_ends_at = $8, subscription_ends_at = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Logo, company.Address, company.Phone,
		company.Website, company.SubscriptionStatus, company.TrialEndsAt,
		company.SubscriptionEndsAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// UpdateSubscriptionStatus sobreescribe el estado de suscripción. Sin
// compare-and-swap: el estado destino es fijo y la operación es idempotente
// bajo requests concurrentes (transición perezosa ACTIVE→EXPIRED).
func (r *CompanyRepo) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE companies SET subscription_status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	return nil
}

// SetActive activa o desactiva una empresa.
func (r *CompanyRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE companies SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set company active: %w", err)
	}
	return nil
}

// List lista empresas con paginación (consola superadmin).
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CompanyCode, &c.Logo, &c.Address, &c.Phone, &c.Website,
			&c.SubscriptionStatus, &c.TrialEndsAt, &c.SubscriptionEndsAt, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
