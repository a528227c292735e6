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

var _ repository.SuperAdminRepository = (*SuperAdminRepo)(nil)
var _ repository.SubscriptionPlanRepository = (*SubscriptionPlanRepo)(nil)

// SuperAdminRepo implementación del puerto SuperAdminRepository sobre PostgreSQL.
type SuperAdminRepo struct {
	q Querier
}

// NewSuperAdminRepository construye el adaptador de persistencia para operadores.
func NewSuperAdminRepository(q Querier) *SuperAdminRepo {
	return &SuperAdminRepo{q: q}
}

// Create persiste un operador nuevo.
func (r *SuperAdminRepo) Create(ctx context.Context, admin *entity.SuperAdmin) error {
	query := `
		INSERT INTO super_admins (id, email, password_hash, first_name, last_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash, admin.FirstName, admin.LastName,
		admin.IsActive, admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert super_admin: %w", err)
	}
	return nil
}

// GetByID obtiene un operador por ID.
func (r *SuperAdminRepo) GetByID(ctx context.Context, id string) (*entity.SuperAdmin, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByEmail obtiene un operador por email (login).
func (r *SuperAdminRepo) GetByEmail(ctx context.Context, email string) (*entity.SuperAdmin, error) {
	return r.getBy(ctx, `email = $1`, email)
}

func (r *SuperAdminRepo) getBy(ctx context.Context, where string, arg any) (*entity.SuperAdmin, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, is_active, created_at, updated_at FROM super_admins WHERE ` + where
	var a entity.SuperAdmin
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get super_admin: %w", err)
	}
	return &a, nil
}

// ── Planes ────────────────────────────────────────────────────────────────────

const planColumns = `id, name, description, monthly_price, yearly_price, user_limit, features,
	is_popular, is_active, created_at, updated_at`

// SubscriptionPlanRepo implementación del puerto SubscriptionPlanRepository sobre PostgreSQL.
type SubscriptionPlanRepo struct {
	q Querier
}

// NewSubscriptionPlanRepository construye el adaptador de persistencia para planes.
func NewSubscriptionPlanRepository(q Querier) *SubscriptionPlanRepo {
	return &SubscriptionPlanRepo{q: q}
}

// Create persiste un plan nuevo.
func (r *SubscriptionPlanRepo) Create(ctx context.Context, plan *entity.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (id, name, description, monthly_price, yearly_price, user_limit, features, is_popular, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.MonthlyPrice, plan.YearlyPrice,
		plan.UserLimit, plan.Features, plan.IsPopular, plan.IsActive, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription_plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *SubscriptionPlanRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByName obtiene un plan por nombre, case-insensitive.
func (r *SubscriptionPlanRepo) GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error) {
	return r.getBy(ctx, `lower(name) = lower($1)`, name)
}

func (r *SubscriptionPlanRepo) getBy(ctx context.Context, where string, arg any) (*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE ` + where
	var p entity.SubscriptionPlan
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.Description, &p.MonthlyPrice, &p.YearlyPrice, &p.UserLimit,
		&p.Features, &p.IsPopular, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription_plan: %w", err)
	}
	return &p, nil
}

// List lista todos los planes, primero los populares.
func (r *SubscriptionPlanRepo) List(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY is_popular DESC, monthly_price`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscription_plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionPlan
	for rows.Next() {
		var p entity.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.MonthlyPrice, &p.YearlyPrice,
			&p.UserLimit, &p.Features, &p.IsPopular, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription_plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un plan existente.
func (r *SubscriptionPlanRepo) Update(ctx context.Context, plan *entity.SubscriptionPlan) error {
	query := `
		UPDATE subscription_plans SET description = $2, monthly_price = $3, yearly_price = $4,
			user_limit = $5, features = $6, is_popular = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		plan.ID, plan.Description, plan.MonthlyPrice, plan.YearlyPrice, plan.UserLimit,
		plan.Features, plan.IsPopular, plan.IsActive, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription_plan: %w", err)
	}
	return nil
}

// Delete elimina un plan por ID.
func (r *SubscriptionPlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM subscription_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscription_plan: %w", err)
	}
	return nil
}
