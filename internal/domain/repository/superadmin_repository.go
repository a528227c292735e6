package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// SuperAdminRepository define el puerto para operadores de plataforma.
type SuperAdminRepository interface {
	Create(ctx context.Context, admin *entity.SuperAdmin) error
	GetByID(ctx context.Context, id string) (*entity.SuperAdmin, error)
	GetByEmail(ctx context.Context, email string) (*entity.SuperAdmin, error)
}

// SubscriptionPlanRepository define el puerto para planes de suscripción.
type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *entity.SubscriptionPlan) error
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error)
	// GetByName compara case-insensitive (unicidad de nombre de plan).
	GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error)
	List(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	Update(ctx context.Context, plan *entity.SubscriptionPlan) error
	Delete(ctx context.Context, id string) error
}
