package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	GetByCode(ctx context.Context, companyCode string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// UpdateSubscriptionStatus sobreescribe el estado de suscripción sin
	// compare-and-swap: el estado destino es fijo, por lo que la operación es
	// idempotente bajo requests concurrentes (transición perezosa ACTIVE→EXPIRED).
	UpdateSubscriptionStatus(ctx context.Context, id, status string) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
