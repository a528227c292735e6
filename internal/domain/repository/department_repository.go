package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// DepartmentRepository define el puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	GetByID(ctx context.Context, id, companyID string) (*entity.Department, error)
	Update(ctx context.Context, department *entity.Department) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Department, error)
	Delete(ctx context.Context, id string) error
}
