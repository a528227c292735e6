package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	// AddPoints incrementa el acumulador global de puntos (nunca decrece).
	AddPoints(ctx context.Context, id string, points int) error
	// AssignDepartment fija department_id para un conjunto de usuarios de la empresa.
	AssignDepartment(ctx context.Context, companyID string, userIDs []string, departmentID string) error
	// ClearDepartment desasocia a todos los usuarios de un departamento (antes de borrarlo).
	ClearDepartment(ctx context.Context, departmentID string) error
}
