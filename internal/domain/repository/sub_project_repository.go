package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// SubProjectFilter filtros de listado de tareas.
type SubProjectFilter struct {
	Status       string
	Search       string // busca en título y descripción (ILIKE)
	AssignedToID string
}

// SubProjectRepository define el puerto de persistencia para SubProject (DIP).
// GetByID acota por empresa vía join con projects: una tarea de otra empresa
// simplemente no existe para el caller.
type SubProjectRepository interface {
	Create(ctx context.Context, subProject *entity.SubProject) error
	GetByID(ctx context.Context, id, companyID string) (*entity.SubProject, error)
	Update(ctx context.Context, subProject *entity.SubProject) error
	UpdateAssignee(ctx context.Context, id string, assigneeID *string) error
	ListByProject(ctx context.Context, projectID string, filter SubProjectFilter) ([]*entity.SubProject, error)
	ListAssignedToUser(ctx context.Context, userID, companyID string) ([]*entity.SubProject, error)
	Delete(ctx context.Context, id string) error
}
