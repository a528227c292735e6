package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (DIP).
// Los métodos reciben companyID explícito para que el acotamiento por tenant
// sea auditable operación por operación (sin "include" implícitos).
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id, companyID string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectMemberRepository define el puerto para las membresías de proyecto.
type ProjectMemberRepository interface {
	Create(ctx context.Context, member *entity.ProjectMember) error
	Get(ctx context.Context, projectID, userID string) (*entity.ProjectMember, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectMember, error)
	UpdateRole(ctx context.Context, projectID, userID, role string) error
	// AddPoints incrementa points_earned de la membresía (contador por proyecto).
	AddPoints(ctx context.Context, projectID, userID string, points int) error
	Delete(ctx context.Context, projectID, userID string) error
}
