package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.SubProjectRepository = (*SubProjectRepo)(nil)

const subProjectColumns = `sp.id, sp.title, sp.description, sp.project_id, sp.assigned_to_id,
	sp.created_by_id, sp.status, sp.points_value, sp.estimated_hours, sp.due_date, sp.created_at, sp.updated_at`

// SubProjectRepo implementación del puerto SubProjectRepository sobre PostgreSQL.
// El acotamiento por empresa se resuelve con un join explícito a projects.
type SubProjectRepo struct {
	q Querier
}

// NewSubProjectRepository construye el adaptador de persistencia para tareas.
func NewSubProjectRepository(q Querier) *SubProjectRepo {
	return &SubProjectRepo{q: q}
}

// Create persiste una tarea nueva.
func (r *SubProjectRepo) Create(ctx context.Context, subProject *entity.SubProject) error {
	query := `
		INSERT INTO sub_projects (id, title, description, project_id, assigned_to_id, created_by_id, status, points_value, estimated_hours, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		subProject.ID, subProject.Title, subProject.Description, subProject.ProjectID,
		subProject.AssignedToID, subProject.CreatedByID, subProject.Status,
		subProject.PointsValue, subProject.EstimatedHours, subProject.DueDate,
		subProject.CreatedAt, subProject.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sub_project: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID acotada a la empresa vía join con projects.
func (r *SubProjectRepo) GetByID(ctx context.Context, id, companyID string) (*entity.SubProject, error) {
	query := `
		SELECT ` + subProjectColumns + `
		FROM sub_projects sp
		JOIN projects p ON p.id = sp.project_id
		WHERE sp.id = $1 AND p.company_id = $2`
	var s entity.SubProject
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.Title, &s.Description, &s.ProjectID, &s.AssignedToID, &s.CreatedByID,
		&s.Status, &s.PointsValue, &s.EstimatedHours, &s.DueDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sub_project: %w", err)
	}
	return &s, nil
}

// Update actualiza una tarea existente.
func (r *SubProjectRepo) Update(ctx context.Context, subProject *entity.SubProject) error {
	query := `
		UPDATE sub_projects SET title = $2, description = $3, status = $4, points_value = $5,
			estimated_hours = $6, due_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		subProject.ID, subProject.Title, subProject.Description, subProject.Status,
		subProject.PointsValue, subProject.EstimatedHours, subProject.DueDate, subProject.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sub_project: %w", err)
	}
	return nil
}

// UpdateAssignee fija el asignado de la tarea.
func (r *SubProjectRepo) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sub_projects SET assigned_to_id = $2, updated_at = now() WHERE id = $1`,
		id, assigneeID,
	)
	if err != nil {
		return fmt.Errorf("update sub_project assignee: %w", err)
	}
	return nil
}

// ListByProject lista las tareas de un proyecto con filtros opcionales.
func (r *SubProjectRepo) ListByProject(ctx context.Context, projectID string, filter repository.SubProjectFilter) ([]*entity.SubProject, error) {
	query := `
		SELECT ` + subProjectColumns + `
		FROM sub_projects sp
		WHERE sp.project_id = $1`
	args := []any{projectID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND sp.status = $%d", len(args))
	}
	if filter.AssignedToID != "" {
		args = append(args, filter.AssignedToID)
		query += fmt.Sprintf(" AND sp.assigned_to_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (sp.title ILIKE $%d OR sp.description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY sp.created_at DESC"
	return r.list(ctx, query, args...)
}

// ListAssignedToUser lista las tareas asignadas a un usuario de la empresa.
func (r *SubProjectRepo) ListAssignedToUser(ctx context.Context, userID, companyID string) ([]*entity.SubProject, error) {
	query := `
		SELECT ` + subProjectColumns + `
		FROM sub_projects sp
		JOIN projects p ON p.id = sp.project_id
		WHERE sp.assigned_to_id = $1 AND p.company_id = $2
		ORDER BY sp.due_date NULLS LAST, sp.created_at DESC`
	return r.list(ctx, query, userID, companyID)
}

func (r *SubProjectRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SubProject, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sub_projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubProject
	for rows.Next() {
		var s entity.SubProject
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.ProjectID, &s.AssignedToID,
			&s.CreatedByID, &s.Status, &s.PointsValue, &s.EstimatedHours, &s.DueDate,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sub_project: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una tarea por ID.
func (r *SubProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sub_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sub_project: %w", err)
	}
	return nil
}
