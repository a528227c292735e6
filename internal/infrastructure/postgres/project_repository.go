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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)
var _ repository.ProjectMemberRepository = (*ProjectMemberRepo)(nil)

const projectColumns = `id, name, description, budget, status, company_id, project_lead_id,
	start_date, end_date, screen_monitoring_enabled, created_at, updated_at`

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste un proyecto nuevo.
func (r *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, description, budget, status, company_id, project_lead_id, start_date, end_date, screen_monitoring_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		project.ID, project.Name, project.Description, project.Budget, project.Status,
		project.CompanyID, project.ProjectLeadID, project.StartDate, project.EndDate,
		project.ScreenMonitoringEnabled, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID acotado a la empresa.
func (r *ProjectRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND company_id = $2`
	var p entity.Project
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Budget, &p.Status, &p.CompanyID,
		&p.ProjectLeadID, &p.StartDate, &p.EndDate, &p.ScreenMonitoringEnabled,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// Update actualiza un proyecto existente.
func (r *ProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, description = $3, budget = $4, status = $5,
			project_lead_id = $6, start_date = $7, end_date = $8, screen_monitoring_enabled = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		project.ID, project.Name, project.Description, project.Budget, project.Status,
		project.ProjectLeadID, project.StartDate, project.EndDate,
		project.ScreenMonitoringEnabled, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// ListByCompany lista los proyectos de la empresa.
func (r *ProjectRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Budget, &p.Status, &p.CompanyID,
			&p.ProjectLeadID, &p.StartDate, &p.EndDate, &p.ScreenMonitoringEnabled,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un proyecto por ID.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ── Membresías ────────────────────────────────────────────────────────────────

const memberColumns = `id, project_id, user_id, role, points_earned, joined_at`

// ProjectMemberRepo implementación del puerto ProjectMemberRepository sobre PostgreSQL.
type ProjectMemberRepo struct {
	q Querier
}

// NewProjectMemberRepository construye el adaptador de persistencia para membresías. Pasar pool o tx (Querier).
func NewProjectMemberRepository(q Querier) *ProjectMemberRepo {
	return &ProjectMemberRepo{q: q}
}

// Create persiste una membresía nueva. El par (project_id, user_id) es único.
func (r *ProjectMemberRepo) Create(ctx context.Context, member *entity.ProjectMember) error {
	query := `
		INSERT INTO project_members (id, project_id, user_id, role, points_earned, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		member.ID, member.ProjectID, member.UserID, member.Role, member.PointsEarned, member.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project member: %w", err)
	}
	return nil
}

// Get obtiene la membresía de un usuario en un proyecto.
func (r *ProjectMemberRepo) Get(ctx context.Context, projectID, userID string) (*entity.ProjectMember, error) {
	query := `SELECT ` + memberColumns + ` FROM project_members WHERE project_id = $1 AND user_id = $2`
	var m entity.ProjectMember
	err := r.q.QueryRow(ctx, query, projectID, userID).Scan(
		&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.PointsEarned, &m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project member: %w", err)
	}
	return &m, nil
}

// ListByProject lista las membresías de un proyecto.
func (r *ProjectMemberRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectMember, error) {
	query := `SELECT ` + memberColumns + ` FROM project_members WHERE project_id = $1 ORDER BY joined_at`
	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project members: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectMember
	for rows.Next() {
		var m entity.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.PointsEarned, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan project member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol de la membresía.
func (r *ProjectMemberRepo) UpdateRole(ctx context.Context, projectID, userID, role string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE project_members SET role = $3 WHERE project_id = $1 AND user_id = $2`,
		projectID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	return nil
}

// AddPoints incrementa points_earned de la membresía. Si el usuario no es
// miembro del proyecto no afecta filas: el acumulador global del usuario se
// incrementa igual por separado.
func (r *ProjectMemberRepo) AddPoints(ctx context.Context, projectID, userID string, points int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE project_members SET points_earned = points_earned + $3 WHERE project_id = $1 AND user_id = $2`,
		projectID, userID, points,
	)
	if err != nil {
		return fmt.Errorf("add member points: %w", err)
	}
	return nil
}

// Delete elimina la membresía.
func (r *ProjectMemberRepo) Delete(ctx context.Context, projectID, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete project member: %w", err)
	}
	return nil
}
