package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación del puerto AnalyticsRepository sobre PostgreSQL.
// Cada operación declara sus joins y agregaciones explícitamente.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de consultas de agregación.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CompanyDashboard agregados del dashboard de la empresa en una sola consulta.
func (r *AnalyticsRepo) CompanyDashboard(ctx context.Context, companyID string) (*repository.CompanyDashboard, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users WHERE company_id = $1),
			(SELECT count(*) FROM users WHERE company_id = $1 AND is_active),
			(SELECT count(*) FROM projects WHERE company_id = $1),
			(SELECT count(*) FROM projects WHERE company_id = $1 AND status = 'IN_PROGRESS'),
			(SELECT count(*) FROM departments WHERE company_id = $1),
			(SELECT count(*) FROM sops WHERE company_id = $1),
			(SELECT count(*) FROM sops WHERE company_id = $1 AND status = 'PENDING_APPROVAL')`
	var d repository.CompanyDashboard
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&d.TotalUsers, &d.ActiveUsers, &d.TotalProjects, &d.ActiveProjects,
		&d.TotalDepartments, &d.TotalSops, &d.PendingSops,
	)
	if err != nil {
		return nil, fmt.Errorf("company dashboard: %w", err)
	}
	return &d, nil
}

// UserTrackingStats minutos y sesiones cerradas de un usuario en un período.
func (r *AnalyticsRepo) UserTrackingStats(ctx context.Context, userID string, from, to *time.Time) (*repository.UserTrackingStats, error) {
	query := `
		SELECT coalesce(sum(duration_minutes), 0), count(*)
		FROM time_trackings
		WHERE user_id = $1 AND NOT is_active`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND start_time < $%d", len(args))
	}
	var s repository.UserTrackingStats
	if err := r.q.QueryRow(ctx, query, args...).Scan(&s.TotalMinutes, &s.TotalSessions); err != nil {
		return nil, fmt.Errorf("user tracking stats: %w", err)
	}
	return &s, nil
}

// ProjectTimeByUser minutos acumulados por usuario dentro de un proyecto.
func (r *AnalyticsRepo) ProjectTimeByUser(ctx context.Context, projectID, companyID string) ([]repository.ProjectUserMinutes, error) {
	query := `
		SELECT t.user_id, coalesce(sum(t.duration_minutes), 0)
		FROM time_trackings t
		JOIN sub_projects sp ON sp.id = t.sub_project_id
		JOIN projects p ON p.id = sp.project_id
		WHERE sp.project_id = $1 AND p.company_id = $2 AND NOT t.is_active
		GROUP BY t.user_id
		ORDER BY sum(t.duration_minutes) DESC`
	rows, err := r.q.Query(ctx, query, projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("project time by user: %w", err)
	}
	defer rows.Close()
	var list []repository.ProjectUserMinutes
	for rows.Next() {
		var m repository.ProjectUserMinutes
		if err := rows.Scan(&m.UserID, &m.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scan project user minutes: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// PlatformStats agregados globales para la consola superadmin.
func (r *AnalyticsRepo) PlatformStats(ctx context.Context) (*repository.PlatformStats, error) {
	stats := &repository.PlatformStats{CompaniesByStatus: map[string]int{}}
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM companies),
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM projects)`,
	).Scan(&stats.TotalCompanies, &stats.TotalUsers, &stats.TotalProjects)
	if err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT subscription_status, count(*) FROM companies GROUP BY subscription_status`)
	if err != nil {
		return nil, fmt.Errorf("companies by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.CompaniesByStatus[status] = count
	}
	return stats, rows.Err()
}
