package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del puerto ActivityLogRepository sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador de persistencia para el log de actividad.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create persiste una entrada de actividad.
func (r *ActivityLogRepo) Create(ctx context.Context, logEntry *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, company_id, user_id, activity_type, description, metadata, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		logEntry.ID, logEntry.CompanyID, logEntry.UserID, logEntry.ActivityType,
		logEntry.Description, logEntry.Metadata, logEntry.IPAddress, logEntry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity_log: %w", err)
	}
	return nil
}

// List lista la actividad de la empresa con filtros, más reciente primero.
func (r *ActivityLogRepo) List(ctx context.Context, companyID string, filter repository.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, company_id, user_id, activity_type, description, metadata, ip_address, created_at
		FROM activity_logs WHERE company_id = $1`
	args := []any{companyID}
	if filter.ActivityType != "" {
		args = append(args, filter.ActivityType)
		query += fmt.Sprintf(" AND activity_type = $%d", len(args))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	return r.list(ctx, query, args...)
}

// ListByUser lista la actividad de un usuario de la empresa.
func (r *ActivityLogRepo) ListByUser(ctx context.Context, companyID, userID string, limit int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, company_id, user_id, activity_type, description, metadata, ip_address, created_at
		FROM activity_logs WHERE company_id = $1 AND user_id = $2
		ORDER BY created_at DESC LIMIT $3`
	return r.list(ctx, query, companyID, userID, limit)
}

func (r *ActivityLogRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ActivityLog, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity_logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var a entity.ActivityLog
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.UserID, &a.ActivityType, &a.Description,
			&a.Metadata, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity_log: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByType agrega la actividad de la empresa por tipo.
func (r *ActivityLogRepo) CountByType(ctx context.Context, companyID string) ([]repository.ActivityTypeCount, error) {
	rows, err := r.q.Query(ctx,
		`SELECT activity_type, count(*) FROM activity_logs WHERE company_id = $1 GROUP BY activity_type ORDER BY count(*) DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()
	var list []repository.ActivityTypeCount
	for rows.Next() {
		var c repository.ActivityTypeCount
		if err := rows.Scan(&c.ActivityType, &c.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// TopUsers agrega la actividad por usuario, descendente.
func (r *ActivityLogRepo) TopUsers(ctx context.Context, companyID string, limit int) ([]repository.ActivityUserCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT user_id, count(*) FROM activity_logs
		WHERE company_id = $1 AND user_id IS NOT NULL
		GROUP BY user_id ORDER BY count(*) DESC LIMIT $2`,
		companyID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	defer rows.Close()
	var list []repository.ActivityUserCount
	for rows.Next() {
		var c repository.ActivityUserCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, fmt.Errorf("scan user count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountSince cuenta la actividad de la empresa desde un instante.
func (r *ActivityLogRepo) CountSince(ctx context.Context, companyID string, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM activity_logs WHERE company_id = $1 AND created_at >= $2`,
		companyID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count since: %w", err)
	}
	return count, nil
}
