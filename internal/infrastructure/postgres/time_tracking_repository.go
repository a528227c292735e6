package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.TimeTrackingRepository = (*TimeTrackingRepo)(nil)

const trackingColumns = `t.id, t.user_id, t.sub_project_id, t.start_time, t.end_time,
	t.duration_minutes, t.notes, t.screenshots, t.is_active, t.created_at, t.updated_at`

// TimeTrackingRepo implementación del puerto TimeTrackingRepository sobre
// PostgreSQL (usable con pool o tx). El índice único parcial
// ux_time_trackings_active_user respalda la sesión activa única por usuario.
type TimeTrackingRepo struct {
	q Querier
}

// NewTimeTrackingRepository construye el adaptador de persistencia para sesiones. Pasar pool o tx (Querier).
func NewTimeTrackingRepository(q Querier) *TimeTrackingRepo {
	return &TimeTrackingRepo{q: q}
}

// Create persiste una sesión nueva. La violación del índice único parcial se
// traduce a domain.ErrConflict: el usuario ya tiene un timer corriendo.
func (r *TimeTrackingRepo) Create(ctx context.Context, tracking *entity.TimeTracking) error {
	query := `
		INSERT INTO time_trackings (id, user_id, sub_project_id, start_time, end_time, duration_minutes, notes, screenshots, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		tracking.ID, tracking.UserID, tracking.SubProjectID, tracking.StartTime,
		tracking.EndTime, tracking.DurationMinutes, tracking.Notes, tracking.Screenshots,
		tracking.IsActive, tracking.CreatedAt, tracking.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert time_tracking: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *TimeTrackingRepo) GetByID(ctx context.Context, id string) (*entity.TimeTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM time_trackings t WHERE t.id = $1`
	return r.getOne(ctx, query, id)
}

// GetActiveByUser obtiene la sesión activa del usuario, si existe.
func (r *TimeTrackingRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.TimeTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM time_trackings t WHERE t.user_id = $1 AND t.is_active`
	return r.getOne(ctx, query, userID)
}

func (r *TimeTrackingRepo) getOne(ctx context.Context, query string, args ...any) (*entity.TimeTracking, error) {
	var t entity.TimeTracking
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.UserID, &t.SubProjectID, &t.StartTime, &t.EndTime, &t.DurationMinutes,
		&t.Notes, &t.Screenshots, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time_tracking: %w", err)
	}
	return &t, nil
}

// GetActiveSession localiza la fila activa por id (o la activa del usuario si
// id es "") junto con el project_id de su tarea, con un join explícito.
func (r *TimeTrackingRepo) GetActiveSession(ctx context.Context, id, userID string) (*repository.ActiveSession, error) {
	query := `
		SELECT ` + trackingColumns + `, sp.project_id
		FROM time_trackings t
		JOIN sub_projects sp ON sp.id = t.sub_project_id
		WHERE t.is_active AND `
	var arg any
	if id != "" {
		query += `t.id = $1`
		arg = id
	} else {
		query += `t.user_id = $1`
		arg = userID
	}
	var s repository.ActiveSession
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.Tracking.ID, &s.Tracking.UserID, &s.Tracking.SubProjectID, &s.Tracking.StartTime,
		&s.Tracking.EndTime, &s.Tracking.DurationMinutes, &s.Tracking.Notes,
		&s.Tracking.Screenshots, &s.Tracking.IsActive, &s.Tracking.CreatedAt,
		&s.Tracking.UpdatedAt, &s.ProjectID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return &s, nil
}

// Stop fija end_time, duration_minutes y notes, y apaga is_active. Solo afecta
// filas activas: una segunda invocación no encuentra nada.
func (r *TimeTrackingRepo) Stop(ctx context.Context, id string, endTime time.Time, durationMinutes int, notes string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE time_trackings SET end_time = $2, duration_minutes = $3, notes = $4, is_active = false, updated_at = now()
		 WHERE id = $1 AND is_active`,
		id, endTime, durationMinutes, notes,
	)
	if err != nil {
		return fmt.Errorf("stop time_tracking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendScreenshot agrega una URL al arreglo de capturas de la sesión.
func (r *TimeTrackingRepo) AppendScreenshot(ctx context.Context, id, url string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE time_trackings SET screenshots = array_append(screenshots, $2), updated_at = now() WHERE id = $1`,
		id, url,
	)
	if err != nil {
		return fmt.Errorf("append screenshot: %w", err)
	}
	return nil
}

// History lista las sesiones del usuario en un rango opcional, más recientes primero.
func (r *TimeTrackingRepo) History(ctx context.Context, userID string, from, to *time.Time) ([]*entity.TimeTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM time_trackings t WHERE t.user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND t.start_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND t.start_time < $%d", len(args))
	}
	query += " ORDER BY t.start_time DESC"
	return r.list(ctx, query, args...)
}

// ListByProject lista todas las sesiones sobre tareas de un proyecto de la empresa.
func (r *TimeTrackingRepo) ListByProject(ctx context.Context, projectID, companyID string) ([]*entity.TimeTracking, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM time_trackings t
		JOIN sub_projects sp ON sp.id = t.sub_project_id
		JOIN projects p ON p.id = sp.project_id
		WHERE sp.project_id = $1 AND p.company_id = $2
		ORDER BY t.start_time DESC`
	return r.list(ctx, query, projectID, companyID)
}

func (r *TimeTrackingRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TimeTracking, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time_trackings: %w", err)
	}
	defer rows.Close()
	var list []*entity.TimeTracking
	for rows.Next() {
		var t entity.TimeTracking
		if err := rows.Scan(&t.ID, &t.UserID, &t.SubProjectID, &t.StartTime, &t.EndTime,
			&t.DurationMinutes, &t.Notes, &t.Screenshots, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan time_tracking: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
