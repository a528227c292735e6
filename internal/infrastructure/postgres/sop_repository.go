package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.SopRepository = (*SopRepo)(nil)

const sopColumns = `id, title, description, type, file_url, thumbnail_url, duration, status,
	company_id, created_by_id, approved_by_id, approved_at, rejection_reason, view_count, tags, created_at, updated_at`

// SopRepo implementación del puerto SopRepository sobre PostgreSQL.
type SopRepo struct {
	q Querier
}

// NewSopRepository construye el adaptador de persistencia para SOPs.
func NewSopRepository(q Querier) *SopRepo {
	return &SopRepo{q: q}
}

// Create persiste un SOP nuevo.
func (r *SopRepo) Create(ctx context.Context, sop *entity.Sop) error {
	query := `
		INSERT INTO sops (id, title, description, type, file_url, thumbnail_url, duration, status, company_id, created_by_id, approved_by_id, approved_at, rejection_reason, view_count, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		sop.ID, sop.Title, sop.Description, sop.Type, sop.FileURL, sop.ThumbnailURL,
		sop.Duration, sop.Status, sop.CompanyID, sop.CreatedByID, sop.ApprovedByID,
		sop.ApprovedAt, sop.RejectionReason, sop.ViewCount, sop.Tags, sop.CreatedAt, sop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sop: %w", err)
	}
	return nil
}

// GetByID obtiene un SOP por ID acotado a la empresa.
func (r *SopRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Sop, error) {
	query := `SELECT ` + sopColumns + ` FROM sops WHERE id = $1 AND company_id = $2`
	var s entity.Sop
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.Title, &s.Description, &s.Type, &s.FileURL, &s.ThumbnailURL, &s.Duration,
		&s.Status, &s.CompanyID, &s.CreatedByID, &s.ApprovedByID, &s.ApprovedAt,
		&s.RejectionReason, &s.ViewCount, &s.Tags, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sop: %w", err)
	}
	return &s, nil
}

// Update actualiza un SOP existente (incluye transiciones de aprobación).
func (r *SopRepo) Update(ctx context.Context, sop *entity.Sop) error {
	query := `
		UPDATE sops SET title = $2, description = $3, file_url = $4, thumbnail_url = $5,
			duration = $6, status = $7, approved_by_id = $8, approved_at = $9,
			rejection_reason = $10, tags = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		sop.ID, sop.Title, sop.Description, sop.FileURL, sop.ThumbnailURL, sop.Duration,
		sop.Status, sop.ApprovedByID, sop.ApprovedAt, sop.RejectionReason, sop.Tags, sop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sop: %w", err)
	}
	return nil
}

// List lista los SOPs de la empresa con filtros opcionales.
func (r *SopRepo) List(ctx context.Context, companyID string, filter repository.SopFilter) ([]*entity.Sop, error) {
	query := `SELECT ` + sopColumns + ` FROM sops WHERE company_id = $1`
	args := []any{companyID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sop
	for rows.Next() {
		var s entity.Sop
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Type, &s.FileURL, &s.ThumbnailURL,
			&s.Duration, &s.Status, &s.CompanyID, &s.CreatedByID, &s.ApprovedByID, &s.ApprovedAt,
			&s.RejectionReason, &s.ViewCount, &s.Tags, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sop: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// IncrementViewCount incrementa el contador de vistas.
func (r *SopRepo) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE sops SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment sop views: %w", err)
	}
	return nil
}

// Stats agregados de SOPs de la empresa en una sola consulta por eje.
func (r *SopRepo) Stats(ctx context.Context, companyID string) (*repository.SopStats, error) {
	stats := &repository.SopStats{ByType: map[string]int{}}
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'APPROVED'),
			count(*) FILTER (WHERE status = 'PENDING_APPROVAL'),
			count(*) FILTER (WHERE status = 'REJECTED')
		FROM sops WHERE company_id = $1`, companyID,
	).Scan(&stats.Total, &stats.Approved, &stats.Pending, &stats.Rejected)
	if err != nil {
		return nil, fmt.Errorf("sop stats: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT type, count(*) FROM sops WHERE company_id = $1 GROUP BY type`, companyID)
	if err != nil {
		return nil, fmt.Errorf("sop stats by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sopType string
		var count int
		if err := rows.Scan(&sopType, &count); err != nil {
			return nil, fmt.Errorf("scan sop type count: %w", err)
		}
		stats.ByType[sopType] = count
	}
	return stats, rows.Err()
}

// Delete elimina un SOP por ID.
func (r *SopRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sop: %w", err)
	}
	return nil
}
