package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ActivityLogFilter filtros del listado de actividad.
type ActivityLogFilter struct {
	ActivityType string
	UserID       string
	From         *time.Time
	To           *time.Time
}

// ActivityTypeCount agregado por tipo de actividad.
type ActivityTypeCount struct {
	ActivityType string
	Count        int
}

// ActivityUserCount agregado por usuario.
type ActivityUserCount struct {
	UserID string
	Count  int
}

// ActivityLogRepository define el puerto para el log de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, companyID string, filter ActivityLogFilter, limit int) ([]*entity.ActivityLog, error)
	ListByUser(ctx context.Context, companyID, userID string, limit int) ([]*entity.ActivityLog, error)
	CountByType(ctx context.Context, companyID string) ([]ActivityTypeCount, error)
	TopUsers(ctx context.Context, companyID string, limit int) ([]ActivityUserCount, error)
	CountSince(ctx context.Context, companyID string, since time.Time) (int, error)
}
