package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ActiveSession es la proyección que necesita el cierre de sesión: la fila
// activa más el proyecto dueño de la tarea (para el contador de puntos de la
// membresía). Se obtiene con un join explícito, no con carga implícita.
type ActiveSession struct {
	Tracking  entity.TimeTracking
	ProjectID string
}

// TimeTrackingRepository define el puerto de persistencia para TimeTracking.
//
// La unicidad de la sesión activa por usuario la garantiza la DB con un índice
// único parcial (user_id WHERE is_active); Create debe traducir la violación
// 23505 a domain.ErrConflict para que el use case recupere la sesión existente.
type TimeTrackingRepository interface {
	Create(ctx context.Context, tracking *entity.TimeTracking) error
	GetByID(ctx context.Context, id string) (*entity.TimeTracking, error)
	GetActiveByUser(ctx context.Context, userID string) (*entity.TimeTracking, error)
	// GetActiveSession localiza la fila activa por id (o la activa del usuario
	// si id es "") junto con el project_id de su tarea.
	GetActiveSession(ctx context.Context, id, userID string) (*ActiveSession, error)
	// Stop fija end_time, duration_minutes, notes y apaga is_active. Solo
	// afecta filas activas: una segunda invocación no encuentra nada.
	Stop(ctx context.Context, id string, endTime time.Time, durationMinutes int, notes string) error
	AppendScreenshot(ctx context.Context, id, url string) error
	History(ctx context.Context, userID string, from, to *time.Time) ([]*entity.TimeTracking, error)
	ListByProject(ctx context.Context, projectID, companyID string) ([]*entity.TimeTracking, error)
}
