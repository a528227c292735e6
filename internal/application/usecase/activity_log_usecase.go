package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

const activityListLimit = 100

// ActivityLogUseCase registro y consulta del log de actividad de la empresa.
type ActivityLogUseCase struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityLogUseCase construye el caso de uso.
func NewActivityLogUseCase(activityRepo repository.ActivityLogRepository) *ActivityLogUseCase {
	return &ActivityLogUseCase{activityRepo: activityRepo}
}

// Record registra una entrada de actividad.
func (uc *ActivityLogUseCase) Record(ctx context.Context, companyID string, userID *string, activityType, description, ipAddress string, metadata map[string]any) error {
	return uc.activityRepo.Create(ctx, &entity.ActivityLog{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		Metadata:     metadata,
		IPAddress:    ipAddress,
		CreatedAt:    time.Now(),
	})
}

// List lista la actividad de la empresa con filtros, más reciente primero.
func (uc *ActivityLogUseCase) List(ctx context.Context, companyID string, q dto.ActivityLogQuery) ([]dto.ActivityLogResponse, error) {
	from, to, err := parseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.activityRepo.List(ctx, companyID, repository.ActivityLogFilter{
		ActivityType: q.ActivityType,
		UserID:       q.UserID,
		From:         from,
		To:           to,
	}, activityListLimit)
	if err != nil {
		return nil, err
	}
	return toActivityLogResponses(list), nil
}

// ListByUser lista la actividad de un usuario de la empresa.
func (uc *ActivityLogUseCase) ListByUser(ctx context.Context, companyID, userID string) ([]dto.ActivityLogResponse, error) {
	list, err := uc.activityRepo.ListByUser(ctx, companyID, userID, activityListLimit)
	if err != nil {
		return nil, err
	}
	return toActivityLogResponses(list), nil
}

// Stats agregados de actividad: por tipo, usuarios más activos y volumen de
// las últimas 24 horas.
func (uc *ActivityLogUseCase) Stats(ctx context.Context, companyID string) (*dto.ActivityStatsResponse, error) {
	byType, err := uc.activityRepo.CountByType(ctx, companyID)
	if err != nil {
		return nil, err
	}
	topUsers, err := uc.activityRepo.TopUsers(ctx, companyID, 10)
	if err != nil {
		return nil, err
	}
	last24h, err := uc.activityRepo.CountSince(ctx, companyID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	resp := &dto.ActivityStatsResponse{Last24Hours: last24h}
	for _, c := range byType {
		resp.ByType = append(resp.ByType, dto.ActivityTypeCountDTO{Type: c.ActivityType, Count: c.Count})
	}
	for _, u := range topUsers {
		resp.TopUsers = append(resp.TopUsers, dto.ActivityUserCountDTO{UserID: u.UserID, Count: u.Count})
	}
	return resp, nil
}

func toActivityLogResponses(list []*entity.ActivityLog) []dto.ActivityLogResponse {
	items := make([]dto.ActivityLogResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ActivityLogResponse{
			ID:           a.ID,
			CompanyID:    a.CompanyID,
			UserID:       a.UserID,
			ActivityType: a.ActivityType,
			Description:  a.Description,
			Metadata:     a.Metadata,
			IPAddress:    a.IPAddress,
			CreatedAt:    a.CreatedAt,
		})
	}
	return items
}
