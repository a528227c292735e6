package usecase

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// AnalyticsUseCase dashboards y agregados de la empresa.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository, userRepo repository.UserRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, userRepo: userRepo}
}

// CompanyDashboard agregados generales de la empresa.
func (uc *AnalyticsUseCase) CompanyDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardResponse, error) {
	dash, err := uc.analyticsRepo.CompanyDashboard(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyDashboardResponse{
		Users:       dto.DashboardUsers{Total: dash.TotalUsers, Active: dash.ActiveUsers},
		Projects:    dto.DashboardProjects{Total: dash.TotalProjects, Active: dash.ActiveProjects},
		Departments: dash.TotalDepartments,
		Sops:        dto.DashboardSops{Total: dash.TotalSops, Pending: dash.PendingSops},
	}, nil
}

// UserAnalytics agregados de tracking de un usuario de la empresa en un rango
// de fechas opcional. Los puntos reportados son el acumulador global.
func (uc *AnalyticsUseCase) UserAnalytics(ctx context.Context, userID, companyID string, q dto.TrackingHistoryQuery) (*dto.UserAnalyticsResponse, error) {
	user, err := uc.userRepo.GetByIDAndCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	from, to, err := parseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	stats, err := uc.analyticsRepo.UserTrackingStats(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.UserAnalyticsResponse{
		UserID:        userID,
		TotalMinutes:  stats.TotalMinutes,
		TotalSessions: stats.TotalSessions,
		Points:        user.Points,
	}, nil
}

// ProjectTime minutos acumulados por usuario dentro de un proyecto.
func (uc *AnalyticsUseCase) ProjectTime(ctx context.Context, projectID, companyID string) (*dto.ProjectTimeResponse, error) {
	byUser, err := uc.analyticsRepo.ProjectTimeByUser(ctx, projectID, companyID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProjectTimeResponse{ProjectID: projectID}
	for _, u := range byUser {
		resp.ByUser = append(resp.ByUser, dto.ProjectTimeUserItem{UserID: u.UserID, TotalMinutes: u.TotalMinutes})
	}
	return resp, nil
}
