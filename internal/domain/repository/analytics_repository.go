package repository

import (
	"context"
	"time"
)

// CompanyDashboard agregados del dashboard por empresa.
type CompanyDashboard struct {
	TotalUsers       int
	ActiveUsers      int
	TotalProjects    int
	ActiveProjects   int // status IN_PROGRESS
	TotalDepartments int
	TotalSops        int
	PendingSops      int
}

// UserTrackingStats agregados de tracking de un usuario en un período.
// Los puntos no se agregan aquí: el acumulador global vive en users.points.
type UserTrackingStats struct {
	TotalMinutes  int
	TotalSessions int
}

// ProjectUserMinutes minutos acumulados por usuario dentro de un proyecto.
type ProjectUserMinutes struct {
	UserID       string
	TotalMinutes int
}

// PlatformStats agregados globales para la consola superadmin.
type PlatformStats struct {
	CompaniesByStatus map[string]int
	TotalCompanies    int
	TotalUsers        int
	TotalProjects     int
}

// AnalyticsRepository concentra las consultas de agregación: cada operación
// declara exactamente los joins y campos que necesita (sin N+1 escondidos).
type AnalyticsRepository interface {
	CompanyDashboard(ctx context.Context, companyID string) (*CompanyDashboard, error)
	UserTrackingStats(ctx context.Context, userID string, from, to *time.Time) (*UserTrackingStats, error)
	ProjectTimeByUser(ctx context.Context, projectID, companyID string) ([]ProjectUserMinutes, error)
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}
