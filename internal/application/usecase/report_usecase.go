package usecase

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// TimeReportPDFGenerator puerto de generación del reporte de horas en PDF.
// La implementación vive en infrastructure.
type TimeReportPDFGenerator interface {
	GenerateTimeReport(ctx context.Context, data *TimeReportData) ([]byte, error)
}

// TimeReportData todo lo que necesita el reporte ya resuelto: el generador no
// consulta nada.
type TimeReportData struct {
	Company      *entity.Company
	User         *entity.User
	Sessions     []*entity.TimeTracking
	TotalMinutes int
	From         *time.Time
	To           *time.Time
}

// ReportUseCase exporta el reporte de horas de un usuario como PDF.
type ReportUseCase struct {
	userRepo     repository.UserRepository
	companyRepo  repository.CompanyRepository
	trackingRepo repository.TimeTrackingRepository
	pdfGenerator TimeReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, trackingRepo repository.TimeTrackingRepository, pdfGenerator TimeReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		trackingRepo: trackingRepo,
		pdfGenerator: pdfGenerator,
	}
}

// UserTimeReport genera el PDF con las sesiones cerradas de un usuario de la
// empresa en un rango de fechas opcional.
func (uc *ReportUseCase) UserTimeReport(ctx context.Context, userID, companyID string, q dto.TrackingHistoryQuery) ([]byte, error) {
	user, err := uc.userRepo.GetByIDAndCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	from, to, err := parseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	sessions, err := uc.trackingRepo.History(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	closed := make([]*entity.TimeTracking, 0, len(sessions))
	total := 0
	for _, s := range sessions {
		if s.IsActive {
			continue
		}
		closed = append(closed, s)
		total += s.DurationMinutes
	}
	return uc.pdfGenerator.GenerateTimeReport(ctx, &TimeReportData{
		Company:      company,
		User:         user,
		Sessions:     closed,
		TotalMinutes: total,
		From:         from,
		To:           to,
	})
}
