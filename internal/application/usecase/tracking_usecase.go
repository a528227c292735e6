package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/internal/domain/tracking"
)

// ActiveSessionError señala que el usuario ya tiene un timer corriendo. Lleva
// la sesión existente para que el handler arme el payload del 409 y el cliente
// resincronice en lugar de perder estado.
type ActiveSessionError struct {
	Session        *entity.TimeTracking
	ElapsedMinutes int
}

func (e *ActiveSessionError) Error() string {
	return fmt.Sprintf("ya existe una sesión activa (%s)", e.Session.ID)
}

func (e *ActiveSessionError) Unwrap() error { return domain.ErrConflict }

// TrackingUseCase maneja el ciclo de vida de las sesiones de tracking y el
// otorgamiento de puntos al cierre.
type TrackingUseCase struct {
	trackingRepo   repository.TimeTrackingRepository
	subProjectRepo repository.SubProjectRepository
	projectRepo    repository.ProjectRepository
	memberRepo     repository.ProjectMemberRepository
	activityRepo   repository.ActivityLogRepository
	txRunner       repository.TxRunner
	now            func() time.Time
}

// NewTrackingUseCase construye el caso de uso. nowFn nil usa time.Now.
func NewTrackingUseCase(trackingRepo repository.TimeTrackingRepository, subProjectRepo repository.SubProjectRepository, projectRepo repository.ProjectRepository, memberRepo repository.ProjectMemberRepository, activityRepo repository.ActivityLogRepository, txRunner repository.TxRunner, nowFn func() time.Time) *TrackingUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &TrackingUseCase{
		trackingRepo:   trackingRepo,
		subProjectRepo: subProjectRepo,
		projectRepo:    projectRepo,
		memberRepo:     memberRepo,
		activityRepo:   activityRepo,
		txRunner:       txRunner,
		now:            nowFn,
	}
}

// Start abre una sesión sobre una tarea. Solo miembros del proyecto, su lead o
// admins de empresa pueden trackear sobre él. Si el usuario ya tiene un timer
// corriendo devuelve *ActiveSessionError con la sesión existente; la carrera
// entre la verificación y el insert la cierra el índice único parcial de la
// DB, cuya violación también se traduce al mismo error.
func (uc *TrackingUseCase) Start(ctx context.Context, userID, companyID, role string, in dto.StartTrackingRequest) (*dto.TrackingResponse, error) {
	subProject, err := uc.subProjectRepo.GetByID(ctx, in.SubProjectID, companyID)
	if err != nil {
		return nil, err
	}
	if subProject == nil {
		return nil, fmt.Errorf("tarea no encontrada: %w", domain.ErrNotFound)
	}
	if err := uc.canTrack(ctx, userID, companyID, role, subProject.ProjectID); err != nil {
		return nil, err
	}

	if active, err := uc.trackingRepo.GetActiveByUser(ctx, userID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, &ActiveSessionError{Session: active, ElapsedMinutes: active.ElapsedMinutes(uc.now())}
	}

	now := uc.now()
	session := &entity.TimeTracking{
		ID:           uuid.New().String(),
		UserID:       userID,
		SubProjectID: in.SubProjectID,
		StartTime:    now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.trackingRepo.Create(ctx, session); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			active, aerr := uc.trackingRepo.GetActiveByUser(ctx, userID)
			if aerr == nil && active != nil {
				return nil, &ActiveSessionError{Session: active, ElapsedMinutes: active.ElapsedMinutes(uc.now())}
			}
		}
		return nil, err
	}

	uc.logActivity(ctx, companyID, userID, entity.ActivityTimeTrackingStart,
		fmt.Sprintf("inició tracking sobre %q", subProject.Title),
		map[string]any{"sub_project_id": subProject.ID, "session_id": session.ID})

	return toTrackingResponse(session), nil
}

// canTrack verifica que el usuario pueda trackear sobre el proyecto: admins de
// empresa siempre; el resto necesita membresía (cualquier rol) o ser el lead
// designado del proyecto.
func (uc *TrackingUseCase) canTrack(ctx context.Context, userID, companyID, role, projectID string) error {
	if role == entity.RoleCompanyAdmin || role == entity.RoleQCAdmin {
		return nil
	}
	member, err := uc.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if member != nil {
		return nil
	}
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return err
	}
	if project != nil && project.ProjectLeadID != nil && *project.ProjectLeadID == userID {
		return nil
	}
	return fmt.Errorf("no eres miembro del proyecto: %w", domain.ErrForbidden)
}

// Stop cierra la sesión indicada del usuario: fija end_time y duración,
// calcula puntos y los acredita al acumulador global del usuario y al contador
// de la membresía del proyecto, todo en una transacción. Una sesión ya cerrada
// no se encuentra (Stop solo ve filas activas), así que una doble invocación
// devuelve not-found y nunca duplica puntos.
func (uc *TrackingUseCase) Stop(ctx context.Context, userID, companyID, sessionID string, in dto.StopTrackingRequest) (*dto.StopTrackingResponse, error) {
	return uc.stop(ctx, userID, companyID, sessionID, in.Notes)
}

// StopActive cierra la sesión activa del usuario sin conocer su id (útil para
// el cliente de escritorio tras reconectar).
func (uc *TrackingUseCase) StopActive(ctx context.Context, userID, companyID string, in dto.StopTrackingRequest) (*dto.StopTrackingResponse, error) {
	return uc.stop(ctx, userID, companyID, "", in.Notes)
}

func (uc *TrackingUseCase) stop(ctx context.Context, userID, companyID, sessionID, notes string) (*dto.StopTrackingResponse, error) {
	var out *dto.StopTrackingResponse
	err := uc.txRunner.WithinTx(ctx, func(r repository.TxRepositories) error {
		active, err := r.TimeTrackings.GetActiveSession(ctx, sessionID, userID)
		if err != nil {
			return err
		}
		if active == nil || active.Tracking.UserID != userID {
			return fmt.Errorf("no hay sesión activa: %w", domain.ErrNotFound)
		}

		session := active.Tracking
		endTime := uc.now()
		duration := session.ElapsedMinutes(endTime)
		points := tracking.PointsForDuration(duration)

		if err := r.TimeTrackings.Stop(ctx, session.ID, endTime, duration, notes); err != nil {
			return err
		}
		if points > 0 {
			if err := r.Users.AddPoints(ctx, userID, points); err != nil {
				return err
			}
			if err := r.ProjectMembers.AddPoints(ctx, active.ProjectID, userID, points); err != nil {
				return err
			}
		}

		session.EndTime = &endTime
		session.DurationMinutes = duration
		session.Notes = notes
		session.IsActive = false
		out = &dto.StopTrackingResponse{
			Tracking:     *toTrackingResponse(&session),
			PointsEarned: points,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logActivity(ctx, companyID, userID, entity.ActivityTimeTrackingEnd,
		fmt.Sprintf("detuvo tracking (%d min, %d puntos)", out.Tracking.DurationMinutes, out.PointsEarned),
		map[string]any{"session_id": out.Tracking.ID})

	return out, nil
}

// logActivity registra la actividad sin afectar la operación principal.
func (uc *TrackingUseCase) logActivity(ctx context.Context, companyID, userID, activityType, description string, metadata map[string]any) {
	err := uc.activityRepo.Create(ctx, &entity.ActivityLog{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		UserID:       &userID,
		ActivityType: activityType,
		Description:  description,
		Metadata:     metadata,
		CreatedAt:    uc.now(),
	})
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID).Str("type", activityType).Msg("no se pudo registrar la actividad")
	}
}

// Active devuelve el timer corriendo del usuario, si lo hay, con los minutos
// transcurridos calculados al momento de la lectura.
func (uc *TrackingUseCase) Active(ctx context.Context, userID string) (*dto.ActiveTimerResponse, error) {
	session, err := uc.trackingRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &dto.ActiveTimerResponse{Active: false}, nil
	}
	return &dto.ActiveTimerResponse{
		Active: true,
		Timer: &dto.ActiveTimer{
			ID:             session.ID,
			SubProjectID:   session.SubProjectID,
			StartTime:      session.StartTime,
			ElapsedMinutes: session.ElapsedMinutes(uc.now()),
		},
	}, nil
}

// AddScreenshot agrega la URL de una captura a la sesión activa del usuario.
func (uc *TrackingUseCase) AddScreenshot(ctx context.Context, userID string, in dto.AddScreenshotRequest) (*dto.TrackingResponse, error) {
	session, err := uc.trackingRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("no hay sesión activa: %w", domain.ErrNotFound)
	}
	if err := uc.trackingRepo.AppendScreenshot(ctx, session.ID, in.ScreenshotURL); err != nil {
		return nil, err
	}
	session.Screenshots = append(session.Screenshots, in.ScreenshotURL)
	return toTrackingResponse(session), nil
}

// History lista las sesiones del usuario en un rango de fechas opcional
// (end_date es inclusivo: cubre hasta el final de ese día).
func (uc *TrackingUseCase) History(ctx context.Context, userID string, q dto.TrackingHistoryQuery) ([]dto.TrackingResponse, error) {
	from, to, err := parseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.trackingRepo.History(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TrackingResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTrackingResponse(t))
	}
	return items, nil
}

// ProjectSessions lista todas las sesiones registradas sobre tareas de un
// proyecto de la empresa.
func (uc *TrackingUseCase) ProjectSessions(ctx context.Context, projectID, companyID string) ([]dto.TrackingResponse, error) {
	list, err := uc.trackingRepo.ListByProject(ctx, projectID, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TrackingResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTrackingResponse(t))
	}
	return items, nil
}

// parseDateRange interpreta fechas YYYY-MM-DD; la fecha final se corre al día
// siguiente para que el rango sea inclusivo.
func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date inválida: %w", domain.ErrInvalidInput)
		}
		from = &t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date inválida: %w", domain.ErrInvalidInput)
		}
		next := t.Add(24 * time.Hour)
		to = &next
	}
	return from, to, nil
}

func toTrackingResponse(t *entity.TimeTracking) *dto.TrackingResponse {
	if t == nil {
		return nil
	}
	return &dto.TrackingResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		SubProjectID:    t.SubProjectID,
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		DurationMinutes: t.DurationMinutes,
		Notes:           t.Notes,
		Screenshots:     t.Screenshots,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
	}
}
