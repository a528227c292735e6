package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// SopUseCase ciclo de vida de los SOPs: creación, flujo de aprobación y
// consulta. Aprobar o rechazar exige rol QC_ADMIN o COMPANY_ADMIN.
type SopUseCase struct {
	sopRepo          repository.SopRepository
	notificationRepo repository.NotificationRepository
	activityRepo     repository.ActivityLogRepository
}

// NewSopUseCase construye el caso de uso.
func NewSopUseCase(sopRepo repository.SopRepository, notificationRepo repository.NotificationRepository, activityRepo repository.ActivityLogRepository) *SopUseCase {
	return &SopUseCase{sopRepo: sopRepo, notificationRepo: notificationRepo, activityRepo: activityRepo}
}

// Create crea un SOP en PENDING_APPROVAL.
func (uc *SopUseCase) Create(ctx context.Context, companyID, callerID string, in dto.CreateSopRequest) (*dto.SopResponse, error) {
	now := time.Now()
	sop := &entity.Sop{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Description:  in.Description,
		Type:         in.Type,
		FileURL:      in.FileURL,
		ThumbnailURL: in.ThumbnailURL,
		Duration:     in.Duration,
		Status:       entity.SopPendingApproval,
		CompanyID:    companyID,
		CreatedByID:  callerID,
		Tags:         in.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.sopRepo.Create(ctx, sop); err != nil {
		return nil, err
	}
	uc.logActivity(ctx, companyID, callerID, entity.ActivitySopCreated,
		"SOP creado: "+sop.Title, map[string]any{"sop_id": sop.ID})
	return toSopResponse(sop), nil
}

// GetByID obtiene un SOP e incrementa su contador de vistas.
func (uc *SopUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.SopResponse, error) {
	sop, err := uc.sopRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if sop == nil {
		return nil, nil
	}
	if err := uc.sopRepo.IncrementViewCount(ctx, id); err != nil {
		log.Error().Err(err).Str("sop_id", id).Msg("no se pudo incrementar view_count")
	} else {
		sop.ViewCount++
	}
	return toSopResponse(sop), nil
}

// List lista los SOPs de la empresa con filtros.
func (uc *SopUseCase) List(ctx context.Context, companyID string, q dto.SopQuery) ([]dto.SopResponse, error) {
	list, err := uc.sopRepo.List(ctx, companyID, repository.SopFilter{
		Type:   q.Type,
		Status: q.Status,
		Search: q.Search,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSopResponse(s))
	}
	return items, nil
}

// Update actualiza un SOP. Solo el creador o un admin; editar un SOP aprobado
// lo devuelve a PENDING_APPROVAL.
func (uc *SopUseCase) Update(ctx context.Context, id, companyID, callerID, callerRole string, in dto.UpdateSopRequest) (*dto.SopResponse, error) {
	sop, err := uc.sopRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if sop == nil {
		return nil, nil
	}
	if sop.CreatedByID != callerID && !isCompanyAdmin(callerRole) {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		sop.Title = *in.Title
	}
	if in.Description != nil {
		sop.Description = *in.Description
	}
	if in.FileURL != nil {
		sop.FileURL = *in.FileURL
	}
	if in.ThumbnailURL != nil {
		sop.ThumbnailURL = *in.ThumbnailURL
	}
	if in.Duration != nil {
		sop.Duration = in.Duration
	}
	if len(in.Tags) > 0 {
		sop.Tags = in.Tags
	}
	if sop.Status == entity.SopApproved {
		sop.Status = entity.SopPendingApproval
		sop.ApprovedByID = nil
		sop.ApprovedAt = nil
	}
	sop.UpdatedAt = time.Now()
	if err := uc.sopRepo.Update(ctx, sop); err != nil {
		return nil, err
	}
	return toSopResponse(sop), nil
}

// Approve aprueba un SOP pendiente y notifica al creador.
func (uc *SopUseCase) Approve(ctx context.Context, id, companyID, callerID, callerRole string) (*dto.SopResponse, error) {
	sop, err := uc.loadForReview(ctx, id, companyID, callerRole)
	if err != nil {
		return nil, err
	}
	if sop == nil {
		return nil, nil
	}
	now := time.Now()
	sop.Status = entity.SopApproved
	sop.ApprovedByID = &callerID
	sop.ApprovedAt = &now
	sop.RejectionReason = nil
	sop.UpdatedAt = now
	if err := uc.sopRepo.Update(ctx, sop); err != nil {
		return nil, err
	}
	uc.notify(ctx, sop.CreatedByID, entity.NotificationSopApproval,
		"SOP aprobado", "Tu SOP "+sop.Title+" fue aprobado",
		map[string]any{"sop_id": sop.ID})
	return toSopResponse(sop), nil
}

// Reject rechaza un SOP pendiente con motivo y notifica al creador.
func (uc *SopUseCase) Reject(ctx context.Context, id, companyID, callerID, callerRole string, in dto.RejectSopRequest) (*dto.SopResponse, error) {
	sop, err := uc.loadForReview(ctx, id, companyID, callerRole)
	if err != nil {
		return nil, err
	}
	if sop == nil {
		return nil, nil
	}
	sop.Status = entity.SopRejected
	sop.ApprovedByID = nil
	sop.ApprovedAt = nil
	sop.RejectionReason = &in.RejectionReason
	sop.UpdatedAt = time.Now()
	if err := uc.sopRepo.Update(ctx, sop); err != nil {
		return nil, err
	}
	uc.notify(ctx, sop.CreatedByID, entity.NotificationSopRejection,
		"SOP rechazado", "Tu SOP "+sop.Title+" fue rechazado: "+in.RejectionReason,
		map[string]any{"sop_id": sop.ID})
	return toSopResponse(sop), nil
}

// Stats agregados de SOPs de la empresa.
func (uc *SopUseCase) Stats(ctx context.Context, companyID string) (*dto.SopStatsResponse, error) {
	stats, err := uc.sopRepo.Stats(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.SopStatsResponse{
		Total:    stats.Total,
		Approved: stats.Approved,
		Pending:  stats.Pending,
		Rejected: stats.Rejected,
		ByType:   stats.ByType,
	}, nil
}

// Delete elimina un SOP; solo el creador o un admin.
func (uc *SopUseCase) Delete(ctx context.Context, id, companyID, callerID, callerRole string) error {
	sop, err := uc.sopRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if sop == nil {
		return domain.ErrNotFound
	}
	if sop.CreatedByID != callerID && !isCompanyAdmin(callerRole) {
		return domain.ErrForbidden
	}
	return uc.sopRepo.Delete(ctx, id)
}

func (uc *SopUseCase) loadForReview(ctx context.Context, id, companyID, callerRole string) (*entity.Sop, error) {
	if !isCompanyAdmin(callerRole) {
		return nil, domain.ErrForbidden
	}
	sop, err := uc.sopRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if sop == nil {
		return nil, nil
	}
	if sop.Status != entity.SopPendingApproval {
		return nil, domain.ErrInvalidInput
	}
	return sop, nil
}

// isCompanyAdmin roles de empresa con facultades de revisión/gestión global.
func isCompanyAdmin(role string) bool {
	return role == entity.RoleCompanyAdmin || role == entity.RoleQCAdmin
}

func (uc *SopUseCase) notify(ctx context.Context, userID, notifType, title, message string, metadata map[string]any) {
	err := uc.notificationRepo.Create(ctx, &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("type", notifType).Msg("no se pudo crear la notificación")
	}
}

func (uc *SopUseCase) logActivity(ctx context.Context, companyID, userID, activityType, description string, metadata map[string]any) {
	err := uc.activityRepo.Create(ctx, &entity.ActivityLog{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		UserID:       &userID,
		ActivityType: activityType,
		Description:  description,
		Metadata:     metadata,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID).Str("type", activityType).Msg("no se pudo registrar la actividad")
	}
}

func toSopResponse(s *entity.Sop) *dto.SopResponse {
	if s == nil {
		return nil
	}
	return &dto.SopResponse{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		Type:            s.Type,
		FileURL:         s.FileURL,
		ThumbnailURL:    s.ThumbnailURL,
		Duration:        s.Duration,
		Status:          s.Status,
		CompanyID:       s.CompanyID,
		CreatedByID:     s.CreatedByID,
		ApprovedByID:    s.ApprovedByID,
		ApprovedAt:      s.ApprovedAt,
		RejectionReason: s.RejectionReason,
		ViewCount:       s.ViewCount,
		Tags:            s.Tags,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
