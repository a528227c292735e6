package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/authz"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// SubProjectUseCase gestión de tareas dentro de un proyecto. La autorización
// de gestión evalúa la tarea como recurso: lead del proyecto, creador de la
// tarea o membresía elevada.
type SubProjectUseCase struct {
	subProjectRepo   repository.SubProjectRepository
	projectRepo      repository.ProjectRepository
	memberRepo       repository.ProjectMemberRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewSubProjectUseCase construye el caso de uso.
func NewSubProjectUseCase(
	subProjectRepo repository.SubProjectRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *SubProjectUseCase {
	return &SubProjectUseCase{
		subProjectRepo:   subProjectRepo,
		projectRepo:      projectRepo,
		memberRepo:       memberRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Create crea una tarea en TODO dentro de un proyecto de la empresa. Si nace
// asignada, el asignado debe pertenecer a la empresa y se le notifica.
func (uc *SubProjectUseCase) Create(ctx context.Context, companyID, callerID string, in dto.CreateSubProjectRequest) (*dto.SubProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, in.ProjectID, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if in.AssignedToID != nil {
		assignee, err := uc.userRepo.GetByIDAndCompany(ctx, *in.AssignedToID, companyID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	now := time.Now()
	subProject := &entity.SubProject{
		ID:             uuid.New().String(),
		Title:          in.Title,
		Description:    in.Description,
		ProjectID:      in.ProjectID,
		AssignedToID:   in.AssignedToID,
		CreatedByID:    callerID,
		Status:         entity.SubProjectTodo,
		PointsValue:    in.PointsValue,
		EstimatedHours: in.EstimatedHours,
		DueDate:        in.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.subProjectRepo.Create(ctx, subProject); err != nil {
		return nil, err
	}
	if in.AssignedToID != nil && *in.AssignedToID != callerID {
		uc.notifyAssignment(ctx, *in.AssignedToID, subProject)
	}
	return toSubProjectResponse(subProject), nil
}

// GetByID obtiene una tarea de la empresa.
func (uc *SubProjectUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.SubProjectResponse, error) {
	subProject, err := uc.subProjectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if subProject == nil {
		return nil, nil
	}
	return toSubProjectResponse(subProject), nil
}

// ListByProject lista las tareas de un proyecto con filtros.
func (uc *SubProjectUseCase) ListByProject(ctx context.Context, projectID, companyID string, q dto.SubProjectQuery) ([]dto.SubProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.subProjectRepo.ListByProject(ctx, projectID, repository.SubProjectFilter{
		Status:       q.Status,
		Search:       q.Search,
		AssignedToID: q.AssignedToID,
	})
	if err != nil {
		return nil, err
	}
	return toSubProjectResponses(list), nil
}

// ListMine lista las tareas asignadas al caller.
func (uc *SubProjectUseCase) ListMine(ctx context.Context, userID, companyID string) ([]dto.SubProjectResponse, error) {
	list, err := uc.subProjectRepo.ListAssignedToUser(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	return toSubProjectResponses(list), nil
}

// Update actualiza una tarea. Puede hacerlo quien gestiona el recurso o el
// asignado actual (que necesita mover el estado de su propia tarea).
func (uc *SubProjectUseCase) Update(ctx context.Context, id, companyID, callerID, callerRole string, in dto.UpdateSubProjectRequest) (*dto.SubProjectResponse, error) {
	subProject, err := uc.subProjectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if subProject == nil {
		return nil, nil
	}
	isAssignee := subProject.AssignedToID != nil && *subProject.AssignedToID == callerID
	if !isAssignee {
		if err := uc.ensureCanManage(ctx, subProject, companyID, callerID, callerRole); err != nil {
			return nil, err
		}
	}
	if in.Title != nil {
		subProject.Title = *in.Title
	}
	if in.Description != nil {
		subProject.Description = *in.Description
	}
	if in.Status != nil {
		subProject.Status = *in.Status
	}
	if in.PointsValue != nil {
		subProject.PointsValue = *in.PointsValue
	}
	if in.EstimatedHours != nil {
		subProject.EstimatedHours = in.EstimatedHours
	}
	if in.DueDate != nil {
		subProject.DueDate = in.DueDate
	}
	subProject.UpdatedAt = time.Now()
	if err := uc.subProjectRepo.Update(ctx, subProject); err != nil {
		return nil, err
	}
	return toSubProjectResponse(subProject), nil
}

// Assign asigna la tarea a un usuario de la empresa y le notifica.
func (uc *SubProjectUseCase) Assign(ctx context.Context, id, companyID, callerID, callerRole string, in dto.AssignSubProjectRequest) (*dto.SubProjectResponse, error) {
	subProject, err := uc.subProjectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if subProject == nil {
		return nil, nil
	}
	if err := uc.ensureCanManage(ctx, subProject, companyID, callerID, callerRole); err != nil {
		return nil, err
	}
	assignee, err := uc.userRepo.GetByIDAndCompany(ctx, in.UserID, companyID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.subProjectRepo.UpdateAssignee(ctx, id, &in.UserID); err != nil {
		return nil, err
	}
	subProject.AssignedToID = &in.UserID
	if in.UserID != callerID {
		uc.notifyAssignment(ctx, in.UserID, subProject)
	}
	return toSubProjectResponse(subProject), nil
}

// Delete elimina una tarea; requiere permiso de gestión.
func (uc *SubProjectUseCase) Delete(ctx context.Context, id, companyID, callerID, callerRole string) error {
	subProject, err := uc.subProjectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if subProject == nil {
		return domain.ErrNotFound
	}
	if err := uc.ensureCanManage(ctx, subProject, companyID, callerID, callerRole); err != nil {
		return err
	}
	return uc.subProjectRepo.Delete(ctx, id)
}

func (uc *SubProjectUseCase) ensureCanManage(ctx context.Context, subProject *entity.SubProject, companyID, callerID, callerRole string) error {
	project, err := uc.projectRepo.GetByID(ctx, subProject.ProjectID, companyID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	members, err := uc.memberRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}
	res := authz.Resource{CreatedByID: subProject.CreatedByID, Members: make([]authz.Membership, 0, len(members))}
	if project.ProjectLeadID != nil {
		res.LeadID = *project.ProjectLeadID
	}
	for _, m := range members {
		res.Members = append(res.Members, authz.Membership{UserID: m.UserID, Role: m.Role})
	}
	if !authz.CanManage(callerRole, callerID, res) {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *SubProjectUseCase) notifyAssignment(ctx context.Context, userID string, subProject *entity.SubProject) {
	err := uc.notificationRepo.Create(ctx, &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      entity.NotificationTaskAssignment,
		Title:     "Asignación de tarea",
		Message:   "Se te asignó la tarea " + subProject.Title,
		Metadata:  map[string]any{"sub_project_id": subProject.ID, "project_id": subProject.ProjectID},
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("no se pudo crear la notificación")
	}
}

func toSubProjectResponses(list []*entity.SubProject) []dto.SubProjectResponse {
	items := make([]dto.SubProjectResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubProjectResponse(s))
	}
	return items
}

func toSubProjectResponse(s *entity.SubProject) *dto.SubProjectResponse {
	if s == nil {
		return nil
	}
	return &dto.SubProjectResponse{
		ID:             s.ID,
		Title:          s.Title,
		Description:    s.Description,
		ProjectID:      s.ProjectID,
		AssignedToID:   s.AssignedToID,
		CreatedByID:    s.CreatedByID,
		Status:         s.Status,
		PointsValue:    s.PointsValue,
		EstimatedHours: s.EstimatedHours,
		DueDate:        s.DueDate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
