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

// ProjectUseCase gestión de proyectos y sus membresías. Las mutaciones pasan
// por el predicado authz.CanManage con los datos de propiedad del proyecto.
type ProjectUseCase struct {
	projectRepo      repository.ProjectRepository
	memberRepo       repository.ProjectMemberRepository
	subProjectRepo   repository.SubProjectRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	activityRepo     repository.ActivityLogRepository
	txRunner         repository.TxRunner
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	subProjectRepo repository.SubProjectRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	activityRepo repository.ActivityLogRepository,
	txRunner repository.TxRunner,
) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo:      projectRepo,
		memberRepo:       memberRepo,
		subProjectRepo:   subProjectRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
		txRunner:         txRunner,
	}
}

// Create crea un proyecto en PLANNING. Si hay lead designado, se valida que
// pertenezca a la empresa y se siembra su membresía LEAD en la misma
// transacción que el proyecto.
func (uc *ProjectUseCase) Create(ctx context.Context, companyID, callerID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.ProjectLeadID != nil {
		lead, err := uc.userRepo.GetByIDAndCompany(ctx, *in.ProjectLeadID, companyID)
		if err != nil {
			return nil, err
		}
		if lead == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	now := time.Now()
	project := &entity.Project{
		ID:                      uuid.New().String(),
		Name:                    in.Name,
		Description:             in.Description,
		Budget:                  in.Budget,
		Status:                  entity.ProjectPlanning,
		CompanyID:               companyID,
		ProjectLeadID:           in.ProjectLeadID,
		StartDate:               in.StartDate,
		EndDate:                 in.EndDate,
		ScreenMonitoringEnabled: in.ScreenMonitoringEnabled,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	err := uc.txRunner.WithinTx(ctx, func(r repository.TxRepositories) error {
		if err := r.Projects.Create(ctx, project); err != nil {
			return err
		}
		if in.ProjectLeadID != nil {
			return r.ProjectMembers.Create(ctx, &entity.ProjectMember{
				ID:        uuid.New().String(),
				ProjectID: project.ID,
				UserID:    *in.ProjectLeadID,
				Role:      entity.MemberRoleLead,
				JoinedAt:  now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logActivity(ctx, companyID, callerID, entity.ActivityProjectCreated,
		"Proyecto creado: "+project.Name, map[string]any{"project_id": project.ID})
	if in.ProjectLeadID != nil && *in.ProjectLeadID != callerID {
		uc.notify(ctx, *in.ProjectLeadID, entity.NotificationProjectAssignment,
			"Asignación de proyecto", "Fuiste designado lead del proyecto "+project.Name,
			map[string]any{"project_id": project.ID})
	}
	return toProjectResponse(project, nil), nil
}

// GetByID obtiene un proyecto de la empresa con sus membresías.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	members, err := uc.memberRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project, members), nil
}

// List lista los proyectos de la empresa.
func (uc *ProjectUseCase) List(ctx context.Context, companyID string) ([]dto.ProjectResponse, error) {
	list, err := uc.projectRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p, nil))
	}
	return items, nil
}

// Update actualiza un proyecto; requiere permiso de gestión sobre él.
func (uc *ProjectUseCase) Update(ctx context.Context, id, companyID, callerID, callerRole string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	if err := uc.ensureCanManage(ctx, project, callerID, callerRole); err != nil {
		return nil, err
	}
	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Budget != nil {
		project.Budget = *in.Budget
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.ProjectLeadID != nil {
		lead, err := uc.userRepo.GetByIDAndCompany(ctx, *in.ProjectLeadID, companyID)
		if err != nil {
			return nil, err
		}
		if lead == nil {
			return nil, domain.ErrUserNotFound
		}
		project.ProjectLeadID = in.ProjectLeadID
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.ScreenMonitoringEnabled != nil {
		project.ScreenMonitoringEnabled = *in.ScreenMonitoringEnabled
	}
	project.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return toProjectResponse(project, nil), nil
}

// Delete elimina un proyecto; solo admins de empresa.
func (uc *ProjectUseCase) Delete(ctx context.Context, id, companyID, callerRole string) error {
	if callerRole != entity.RoleCompanyAdmin {
		return domain.ErrForbidden
	}
	project, err := uc.projectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	return uc.projectRepo.Delete(ctx, id)
}

// Stats agregados de un proyecto.
func (uc *ProjectUseCase) Stats(ctx context.Context, id, companyID string) (*dto.ProjectStatsResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	members, err := uc.memberRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.subProjectRepo.ListByProject(ctx, id, repository.SubProjectFilter{})
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == entity.SubProjectCompleted {
			completed++
		}
	}
	return &dto.ProjectStatsResponse{
		TotalMembers:         len(members),
		TotalSubProjects:     len(tasks),
		CompletedSubProjects: completed,
		Budget:               project.Budget,
		Status:               project.Status,
	}, nil
}

// AddMember agrega un usuario de la empresa al proyecto y le notifica.
func (uc *ProjectUseCase) AddMember(ctx context.Context, projectID, companyID, callerID, callerRole string, in dto.AddProjectMemberRequest) (*dto.ProjectMemberResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	if err := uc.ensureCanManage(ctx, project, callerID, callerRole); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByIDAndCompany(ctx, in.UserID, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	existing, err := uc.memberRepo.Get(ctx, projectID, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	role := in.Role
	if role == "" {
		role = entity.MemberRoleMember
	}
	member := &entity.ProjectMember{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    in.UserID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	uc.notify(ctx, in.UserID, entity.NotificationProjectAssignment,
		"Asignación de proyecto", "Fuiste agregado al proyecto "+project.Name,
		map[string]any{"project_id": projectID})
	return toProjectMemberResponse(member), nil
}

// Members lista las membresías del proyecto.
func (uc *ProjectUseCase) Members(ctx context.Context, projectID, companyID string) ([]dto.ProjectMemberResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	members, err := uc.memberRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectMemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, *toProjectMemberResponse(m))
	}
	return items, nil
}

// UpdateMemberRole cambia el rol de una membresía.
func (uc *ProjectUseCase) UpdateMemberRole(ctx context.Context, projectID, userID, companyID, callerID, callerRole string, in dto.UpdateProjectMemberRoleRequest) error {
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	if err := uc.ensureCanManage(ctx, project, callerID, callerRole); err != nil {
		return err
	}
	member, err := uc.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrNotFound
	}
	return uc.memberRepo.UpdateRole(ctx, projectID, userID, in.Role)
}

// RemoveMember quita a un usuario del proyecto. Sus puntos globales no se
// revierten: points_earned muere con la membresía pero users.points persiste.
func (uc *ProjectUseCase) RemoveMember(ctx context.Context, projectID, userID, companyID, callerID, callerRole string) error {
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	if err := uc.ensureCanManage(ctx, project, callerID, callerRole); err != nil {
		return err
	}
	member, err := uc.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrNotFound
	}
	return uc.memberRepo.Delete(ctx, projectID, userID)
}

// ensureCanManage evalúa el predicado de gestión con los datos de propiedad y
// membresías del proyecto.
func (uc *ProjectUseCase) ensureCanManage(ctx context.Context, project *entity.Project, callerID, callerRole string) error {
	members, err := uc.memberRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}
	res := authz.Resource{Members: make([]authz.Membership, 0, len(members))}
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

func (uc *ProjectUseCase) notify(ctx context.Context, userID, notifType, title, message string, metadata map[string]any) {
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

func (uc *ProjectUseCase) logActivity(ctx context.Context, companyID, userID, activityType, description string, metadata map[string]any) {
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

func toProjectResponse(p *entity.Project, members []*entity.ProjectMember) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProjectResponse{
		ID:                      p.ID,
		Name:                    p.Name,
		Description:             p.Description,
		Budget:                  p.Budget,
		Status:                  p.Status,
		CompanyID:               p.CompanyID,
		ProjectLeadID:           p.ProjectLeadID,
		StartDate:               p.StartDate,
		EndDate:                 p.EndDate,
		ScreenMonitoringEnabled: p.ScreenMonitoringEnabled,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, *toProjectMemberResponse(m))
	}
	return resp
}

func toProjectMemberResponse(m *entity.ProjectMember) *dto.ProjectMemberResponse {
	if m == nil {
		return nil
	}
	return &dto.ProjectMemberResponse{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		UserID:       m.UserID,
		Role:         m.Role,
		PointsEarned: m.PointsEarned,
		JoinedAt:     m.JoinedAt,
	}
}
