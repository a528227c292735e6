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

// UserUseCase gestión de usuarios dentro de la empresa del caller.
type UserUseCase struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, notificationRepo: notificationRepo}
}

// List lista los usuarios de la empresa con paginación.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.userRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene un usuario de la empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// Update actualiza el perfil de un usuario de la empresa.
func (uc *UserUseCase) Update(ctx context.Context, id, companyID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateRole cambia el rol de empresa de un usuario y le notifica. Un admin no
// puede degradarse a sí mismo: evita dejar la empresa sin COMPANY_ADMIN por
// accidente.
func (uc *UserUseCase) UpdateRole(ctx context.Context, id, companyID, callerID string, in dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	if id == callerID && in.Role != entity.RoleCompanyAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	previous := user.Role
	user.Role = in.Role
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if previous != in.Role {
		uc.notify(ctx, user.ID, entity.NotificationRoleChange, "Cambio de rol",
			"Tu rol en la empresa ahora es "+in.Role,
			map[string]any{"previous_role": previous, "new_role": in.Role})
	}
	return toUserResponse(user), nil
}

// Deactivate desactiva a un usuario (borrado lógico; su historial se conserva).
func (uc *UserUseCase) Deactivate(ctx context.Context, id, companyID, callerID string) error {
	if id == callerID {
		return domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.IsActive = false
	now := time.Now()
	user.EndDate = &now
	user.UpdatedAt = now
	return uc.userRepo.Update(ctx, user)
}

// notify crea una notificación in-app; el fallo no interrumpe la operación
// principal (la notificación es best-effort).
func (uc *UserUseCase) notify(ctx context.Context, userID, notifType, title, message string, metadata map[string]any) {
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
