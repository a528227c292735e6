package usecase

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// NotificationUseCase consulta y gestión de notificaciones in-app del caller.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// List lista las notificaciones del caller, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, page dto.PageRequest) ([]dto.NotificationResponse, error) {
	page.DefaultPage()
	list, err := uc.notificationRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNotificationResponse(n))
	}
	return items, nil
}

// UnreadCount conteo de notificaciones no leídas.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error) {
	count, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkRead marca una notificación del caller como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID string) error {
	return uc.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marca todas las notificaciones del caller como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete elimina una notificación del caller.
func (uc *NotificationUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.notificationRepo.Delete(ctx, id, userID)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
