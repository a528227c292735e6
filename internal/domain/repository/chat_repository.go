package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ChatRoomRepository define el puerto para salas de chat.
// El acotamiento por empresa se hace vía join con projects.
type ChatRoomRepository interface {
	Create(ctx context.Context, room *entity.ChatRoom) error
	GetByID(ctx context.Context, id, companyID string) (*entity.ChatRoom, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.ChatRoom, error)
	AddMember(ctx context.Context, member *entity.ChatRoomMember) error
	RemoveMember(ctx context.Context, roomID, userID string) error
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	ListMembers(ctx context.Context, roomID string) ([]*entity.ChatRoomMember, error)
}

// ChatMessageRepository define el puerto para mensajes de chat.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	GetByID(ctx context.Context, id string) (*entity.ChatMessage, error)
	Update(ctx context.Context, message *entity.ChatMessage) error
	// ListByRoom devuelve los mensajes no borrados más recientes primero.
	ListByRoom(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error)
}
