package dto

import "time"

// CreateChatRoomRequest crea una sala asociada a un proyecto. member_ids son
// los miembros iniciales; el creador entra siempre, se liste o no.
type CreateChatRoomRequest struct {
	ProjectID   string   `json:"project_id" validate:"required,uuid"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"member_ids,omitempty"`
}

// AddChatMemberRequest agrega un usuario a la sala.
type AddChatMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// PostMessageRequest publica un mensaje.
type PostMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// EditMessageRequest edita un mensaje propio.
type EditMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// ChatRoomResponse salida de una sala.
type ChatRoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProjectID   string    `json:"project_id"`
	CreatedByID string    `json:"created_by_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatMessageResponse salida de un mensaje.
type ChatMessageResponse struct {
	ID         string    `json:"id"`
	ChatRoomID string    `json:"chat_room_id"`
	SenderID   string    `json:"sender_id"`
	Content    string    `json:"content"`
	IsEdited   bool      `json:"is_edited"`
	CreatedAt  time.Time `json:"created_at"`
}
