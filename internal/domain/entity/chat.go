package entity

import "time"

// ChatRoom es una sala de chat asociada a un proyecto.
// El transporte en tiempo real queda fuera del alcance: las salas y mensajes
// se operan vía HTTP.
type ChatRoom struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	CreatedByID string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChatRoomMember es la membresía de un usuario en una sala.
type ChatRoomMember struct {
	ID         string
	ChatRoomID string
	UserID     string
	JoinedAt   time.Time
}

// ChatMessage es un mensaje de una sala. El borrado es lógico (IsDeleted).
type ChatMessage struct {
	ID         string
	ChatRoomID string
	SenderID   string
	Content    string
	IsEdited   bool
	IsDeleted  bool
	CreatedAt  time.Time
}
