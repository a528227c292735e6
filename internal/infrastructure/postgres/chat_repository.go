package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

var _ repository.ChatRoomRepository = (*ChatRoomRepo)(nil)
var _ repository.ChatMessageRepository = (*ChatMessageRepo)(nil)

// ChatRoomRepo implementación del puerto ChatRoomRepository sobre PostgreSQL.
type ChatRoomRepo struct {
	q Querier
}

// NewChatRoomRepository construye el adaptador de persistencia para salas.
func NewChatRoomRepository(q Querier) *ChatRoomRepo {
	return &ChatRoomRepo{q: q}
}

// Create persiste una sala nueva.
func (r *ChatRoomRepo) Create(ctx context.Context, room *entity.ChatRoom) error {
	query := `
		INSERT INTO chat_rooms (id, name, description, project_id, created_by_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.Name, room.Description, room.ProjectID, room.CreatedByID,
		room.IsActive, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat_room: %w", err)
	}
	return nil
}

// GetByID obtiene una sala acotada a la empresa vía join con projects.
func (r *ChatRoomRepo) GetByID(ctx context.Context, id, companyID string) (*entity.ChatRoom, error) {
	query := `
		SELECT cr.id, cr.name, cr.description, cr.project_id, cr.created_by_id, cr.is_active, cr.created_at, cr.updated_at
		FROM chat_rooms cr
		JOIN projects p ON p.id = cr.project_id
		WHERE cr.id = $1 AND p.company_id = $2`
	var room entity.ChatRoom
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&room.ID, &room.Name, &room.Description, &room.ProjectID, &room.CreatedByID,
		&room.IsActive, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat_room: %w", err)
	}
	return &room, nil
}

// ListByProject lista las salas activas de un proyecto.
func (r *ChatRoomRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ChatRoom, error) {
	query := `
		SELECT id, name, description, project_id, created_by_id, is_active, created_at, updated_at
		FROM chat_rooms WHERE project_id = $1 AND is_active ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list chat_rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChatRoom
	for rows.Next() {
		var room entity.ChatRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.ProjectID,
			&room.CreatedByID, &room.IsActive, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat_room: %w", err)
		}
		list = append(list, &room)
	}
	return list, rows.Err()
}

// AddMember agrega un usuario a la sala. El par (chat_room_id, user_id) es único.
func (r *ChatRoomRepo) AddMember(ctx context.Context, member *entity.ChatRoomMember) error {
	query := `
		INSERT INTO chat_room_members (id, chat_room_id, user_id, joined_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, member.ID, member.ChatRoomID, member.UserID, member.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert chat_room_member: %w", err)
	}
	return nil
}

// RemoveMember quita a un usuario de la sala.
func (r *ChatRoomRepo) RemoveMember(ctx context.Context, roomID, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM chat_room_members WHERE chat_room_id = $1 AND user_id = $2`,
		roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete chat_room_member: %w", err)
	}
	return nil
}

// IsMember verifica si el usuario pertenece a la sala.
func (r *ChatRoomRepo) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_room_members WHERE chat_room_id = $1 AND user_id = $2)`,
		roomID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check chat membership: %w", err)
	}
	return exists, nil
}

// ListMembers lista las membresías de la sala.
func (r *ChatRoomRepo) ListMembers(ctx context.Context, roomID string) ([]*entity.ChatRoomMember, error) {
	query := `SELECT id, chat_room_id, user_id, joined_at FROM chat_room_members WHERE chat_room_id = $1 ORDER BY joined_at`
	rows, err := r.q.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("list chat members: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChatRoomMember
	for rows.Next() {
		var m entity.ChatRoomMember
		if err := rows.Scan(&m.ID, &m.ChatRoomID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan chat member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ── Mensajes ──────────────────────────────────────────────────────────────────

// ChatMessageRepo implementación del puerto ChatMessageRepository sobre PostgreSQL.
type ChatMessageRepo struct {
	q Querier
}

// NewChatMessageRepository construye el adaptador de persistencia para mensajes.
func NewChatMessageRepository(q Querier) *ChatMessageRepo {
	return &ChatMessageRepo{q: q}
}

// Create persiste un mensaje nuevo.
func (r *ChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, chat_room_id, sender_id, content, is_edited, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		message.ID, message.ChatRoomID, message.SenderID, message.Content,
		message.IsEdited, message.IsDeleted, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat_message: %w", err)
	}
	return nil
}

// GetByID obtiene un mensaje por ID.
func (r *ChatMessageRepo) GetByID(ctx context.Context, id string) (*entity.ChatMessage, error) {
	query := `SELECT id, chat_room_id, sender_id, content, is_edited, is_deleted, created_at FROM chat_messages WHERE id = $1`
	var m entity.ChatMessage
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ChatRoomID, &m.SenderID, &m.Content, &m.IsEdited, &m.IsDeleted, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat_message: %w", err)
	}
	return &m, nil
}

// Update actualiza contenido y flags de un mensaje (edición o borrado lógico).
func (r *ChatMessageRepo) Update(ctx context.Context, message *entity.ChatMessage) error {
	_, err := r.q.Exec(ctx,
		`UPDATE chat_messages SET content = $2, is_edited = $3, is_deleted = $4 WHERE id = $1`,
		message.ID, message.Content, message.IsEdited, message.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("update chat_message: %w", err)
	}
	return nil
}

// ListByRoom lista los mensajes no borrados de la sala, más recientes primero.
func (r *ChatMessageRepo) ListByRoom(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, chat_room_id, sender_id, content, is_edited, is_deleted, created_at
		FROM chat_messages WHERE chat_room_id = $1 AND NOT is_deleted
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chat_messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChatMessage
	for rows.Next() {
		var m entity.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatRoomID, &m.SenderID, &m.Content, &m.IsEdited, &m.IsDeleted, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat_message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
