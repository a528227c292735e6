package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/authz"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// ChatUseCase salas y mensajes por proyecto, operados vía HTTP (el transporte
// en tiempo real queda fuera del alcance). Crear salas exige poder gestionar
// el proyecto; publicar y leer, membresía de la sala; editar y borrar, ser el
// autor del mensaje.
type ChatUseCase struct {
	roomRepo          repository.ChatRoomRepository
	messageRepo       repository.ChatMessageRepository
	projectRepo       repository.ProjectRepository
	projectMemberRepo repository.ProjectMemberRepository
	userRepo          repository.UserRepository
}

// NewChatUseCase construye el caso de uso.
func NewChatUseCase(roomRepo repository.ChatRoomRepository, messageRepo repository.ChatMessageRepository, projectRepo repository.ProjectRepository, projectMemberRepo repository.ProjectMemberRepository, userRepo repository.UserRepository) *ChatUseCase {
	return &ChatUseCase{roomRepo: roomRepo, messageRepo: messageRepo, projectRepo: projectRepo, projectMemberRepo: projectMemberRepo, userRepo: userRepo}
}

// CreateRoom crea una sala asociada a un proyecto de la empresa. Solo quien
// puede gestionar el proyecto crea salas; la membresía inicial son los
// usuarios indicados más el creador, y debe incluir al menos un QC_ADMIN o
// COMPANY_ADMIN para que siempre haya un moderador dentro.
func (uc *ChatUseCase) CreateRoom(ctx context.Context, companyID, callerID, callerRole string, in dto.CreateChatRoomRequest) (*dto.ChatRoomResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, in.ProjectID, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	projectMembers, err := uc.projectMemberRepo.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	res := authz.Resource{Members: make([]authz.Membership, 0, len(projectMembers))}
	if project.ProjectLeadID != nil {
		res.LeadID = *project.ProjectLeadID
	}
	for _, m := range projectMembers {
		res.Members = append(res.Members, authz.Membership{UserID: m.UserID, Role: m.Role})
	}
	if !authz.CanManage(callerRole, callerID, res) {
		return nil, fmt.Errorf("no puedes gestionar este proyecto: %w", domain.ErrForbidden)
	}

	// Membresía inicial: los indicados más el creador, sin duplicados.
	memberIDs := append([]string{callerID}, in.MemberIDs...)
	seen := make(map[string]bool, len(memberIDs))
	members := make([]*entity.User, 0, len(memberIDs))
	hasAdmin := false
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		user, err := uc.userRepo.GetByIDAndCompany(ctx, id, companyID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("miembro %s: %w", id, domain.ErrUserNotFound)
		}
		if user.Role == entity.RoleQCAdmin || user.Role == entity.RoleCompanyAdmin {
			hasAdmin = true
		}
		members = append(members, user)
	}
	if !hasAdmin {
		return nil, fmt.Errorf("la sala debe incluir al menos un miembro QC_ADMIN o COMPANY_ADMIN: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	room := &entity.ChatRoom{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		CreatedByID: callerID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	for _, member := range members {
		err := uc.roomRepo.AddMember(ctx, &entity.ChatRoomMember{
			ID:         uuid.New().String(),
			ChatRoomID: room.ID,
			UserID:     member.ID,
			JoinedAt:   now,
		})
		if err != nil {
			return nil, err
		}
	}
	return toChatRoomResponse(room), nil
}

// RoomsByProject lista las salas de un proyecto de la empresa.
func (uc *ChatUseCase) RoomsByProject(ctx context.Context, projectID, companyID string) ([]dto.ChatRoomResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID, companyID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	rooms, err := uc.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChatRoomResponse, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, *toChatRoomResponse(r))
	}
	return items, nil
}

// AddMember agrega un usuario de la empresa a la sala.
func (uc *ChatUseCase) AddMember(ctx context.Context, roomID, companyID string, in dto.AddChatMemberRequest) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID, companyID)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByIDAndCompany(ctx, in.UserID, companyID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	already, err := uc.roomRepo.IsMember(ctx, roomID, in.UserID)
	if err != nil {
		return err
	}
	if already {
		return domain.ErrDuplicate
	}
	return uc.roomRepo.AddMember(ctx, &entity.ChatRoomMember{
		ID:         uuid.New().String(),
		ChatRoomID: roomID,
		UserID:     in.UserID,
		JoinedAt:   time.Now(),
	})
}

// RemoveMember quita a un usuario de la sala.
func (uc *ChatUseCase) RemoveMember(ctx context.Context, roomID, companyID, userID string) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID, companyID)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrNotFound
	}
	return uc.roomRepo.RemoveMember(ctx, roomID, userID)
}

// PostMessage publica un mensaje en la sala; el caller debe ser miembro.
func (uc *ChatUseCase) PostMessage(ctx context.Context, roomID, companyID, callerID string, in dto.PostMessageRequest) (*dto.ChatMessageResponse, error) {
	if err := uc.ensureMember(ctx, roomID, companyID, callerID); err != nil {
		return nil, err
	}
	message := &entity.ChatMessage{
		ID:         uuid.New().String(),
		ChatRoomID: roomID,
		SenderID:   callerID,
		Content:    in.Content,
		CreatedAt:  time.Now(),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return toChatMessageResponse(message), nil
}

// Messages lista los mensajes de la sala, más recientes primero; el caller
// debe ser miembro.
func (uc *ChatUseCase) Messages(ctx context.Context, roomID, companyID, callerID string, page dto.PageRequest) ([]dto.ChatMessageResponse, error) {
	if err := uc.ensureMember(ctx, roomID, companyID, callerID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.messageRepo.ListByRoom(ctx, roomID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChatMessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toChatMessageResponse(m))
	}
	return items, nil
}

// EditMessage edita un mensaje propio y lo marca como editado.
func (uc *ChatUseCase) EditMessage(ctx context.Context, messageID, callerID string, in dto.EditMessageRequest) (*dto.ChatMessageResponse, error) {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message == nil || message.IsDeleted {
		return nil, nil
	}
	if message.SenderID != callerID {
		return nil, domain.ErrForbidden
	}
	message.Content = in.Content
	message.IsEdited = true
	if err := uc.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}
	return toChatMessageResponse(message), nil
}

// DeleteMessage borra lógicamente un mensaje propio.
func (uc *ChatUseCase) DeleteMessage(ctx context.Context, messageID, callerID string) error {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil || message.IsDeleted {
		return domain.ErrNotFound
	}
	if message.SenderID != callerID {
		return domain.ErrForbidden
	}
	message.IsDeleted = true
	return uc.messageRepo.Update(ctx, message)
}

func (uc *ChatUseCase) ensureMember(ctx context.Context, roomID, companyID, userID string) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID, companyID)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrNotFound
	}
	member, err := uc.roomRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrForbidden
	}
	return nil
}

func toChatRoomResponse(r *entity.ChatRoom) *dto.ChatRoomResponse {
	if r == nil {
		return nil
	}
	return &dto.ChatRoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		CreatedByID: r.CreatedByID,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func toChatMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	if m == nil {
		return nil
	}
	return &dto.ChatMessageResponse{
		ID:         m.ID,
		ChatRoomID: m.ChatRoomID,
		SenderID:   m.SenderID,
		Content:    m.Content,
		IsEdited:   m.IsEdited,
		CreatedAt:  m.CreatedAt,
	}
}
