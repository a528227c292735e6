package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeChatRoomRepo salas y membresías en memoria.
type fakeChatRoomRepo struct {
	rooms   map[string]*entity.ChatRoom
	members map[string][]string // roomID → userIDs, en orden de alta
}

func newFakeChatRoomRepo() *fakeChatRoomRepo {
	return &fakeChatRoomRepo{rooms: map[string]*entity.ChatRoom{}, members: map[string][]string{}}
}

func (f *fakeChatRoomRepo) Create(ctx context.Context, room *entity.ChatRoom) error {
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeChatRoomRepo) GetByID(ctx context.Context, id, companyID string) (*entity.ChatRoom, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeChatRoomRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ChatRoom, error) {
	var list []*entity.ChatRoom
	for _, r := range f.rooms {
		if r.ProjectID == projectID {
			cp := *r
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (f *fakeChatRoomRepo) AddMember(ctx context.Context, member *entity.ChatRoomMember) error {
	f.members[member.ChatRoomID] = append(f.members[member.ChatRoomID], member.UserID)
	return nil
}

func (f *fakeChatRoomRepo) RemoveMember(ctx context.Context, roomID, userID string) error {
	var rest []string
	for _, id := range f.members[roomID] {
		if id != userID {
			rest = append(rest, id)
		}
	}
	f.members[roomID] = rest
	return nil
}

func (f *fakeChatRoomRepo) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	for _, id := range f.members[roomID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChatRoomRepo) ListMembers(ctx context.Context, roomID string) ([]*entity.ChatRoomMember, error) {
	var list []*entity.ChatRoomMember
	for _, id := range f.members[roomID] {
		list = append(list, &entity.ChatRoomMember{ChatRoomID: roomID, UserID: id})
	}
	return list, nil
}

// fakeChatMessageRepo mensajes en memoria.
type fakeChatMessageRepo struct {
	messages map[string]*entity.ChatMessage
}

func newFakeChatMessageRepo() *fakeChatMessageRepo {
	return &fakeChatMessageRepo{messages: map[string]*entity.ChatMessage{}}
}

func (f *fakeChatMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	cp := *m
	f.messages[m.ID] = &cp
	return nil
}

func (f *fakeChatMessageRepo) GetByID(ctx context.Context, id string) (*entity.ChatMessage, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeChatMessageRepo) Update(ctx context.Context, m *entity.ChatMessage) error {
	cp := *m
	f.messages[m.ID] = &cp
	return nil
}

func (f *fakeChatMessageRepo) ListByRoom(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error) {
	var list []*entity.ChatMessage
	for _, m := range f.messages {
		if m.ChatRoomID == roomID && !m.IsDeleted {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

// fakeChatUserRepo resuelve GetByIDAndCompany contra un mapa; lo demás no se
// toca en estos tests.
type fakeChatUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (f *fakeChatUserRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	chatCompanyID = "c-chat"
	chatProjectID = "p-chat"
	chatLeadID    = "u-lead"
	chatAdminID   = "u-qc"
	chatMemberID  = "u-member"
)

type chatFixture struct {
	uc       *usecase.ChatUseCase
	rooms    *fakeChatRoomRepo
	messages *fakeChatMessageRepo
}

// newChatFixture arma un proyecto con líder USER, un QC_ADMIN y un USER raso,
// todos de la misma empresa.
func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{rooms: newFakeChatRoomRepo(), messages: newFakeChatMessageRepo()}
	leadID := chatLeadID
	projects := &fakeProjectRepo{project: &entity.Project{
		ID:            chatProjectID,
		CompanyID:     chatCompanyID,
		ProjectLeadID: &leadID,
	}}
	members := newFakeMemberRepo(&pointsRecorder{})
	users := &fakeChatUserRepo{users: map[string]*entity.User{
		chatLeadID:   {ID: chatLeadID, CompanyID: chatCompanyID, Role: entity.RoleUser},
		chatAdminID:  {ID: chatAdminID, CompanyID: chatCompanyID, Role: entity.RoleQCAdmin},
		chatMemberID: {ID: chatMemberID, CompanyID: chatCompanyID, Role: entity.RoleUser},
	}}
	f.uc = usecase.NewChatUseCase(f.rooms, f.messages, projects, members, users)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateRoom
// ──────────────────────────────────────────────────────────────────────────────

func TestChat_CreateRoom_ProyectoInexistente_NotFound(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.uc.CreateRoom(context.Background(), chatCompanyID, chatAdminID, entity.RoleQCAdmin,
		dto.CreateChatRoomRequest{ProjectID: "p-404", Name: "general"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un USER sin rol elevado, sin liderazgo y sin membresía no abre salas.
func TestChat_CreateRoom_SinGestionDelProyecto_Forbidden(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.uc.CreateRoom(context.Background(), chatCompanyID, chatMemberID, entity.RoleUser,
		dto.CreateChatRoomRequest{ProjectID: chatProjectID, Name: "general"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.rooms.rooms, "no debe crearse ninguna sala")
}

// El líder del proyecto puede crear aunque su rol de empresa sea USER, pero la
// sala necesita al menos un QC_ADMIN o COMPANY_ADMIN entre los miembros.
func TestChat_CreateRoom_SinAdminEnLaSala_Rechazada(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.uc.CreateRoom(context.Background(), chatCompanyID, chatLeadID, entity.RoleUser,
		dto.CreateChatRoomRequest{ProjectID: chatProjectID, Name: "general", MemberIDs: []string{chatMemberID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.rooms.rooms)
}

func TestChat_CreateRoom_SiembraCreadorYMiembrosSinDuplicar(t *testing.T) {
	f := newChatFixture(t)
	out, err := f.uc.CreateRoom(context.Background(), chatCompanyID, chatLeadID, entity.RoleUser,
		dto.CreateChatRoomRequest{
			ProjectID: chatProjectID,
			Name:      "general",
			// el creador se lista a sí mismo: no debe duplicarse
			MemberIDs: []string{chatAdminID, chatLeadID, chatMemberID},
		})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, chatProjectID, out.ProjectID)
	assert.Equal(t, chatLeadID, out.CreatedByID)
	assert.True(t, out.IsActive)
	assert.ElementsMatch(t, []string{chatLeadID, chatAdminID, chatMemberID}, f.rooms.members[out.ID])
}

func TestChat_CreateRoom_MiembroDeOtraEmpresa_UserNotFound(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.uc.CreateRoom(context.Background(), chatCompanyID, chatAdminID, entity.RoleQCAdmin,
		dto.CreateChatRoomRequest{ProjectID: chatProjectID, Name: "general", MemberIDs: []string{"u-ajeno"}})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, f.rooms.rooms)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de mensajes
// ──────────────────────────────────────────────────────────────────────────────

// Editar un mensaje inexistente o ya borrado devuelve (nil, nil); el handler
// lo traduce a 404.
func TestChat_EditMessage_InexistenteOBorrado_DevuelveNil(t *testing.T) {
	f := newChatFixture(t)

	out, err := f.uc.EditMessage(context.Background(), "m-404", chatAdminID, dto.EditMessageRequest{Content: "hola"})
	require.NoError(t, err)
	assert.Nil(t, out)

	require.NoError(t, f.messages.Create(context.Background(), &entity.ChatMessage{
		ID: "m-1", ChatRoomID: "r-1", SenderID: chatAdminID, Content: "borrador", IsDeleted: true,
	}))
	out, err = f.uc.EditMessage(context.Background(), "m-1", chatAdminID, dto.EditMessageRequest{Content: "hola"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestChat_EditMessage_Ajeno_Forbidden(t *testing.T) {
	f := newChatFixture(t)
	require.NoError(t, f.messages.Create(context.Background(), &entity.ChatMessage{
		ID: "m-1", ChatRoomID: "r-1", SenderID: chatMemberID, Content: "original",
	}))
	_, err := f.uc.EditMessage(context.Background(), "m-1", chatAdminID, dto.EditMessageRequest{Content: "editado"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
