package usecase_test

import (
	"context"
	"testing"
	"time"

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

// fakeTrackingRepo emula el comportamiento del índice único parcial: a lo sumo
// una sesión activa por usuario, Create devuelve domain.ErrConflict si ya hay.
type fakeTrackingRepo struct {
	sessions  map[string]*entity.TimeTracking
	projectID string // proyecto dueño de cualquier tarea (suficiente para estos tests)
}

func newFakeTrackingRepo(projectID string) *fakeTrackingRepo {
	return &fakeTrackingRepo{sessions: map[string]*entity.TimeTracking{}, projectID: projectID}
}

func (f *fakeTrackingRepo) Create(ctx context.Context, t *entity.TimeTracking) error {
	for _, s := range f.sessions {
		if s.UserID == t.UserID && s.IsActive {
			return domain.ErrConflict
		}
	}
	cp := *t
	f.sessions[t.ID] = &cp
	return nil
}

func (f *fakeTrackingRepo) GetByID(ctx context.Context, id string) (*entity.TimeTracking, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeTrackingRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.TimeTracking, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTrackingRepo) GetActiveSession(ctx context.Context, id, userID string) (*repository.ActiveSession, error) {
	for _, s := range f.sessions {
		if !s.IsActive {
			continue
		}
		if (id != "" && s.ID == id) || (id == "" && s.UserID == userID) {
			return &repository.ActiveSession{Tracking: *s, ProjectID: f.projectID}, nil
		}
	}
	return nil, nil
}

func (f *fakeTrackingRepo) Stop(ctx context.Context, id string, endTime time.Time, durationMinutes int, notes string) error {
	s, ok := f.sessions[id]
	if !ok || !s.IsActive {
		return domain.ErrNotFound
	}
	s.EndTime = &endTime
	s.DurationMinutes = durationMinutes
	s.Notes = notes
	s.IsActive = false
	return nil
}

func (f *fakeTrackingRepo) AppendScreenshot(ctx context.Context, id, url string) error {
	if s, ok := f.sessions[id]; ok {
		s.Screenshots = append(s.Screenshots, url)
	}
	return nil
}

func (f *fakeTrackingRepo) History(ctx context.Context, userID string, from, to *time.Time) ([]*entity.TimeTracking, error) {
	var list []*entity.TimeTracking
	for _, s := range f.sessions {
		if s.UserID == userID {
			cp := *s
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (f *fakeTrackingRepo) ListByProject(ctx context.Context, projectID, companyID string) ([]*entity.TimeTracking, error) {
	return nil, nil
}

type fakeSubProjectRepo struct {
	subProject *entity.SubProject
}

// fakeProjectRepo solo resuelve GetByID; lo demás no se toca en estos tests.
type fakeProjectRepo struct {
	project *entity.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error { return nil }
func (f *fakeProjectRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Project, error) {
	if f.project == nil || f.project.ID != id {
		return nil, nil
	}
	return f.project, nil
}
func (f *fakeProjectRepo) Update(ctx context.Context, p *entity.Project) error { return nil }
func (f *fakeProjectRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) Delete(ctx context.Context, id string) error { return nil }

// fakeMemberRepo membresías por (projectID, userID) + recorder de puntos.
type fakeMemberRepo struct {
	members map[string]*entity.ProjectMember // clave projectID+"/"+userID
	rec     *pointsRecorder
}

func newFakeMemberRepo(rec *pointsRecorder) *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]*entity.ProjectMember{}, rec: rec}
}

func (f *fakeMemberRepo) addMember(projectID, userID, role string) {
	f.members[projectID+"/"+userID] = &entity.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *entity.ProjectMember) error { return nil }
func (f *fakeMemberRepo) Get(ctx context.Context, projectID, userID string) (*entity.ProjectMember, error) {
	return f.members[projectID+"/"+userID], nil
}
func (f *fakeMemberRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectMember, error) {
	return nil, nil
}
func (f *fakeMemberRepo) UpdateRole(ctx context.Context, projectID, userID, role string) error {
	return nil
}
func (f *fakeMemberRepo) AddPoints(ctx context.Context, projectID, userID string, points int) error {
	f.rec.memberPoints += points
	f.rec.projectID = projectID
	return nil
}
func (f *fakeMemberRepo) Delete(ctx context.Context, projectID, userID string) error { return nil }

func (f *fakeSubProjectRepo) Create(ctx context.Context, sp *entity.SubProject) error { return nil }
func (f *fakeSubProjectRepo) GetByID(ctx context.Context, id, companyID string) (*entity.SubProject, error) {
	if f.subProject == nil || f.subProject.ID != id {
		return nil, nil
	}
	return f.subProject, nil
}
func (f *fakeSubProjectRepo) Update(ctx context.Context, sp *entity.SubProject) error { return nil }
func (f *fakeSubProjectRepo) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	return nil
}
func (f *fakeSubProjectRepo) ListByProject(ctx context.Context, projectID string, filter repository.SubProjectFilter) ([]*entity.SubProject, error) {
	return nil, nil
}
func (f *fakeSubProjectRepo) ListAssignedToUser(ctx context.Context, userID, companyID string) ([]*entity.SubProject, error) {
	return nil, nil
}
func (f *fakeSubProjectRepo) Delete(ctx context.Context, id string) error { return nil }

// pointsRecorder registra los AddPoints del usuario y de la membresía.
type pointsRecorder struct {
	userPoints   int
	memberPoints int
	projectID    string
}

type fakeUserPoints struct {
	repository.UserRepository
	rec *pointsRecorder
}

func (f *fakeUserPoints) AddPoints(ctx context.Context, id string, points int) error {
	f.rec.userPoints += points
	return nil
}

// fakeActivityRepo acumula las entradas registradas.
type fakeActivityRepo struct {
	entries []*entity.ActivityLog
}

func (f *fakeActivityRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	f.entries = append(f.entries, l)
	return nil
}
func (f *fakeActivityRepo) List(ctx context.Context, companyID string, filter repository.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error) {
	return nil, nil
}
func (f *fakeActivityRepo) ListByUser(ctx context.Context, companyID, userID string, limit int) ([]*entity.ActivityLog, error) {
	return nil, nil
}
func (f *fakeActivityRepo) CountByType(ctx context.Context, companyID string) ([]repository.ActivityTypeCount, error) {
	return nil, nil
}
func (f *fakeActivityRepo) TopUsers(ctx context.Context, companyID string, limit int) ([]repository.ActivityUserCount, error) {
	return nil, nil
}
func (f *fakeActivityRepo) CountSince(ctx context.Context, companyID string, since time.Time) (int, error) {
	return 0, nil
}

// fakeTxRunner ejecuta fn sin transacción real, sobre los mismos fakes.
type fakeTxRunner struct {
	repos repository.TxRepositories
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(r repository.TxRepositories) error) error {
	return fn(f.repos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	trkUserID    = "u-1"
	trkCompanyID = "c-1"
	trkTaskID    = "sp-1"
	trkProjectID = "p-1"
)

type trackingFixture struct {
	uc       *usecase.TrackingUseCase
	tracking *fakeTrackingRepo
	members  *fakeMemberRepo
	activity *fakeActivityRepo
	rec      *pointsRecorder
	now      time.Time
}

func newTrackingFixture(t *testing.T) *trackingFixture {
	t.Helper()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	f := &trackingFixture{
		tracking: newFakeTrackingRepo(trkProjectID),
		rec:      &pointsRecorder{},
		now:      now,
	}
	f.members = newFakeMemberRepo(f.rec)
	f.members.addMember(trkProjectID, trkUserID, entity.MemberRoleMember)
	subProjects := &fakeSubProjectRepo{subProject: &entity.SubProject{ID: trkTaskID, ProjectID: trkProjectID}}
	projects := &fakeProjectRepo{project: &entity.Project{ID: trkProjectID, CompanyID: trkCompanyID}}
	tx := &fakeTxRunner{repos: repository.TxRepositories{
		Users:          &fakeUserPoints{rec: f.rec},
		ProjectMembers: f.members,
		TimeTrackings:  f.tracking,
	}}
	f.activity = &fakeActivityRepo{}
	f.uc = usecase.NewTrackingUseCase(f.tracking, subProjects, projects, f.members, f.activity, tx, func() time.Time { return f.now })
	return f
}

func (f *trackingFixture) start(t *testing.T) *dto.TrackingResponse {
	t.Helper()
	out, err := f.uc.Start(context.Background(), trkUserID, trkCompanyID, entity.RoleUser, dto.StartTrackingRequest{SubProjectID: trkTaskID})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Start
// ──────────────────────────────────────────────────────────────────────────────

func TestTracking_Start_CreaSesionActiva(t *testing.T) {
	f := newTrackingFixture(t)
	out := f.start(t)

	assert.True(t, out.IsActive)
	assert.Equal(t, trkTaskID, out.SubProjectID)
	assert.Equal(t, f.now, out.StartTime)
}

func TestTracking_Start_TareaInexistente_NotFound(t *testing.T) {
	f := newTrackingFixture(t)
	_, err := f.uc.Start(context.Background(), trkUserID, trkCompanyID, entity.RoleUser, dto.StartTrackingRequest{SubProjectID: "sp-404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin membresía ni liderazgo no se trackea; un admin de empresa sí puede.
func TestTracking_Start_SinMembresia_Forbidden(t *testing.T) {
	f := newTrackingFixture(t)
	_, err := f.uc.Start(context.Background(), "u-externo", trkCompanyID, entity.RoleUser, dto.StartTrackingRequest{SubProjectID: trkTaskID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Start(context.Background(), "u-admin", trkCompanyID, entity.RoleCompanyAdmin, dto.StartTrackingRequest{SubProjectID: trkTaskID})
	assert.NoError(t, err)
}

// Segundo start con timer corriendo: *ActiveSessionError con la sesión
// existente, para que el cliente resincronice en lugar de perder estado.
func TestTracking_Start_ConSesionActiva_DevuelveConflicto(t *testing.T) {
	f := newTrackingFixture(t)
	first := f.start(t)

	f.now = f.now.Add(40 * time.Minute)
	_, err := f.uc.Start(context.Background(), trkUserID, trkCompanyID, entity.RoleUser, dto.StartTrackingRequest{SubProjectID: trkTaskID})
	require.Error(t, err)

	var active *usecase.ActiveSessionError
	require.ErrorAs(t, err, &active)
	assert.Equal(t, first.ID, active.Session.ID, "el conflicto debe identificar la sesión existente")
	assert.Equal(t, 40, active.ElapsedMinutes)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Stop
// ──────────────────────────────────────────────────────────────────────────────

func TestTracking_Stop_AcreditaPuntosDuales(t *testing.T) {
	f := newTrackingFixture(t)
	session := f.start(t)

	// 95 minutos → 3 puntos (95/30)
	f.now = f.now.Add(95 * time.Minute)
	out, err := f.uc.Stop(context.Background(), trkUserID, trkCompanyID, session.ID, dto.StopTrackingRequest{Notes: "refactor del parser"})
	require.NoError(t, err)

	assert.Equal(t, 3, out.PointsEarned)
	assert.Equal(t, 95, out.Tracking.DurationMinutes)
	assert.False(t, out.Tracking.IsActive)
	assert.Equal(t, "refactor del parser", out.Tracking.Notes)
	assert.Equal(t, 3, f.rec.userPoints, "acumulador global del usuario")
	assert.Equal(t, 3, f.rec.memberPoints, "contador de la membresía")
	assert.Equal(t, trkProjectID, f.rec.projectID)

	// start + stop dejan rastro en el log de actividad
	require.Len(t, f.activity.entries, 2)
	assert.Equal(t, entity.ActivityTimeTrackingStart, f.activity.entries[0].ActivityType)
	assert.Equal(t, entity.ActivityTimeTrackingEnd, f.activity.entries[1].ActivityType)
}

func TestTracking_Stop_SesionCorta_SinPuntos(t *testing.T) {
	f := newTrackingFixture(t)
	session := f.start(t)

	// 10 minutos: por debajo del umbral, no otorga puntos
	f.now = f.now.Add(10 * time.Minute)
	out, err := f.uc.Stop(context.Background(), trkUserID, trkCompanyID, session.ID, dto.StopTrackingRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, out.PointsEarned)
	assert.Equal(t, 0, f.rec.userPoints)
	assert.Equal(t, 0, f.rec.memberPoints)
}

// Doble stop: la segunda invocación no encuentra la sesión (ya no está activa)
// y nunca duplica puntos.
func TestTracking_Stop_Doble_NoDuplicaPuntos(t *testing.T) {
	f := newTrackingFixture(t)
	session := f.start(t)

	f.now = f.now.Add(60 * time.Minute)
	_, err := f.uc.Stop(context.Background(), trkUserID, trkCompanyID, session.ID, dto.StopTrackingRequest{})
	require.NoError(t, err)

	_, err = f.uc.Stop(context.Background(), trkUserID, trkCompanyID, session.ID, dto.StopTrackingRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, f.rec.userPoints, "los puntos del primer stop no deben duplicarse")
}

func TestTracking_StopActive_SinConocerID(t *testing.T) {
	f := newTrackingFixture(t)
	f.start(t)

	f.now = f.now.Add(30 * time.Minute)
	out, err := f.uc.StopActive(context.Background(), trkUserID, trkCompanyID, dto.StopTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.PointsEarned)
}

func TestTracking_Stop_SesionAjena_NotFound(t *testing.T) {
	f := newTrackingFixture(t)
	session := f.start(t)

	_, err := f.uc.Stop(context.Background(), "u-otro", trkCompanyID, session.ID, dto.StopTrackingRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Active / History
// ──────────────────────────────────────────────────────────────────────────────

func TestTracking_Active_CalculaMinutosEnLectura(t *testing.T) {
	f := newTrackingFixture(t)
	session := f.start(t)

	f.now = f.now.Add(25 * time.Minute)
	out, err := f.uc.Active(context.Background(), trkUserID)
	require.NoError(t, err)

	require.True(t, out.Active)
	assert.Equal(t, session.ID, out.Timer.ID)
	assert.Equal(t, 25, out.Timer.ElapsedMinutes)
}

func TestTracking_Active_SinTimer(t *testing.T) {
	f := newTrackingFixture(t)
	out, err := f.uc.Active(context.Background(), trkUserID)
	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.Nil(t, out.Timer)
}

func TestTracking_History_FechaInvalida(t *testing.T) {
	f := newTrackingFixture(t)
	_, err := f.uc.History(context.Background(), trkUserID, dto.TrackingHistoryQuery{StartDate: "15/06/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
