package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/subscription"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de empresas
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	company       *entity.Company
	getErr        error
	updateErr     error
	statusUpdates []string // estados persistidos vía UpdateSubscriptionStatus
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.company == nil || f.company.ID != id {
		return nil, nil
	}
	return f.company, nil
}
func (f *fakeCompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	f.company.SubscriptionStatus = status
	return nil
}
func (f *fakeCompanyRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (f *fakeCompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func nowFn() time.Time { return fixedNow }

func companyWith(status string, trialEnds, subEnds *time.Time) *entity.Company {
	return &entity.Company{
		ID:                 "c-1",
		Name:               "Acme",
		CompanyCode:        "ACME1234",
		SubscriptionStatus: status,
		TrialEndsAt:        trialEnds,
		SubscriptionEndsAt: subEnds,
		IsActive:           true,
	}
}

func ptr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAccess_TrialVigente_Pasa(t *testing.T) {
	repo := &fakeCompanyRepo{company: companyWith(entity.SubscriptionTrial, ptr(fixedNow.Add(48*time.Hour)), nil)}
	svc := subscription.NewService(repo, nowFn)

	assert.NoError(t, svc.CheckAccess(context.Background(), "c-1"))
	assert.Empty(t, repo.statusUpdates, "un trial vigente no debe persistir nada")
}

func TestCheckAccess_TrialVencido_Rechaza(t *testing.T) {
	repo := &fakeCompanyRepo{company: companyWith(entity.SubscriptionTrial, ptr(fixedNow.Add(-time.Hour)), nil)}
	svc := subscription.NewService(repo, nowFn)

	err := svc.CheckAccess(context.Background(), "c-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, subscription.ErrTrialExpired)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el error del gate debe envolver el sentinel Forbidden")
	assert.Empty(t, repo.statusUpdates, "el vencimiento del trial no se persiste, se recalcula en cada acceso")
}

func TestCheckAccess_ActivaVigente_Pasa(t *testing.T) {
	repo := &fakeCompanyRepo{company: companyWith(entity.SubscriptionActive, nil, ptr(fixedNow.Add(720*time.Hour)))}
	svc := subscription.NewService(repo, nowFn)

	assert.NoError(t, svc.CheckAccess(context.Background(), "c-1"))
}

// La única transición automática: ACTIVE con vencimiento en el pasado se
// persiste como EXPIRED antes de rechazar.
func TestCheckAccess_ActivaVencida_PersisteExpiredYRechaza(t *testing.T) {
	repo := &fakeCompanyRepo{company: companyWith(entity.SubscriptionActive, nil, ptr(fixedNow.Add(-time.Minute)))}
	svc := subscription.NewService(repo, nowFn)

	err := svc.CheckAccess(context.Background(), "c-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionExpired)
	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, entity.SubscriptionExpired, repo.statusUpdates[0])
}

// Si la escritura de la transición falla, el rechazo se devuelve igual: la
// decisión ya estaba tomada con la información leída.
func TestCheckAccess_ActivaVencida_FalloDeEscritura_RechazaIgual(t *testing.T) {
	repo := &fakeCompanyRepo{
		company:   companyWith(entity.SubscriptionActive, nil, ptr(fixedNow.Add(-time.Minute))),
		updateErr: errors.New("deadlock detected"),
	}
	svc := subscription.NewService(repo, nowFn)

	err := svc.CheckAccess(context.Background(), "c-1")
	assert.ErrorIs(t, err, subscription.ErrSubscriptionExpired)
}

// Dos accesos sobre la misma empresa vencida: el segundo la encuentra ya
// EXPIRED y rechaza sin reescribir (el overwrite es idempotente de todas formas).
func TestCheckAccess_TransicionIdempotente(t *testing.T) {
	repo := &fakeCompanyRepo{company: companyWith(entity.SubscriptionActive, nil, ptr(fixedNow.Add(-time.Minute)))}
	svc := subscription.NewService(repo, nowFn)

	err := svc.CheckAccess(context.Background(), "c-1")
	assert.ErrorIs(t, err, subscription.ErrSubscriptionExpired)

	err = svc.CheckAccess(context.Background(), "c-1")
	assert.ErrorIs(t, err, subscription.ErrSubscriptionInactive)
	assert.Len(t, repo.statusUpdates, 1, "la transición solo se escribe una vez")
}

func TestCheckAccess_Cancelada_Rechaza(t *testing.T) {
	repo := &fakeCompanyRepo{company: companyWith(entity.SubscriptionCancelled, nil, nil)}
	svc := subscription.NewService(repo, nowFn)

	assert.ErrorIs(t, svc.CheckAccess(context.Background(), "c-1"), subscription.ErrSubscriptionInactive)
}

func TestCheckAccess_EmpresaInactiva_Rechaza(t *testing.T) {
	company := companyWith(entity.SubscriptionActive, nil, ptr(fixedNow.Add(720*time.Hour)))
	company.IsActive = false
	repo := &fakeCompanyRepo{company: company}
	svc := subscription.NewService(repo, nowFn)

	assert.ErrorIs(t, svc.CheckAccess(context.Background(), "c-1"), subscription.ErrCompanyInactive)
}

func TestCheckAccess_EmpresaInexistente_NotFound(t *testing.T) {
	repo := &fakeCompanyRepo{}
	svc := subscription.NewService(repo, nowFn)

	err := svc.CheckAccess(context.Background(), "c-404")
	assert.ErrorIs(t, err, subscription.ErrCompanyNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StatusFor
// ──────────────────────────────────────────────────────────────────────────────

func TestStatusFor_TrialVigente(t *testing.T) {
	// 2.5 días restantes se reportan como 3 (redondeo hacia arriba)
	c := companyWith(entity.SubscriptionTrial, ptr(fixedNow.Add(60*time.Hour)), nil)
	st := subscription.StatusFor(c, fixedNow)

	assert.True(t, st.IsValid)
	assert.Equal(t, entity.SubscriptionTrial, st.Status)
	assert.Equal(t, 3, st.DaysRemaining)
}

func TestStatusFor_TrialVencido(t *testing.T) {
	c := companyWith(entity.SubscriptionTrial, ptr(fixedNow.Add(-time.Hour)), nil)
	st := subscription.StatusFor(c, fixedNow)

	assert.False(t, st.IsValid)
	assert.Equal(t, 0, st.DaysRemaining)
}

func TestStatusFor_Expirada(t *testing.T) {
	c := companyWith(entity.SubscriptionExpired, nil, nil)
	st := subscription.StatusFor(c, fixedNow)

	assert.False(t, st.IsValid)
	assert.Equal(t, entity.SubscriptionExpired, st.Status)
}
