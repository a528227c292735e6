package usecase_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	pkgjwt "github.com/taskhive/taskhive-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type authCompanyRepo struct {
	byID   map[string]*entity.Company
	byName map[string]*entity.Company
	byCode map[string]*entity.Company
}

func newAuthCompanyRepo() *authCompanyRepo {
	return &authCompanyRepo{
		byID:   map[string]*entity.Company{},
		byName: map[string]*entity.Company{},
		byCode: map[string]*entity.Company{},
	}
}

func (f *authCompanyRepo) add(c *entity.Company) {
	f.byID[c.ID] = c
	f.byName[c.Name] = c
	f.byCode[c.CompanyCode] = c
}

func (f *authCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	f.add(c)
	return nil
}
func (f *authCompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return f.byID[id], nil
}
func (f *authCompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return f.byName[name], nil
}
func (f *authCompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	return f.byCode[code], nil
}
func (f *authCompanyRepo) Update(ctx context.Context, c *entity.Company) error { return nil }
func (f *authCompanyRepo) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	return nil
}
func (f *authCompanyRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (f *authCompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}

type authUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newAuthUserRepo() *authUserRepo {
	return &authUserRepo{byEmail: map[string]*entity.User{}, byID: map[string]*entity.User{}}
}

func (f *authUserRepo) add(u *entity.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *authUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.add(u)
	return nil
}
func (f *authUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}
func (f *authUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *authUserRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	return nil, nil
}
func (f *authUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }
func (f *authUserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *authUserRepo) AddPoints(ctx context.Context, id string, points int) error { return nil }
func (f *authUserRepo) AssignDepartment(ctx context.Context, companyID string, userIDs []string, departmentID string) error {
	return nil
}
func (f *authUserRepo) ClearDepartment(ctx context.Context, departmentID string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

var authNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

const authTokenSecret = "auth-usecase-test-secret"

type authFixture struct {
	uc        *usecase.AuthUseCase
	companies *authCompanyRepo
	users     *authUserRepo
	activity  *fakeActivityRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	companies := newAuthCompanyRepo()
	users := newAuthUserRepo()
	activity := &fakeActivityRepo{}
	tx := &fakeTxRunner{repos: repository.TxRepositories{Companies: companies, Users: users}}
	token := usecase.TokenConfig{Secret: authTokenSecret, Issuer: "taskhive-test", ExpMinutes: 60}
	return &authFixture{
		uc:        usecase.NewAuthUseCase(companies, users, activity, tx, token, func() time.Time { return authNow }),
		companies: companies,
		users:     users,
		activity:  activity,
	}
}

func (f *authFixture) seedUser(t *testing.T, email, password string, active bool) (*entity.User, *entity.Company) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	trialEnds := authNow.Add(48 * time.Hour)
	company := &entity.Company{
		ID:                 "c-auth-1",
		Name:               "Acme",
		CompanyCode:        "ACME1234",
		SubscriptionStatus: entity.SubscriptionTrial,
		TrialEndsAt:        &trialEnds,
		IsActive:           true,
	}
	f.companies.add(company)

	user := &entity.User{
		ID:           "u-auth-1",
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         entity.RoleUser,
		IsActive:     active,
		CompanyID:    company.ID,
	}
	f.users.add(user)
	return user, company
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_Login_CredencialesValidas(t *testing.T) {
	f := newAuthFixture(t)
	user, company := f.seedUser(t, "ada@acme.test", "secreta123", true)

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ada@acme.test", Password: "secreta123"})
	require.NoError(t, err)

	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, company.CompanyCode, out.Company.CompanyCode)
	assert.True(t, out.Subscription.IsValid)

	claims, err := pkgjwt.Parse(authTokenSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, company.ID, claims.CompanyID)
	assert.Equal(t, entity.RoleUser, claims.Role)

	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, entity.ActivityUserLogin, f.activity.entries[0].ActivityType)
}

func TestAuth_Login_PasswordIncorrecta(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ada@acme.test", "secreta123", true)

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ada@acme.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Email inexistente y password incorrecta responden igual: no se filtra
// qué cuentas existen.
func TestAuth_Login_EmailInexistente(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.test", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuth_Login_UsuarioDesactivado(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ada@acme.test", "secreta123", false)

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ada@acme.test", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterCompany
// ──────────────────────────────────────────────────────────────────────────────

var companyCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestAuth_RegisterCompany_CreaEmpresaYAdmin(t *testing.T) {
	f := newAuthFixture(t)
	out, err := f.uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName: "Colmena",
		Email:       "admin@colmena.test",
		Password:    "secreta123",
		FirstName:   "Grace",
		LastName:    "Hopper",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCompanyAdmin, out.User.Role, "el registrante queda como admin de su empresa")
	assert.Regexp(t, companyCodePattern, out.Company.CompanyCode)
	assert.Equal(t, entity.SubscriptionTrial, out.Subscription.Status)
	assert.True(t, out.Subscription.IsValid)
	assert.Equal(t, 3, out.Subscription.DaysRemaining, "el trial dura 3 días")

	// La empresa y el admin quedaron persistidos y asociados
	company := f.companies.byName["Colmena"]
	require.NotNil(t, company)
	admin := f.users.byEmail["admin@colmena.test"]
	require.NotNil(t, admin)
	assert.Equal(t, company.ID, admin.CompanyID)
	require.NotNil(t, company.TrialEndsAt)
	assert.Equal(t, authNow.Add(72*time.Hour), *company.TrialEndsAt)
}

func TestAuth_RegisterCompany_EmailYaRegistrado(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ada@acme.test", "secreta123", true)

	_, err := f.uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName: "Colmena",
		Email:       "ada@acme.test",
		Password:    "secreta123",
		FirstName:   "Grace",
		LastName:    "Hopper",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuth_RegisterCompany_NombreDuplicado(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "ada@acme.test", "secreta123", true) // crea la empresa "Acme"

	_, err := f.uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName: "Acme",
		Email:       "otro@acme.test",
		Password:    "secreta123",
		FirstName:   "Grace",
		LastName:    "Hopper",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegisterUser_ConCompanyCode(t *testing.T) {
	f := newAuthFixture(t)
	_, company := f.seedUser(t, "ada@acme.test", "secreta123", true)

	out, err := f.uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		CompanyCode: company.CompanyCode,
		Email:       "nuevo@acme.test",
		Password:    "secreta123",
		FirstName:   "Alan",
		LastName:    "Turing",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, out.User.Role, "un usuario que se une por código entra como USER")
	assert.Equal(t, company.ID, out.User.CompanyID)
}

func TestAuth_RegisterUser_CodigoInvalido(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		CompanyCode: "NOEXISTE",
		Email:       "nuevo@acme.test",
		Password:    "secreta123",
		FirstName:   "Alan",
		LastName:    "Turing",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuth_RegisterUser_EmailYaRegistrado(t *testing.T) {
	f := newAuthFixture(t)
	_, company := f.seedUser(t, "ada@acme.test", "secreta123", true)

	_, err := f.uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		CompanyCode: company.CompanyCode,
		Email:       "ada@acme.test",
		Password:    "secreta123",
		FirstName:   "Alan",
		LastName:    "Turing",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Me
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_Me_DevuelvePerfilSinPassword(t *testing.T) {
	f := newAuthFixture(t)
	user, _ := f.seedUser(t, "ada@acme.test", "secreta123", true)

	out, err := f.uc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, user.Email, out.Email)
}

func TestAuth_Me_UsuarioInexistente_Nil(t *testing.T) {
	f := newAuthFixture(t)
	out, err := f.uc.Me(context.Background(), "u-404")
	require.NoError(t, err)
	assert.Nil(t, out)
}
