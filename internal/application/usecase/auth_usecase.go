package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/subscription"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/pkg/jwt"
)

const (
	trialDays           = 3
	companyCodeLength   = 8
	companyCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeRetryAttempts   = 5
)

// TokenConfig parámetros de emisión de JWT para el realm de empresas.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// AuthUseCase registro, login y perfil. El registro de empresa crea la empresa
// y su admin en una sola transacción.
type AuthUseCase struct {
	companyRepo  repository.CompanyRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
	txRunner     repository.TxRunner
	token        TokenConfig
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso. nowFn nil usa time.Now.
func NewAuthUseCase(companyRepo repository.CompanyRepository, userRepo repository.UserRepository, activityRepo repository.ActivityLogRepository, txRunner repository.TxRunner, token TokenConfig, nowFn func() time.Time) *AuthUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &AuthUseCase{
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		txRunner:     txRunner,
		token:        token,
		now:          nowFn,
	}
}

// Login autentica por email/password y devuelve token + usuario + empresa +
// estado de suscripción. El gate de suscripción NO aplica aquí: un admin con
// suscripción vencida necesita poder entrar a renovar.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	if err := uc.activityRepo.Create(ctx, &entity.ActivityLog{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		UserID:       &user.ID,
		ActivityType: entity.ActivityUserLogin,
		Description:  fmt.Sprintf("%s %s inició sesión", user.FirstName, user.LastName),
		CreatedAt:    uc.now(),
	}); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar la actividad de login")
	}

	return uc.buildLoginResponse(user, company)
}

// RegisterCompany crea una empresa nueva con período de prueba de 3 días y su
// usuario COMPANY_ADMIN, atómicamente. Devuelve sesión iniciada.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.LoginResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	dup, err := uc.companyRepo.GetByName(ctx, in.CompanyName)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, domain.ErrDuplicate
	}

	code, err := uc.uniqueCompanyCode(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	trialEndsAt := now.Add(trialDays * 24 * time.Hour)
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.CompanyName,
		CompanyCode:        code,
		SubscriptionStatus: entity.SubscriptionTrial,
		TrialEndsAt:        &trialEndsAt,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleCompanyAdmin,
		IsActive:     true,
		CompanyID:    company.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.WithinTx(ctx, func(r repository.TxRepositories) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		return r.Users.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	return uc.buildLoginResponse(admin, company)
}

// RegisterUser une a un usuario a una empresa existente vía company code.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterUserRequest) (*dto.LoginResponse, error) {
	company, err := uc.companyRepo.GetByCode(ctx, in.CompanyCode)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("código de empresa inválido: %w", domain.ErrNotFound)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleUser,
		IsActive:     true,
		CompanyID:    company.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.buildLoginResponse(user, company)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) buildLoginResponse(user *entity.User, company *entity.Company) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.token.Secret, user.ID, user.Email, user.CompanyID, user.Role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		User:        *toUserResponse(user),
		Company: dto.CompanySummary{
			ID:          company.ID,
			Name:        company.Name,
			CompanyCode: company.CompanyCode,
		},
		Subscription: subscription.StatusFor(company, uc.now()),
	}, nil
}

// uniqueCompanyCode genera un código de 8 caracteres y verifica colisión
// contra la DB; reintenta un número acotado de veces. El índice único de
// company_code cubre la carrera residual entre verificación e inserción.
func (uc *AuthUseCase) uniqueCompanyCode(ctx context.Context) (string, error) {
	for i := 0; i < codeRetryAttempts; i++ {
		code, err := randomCompanyCode()
		if err != nil {
			return "", err
		}
		existing, err := uc.companyRepo.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("no se pudo generar un código de empresa único")
}

func randomCompanyCode() (string, error) {
	buf := make([]byte, companyCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = companyCodeAlphabet[int(b)%len(companyCodeAlphabet)]
	}
	return string(buf), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Avatar:       u.Avatar,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		CompanyID:    u.CompanyID,
		DepartmentID: u.DepartmentID,
		Points:       u.Points,
		StartDate:    u.StartDate,
		EndDate:      u.EndDate,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
