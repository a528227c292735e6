package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/pkg/jwt"
)

// SuperadminRole rol que viaja en los tokens del realm de plataforma. Los
// tokens de empresa nunca lo portan: el realm usa otro secreto e issuer.
const SuperadminRole = "SUPERADMIN"

// SuperadminUseCase consola de plataforma: operadores, empresas, planes y
// agregados globales. Opera fuera del modelo multi-tenant.
type SuperadminUseCase struct {
	adminRepo     repository.SuperAdminRepository
	planRepo      repository.SubscriptionPlanRepository
	companyRepo   repository.CompanyRepository
	analyticsRepo repository.AnalyticsRepository
	token         TokenConfig
	now           func() time.Time
}

// NewSuperadminUseCase construye el caso de uso. nowFn nil usa time.Now.
func NewSuperadminUseCase(
	adminRepo repository.SuperAdminRepository,
	planRepo repository.SubscriptionPlanRepository,
	companyRepo repository.CompanyRepository,
	analyticsRepo repository.AnalyticsRepository,
	token TokenConfig,
	nowFn func() time.Time,
) *SuperadminUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &SuperadminUseCase{
		adminRepo:     adminRepo,
		planRepo:      planRepo,
		companyRepo:   companyRepo,
		analyticsRepo: analyticsRepo,
		token:         token,
		now:           nowFn,
	}
}

// Login autentica a un operador y emite un token del realm de plataforma
// (companyID vacío: el operador no pertenece a ningún tenant).
func (uc *SuperadminUseCase) Login(ctx context.Context, in dto.SuperadminLoginRequest) (*dto.SuperadminLoginResponse, error) {
	admin, err := uc.adminRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !admin.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.token.Secret, admin.ID, admin.Email, "", SuperadminRole, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SuperadminLoginResponse{
		AccessToken: token,
		Admin:       *toSuperadminResponse(admin),
	}, nil
}

// Register da de alta un operador de plataforma.
func (uc *SuperadminUseCase) Register(ctx context.Context, in dto.SuperadminRegisterRequest) (*dto.SuperadminResponse, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.adminRepo.GetByEmail(ctx, in.Email)
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
	admin := &entity.SuperAdmin{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return toSuperadminResponse(admin), nil
}

// Profile perfil del operador autenticado.
func (uc *SuperadminUseCase) Profile(ctx context.Context, adminID string) (*dto.SuperadminResponse, error) {
	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}
	return toSuperadminResponse(admin), nil
}

// ListCompanies lista todas las empresas de la plataforma.
func (uc *SuperadminUseCase) ListCompanies(ctx context.Context, page dto.PageRequest) ([]dto.CompanyResponse, error) {
	page.DefaultPage()
	list, err := uc.companyRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, nil
}

// UpdateCompanySubscription fija estado y vencimiento de la suscripción de una
// empresa (renovación, upgrade o cancelación manual desde la consola).
func (uc *SuperadminUseCase) UpdateCompanySubscription(ctx context.Context, companyID string, in dto.UpdateCompanySubscriptionRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	company.SubscriptionStatus = in.Status
	switch in.Status {
	case entity.SubscriptionTrial:
		company.TrialEndsAt = in.EndsAt
	case entity.SubscriptionActive:
		company.SubscriptionEndsAt = in.EndsAt
	}
	company.UpdatedAt = uc.now()
	if err := uc.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// SetCompanyActive activa o desactiva una empresa completa.
func (uc *SuperadminUseCase) SetCompanyActive(ctx context.Context, companyID string, active bool) error {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.companyRepo.SetActive(ctx, companyID, active)
}

// PlatformStats agregados globales de la plataforma.
func (uc *SuperadminUseCase) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	stats, err := uc.analyticsRepo.PlatformStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PlatformStatsResponse{
		CompaniesByStatus: stats.CompaniesByStatus,
		TotalCompanies:    stats.TotalCompanies,
		TotalUsers:        stats.TotalUsers,
		TotalProjects:     stats.TotalProjects,
	}, nil
}

// CreatePlan da de alta un plan de suscripción; el nombre es único
// (case-insensitive).
func (uc *SuperadminUseCase) CreatePlan(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	existing, err := uc.planRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	plan := &entity.SubscriptionPlan{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Description:  in.Description,
		MonthlyPrice: in.MonthlyPrice,
		YearlyPrice:  in.YearlyPrice,
		UserLimit:    in.UserLimit,
		Features:     in.Features,
		IsPopular:    in.IsPopular,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// ListPlans lista todos los planes.
func (uc *SuperadminUseCase) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	list, err := uc.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPlanResponse(p))
	}
	return items, nil
}

// UpdatePlan actualiza los campos editables de un plan.
func (uc *SuperadminUseCase) UpdatePlan(ctx context.Context, id string, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := uc.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.MonthlyPrice != nil {
		plan.MonthlyPrice = *in.MonthlyPrice
	}
	if in.YearlyPrice != nil {
		plan.YearlyPrice = *in.YearlyPrice
	}
	if in.UserLimit != nil {
		plan.UserLimit = *in.UserLimit
	}
	if len(in.Features) > 0 {
		plan.Features = in.Features
	}
	if in.IsPopular != nil {
		plan.IsPopular = *in.IsPopular
	}
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}
	plan.UpdatedAt = uc.now()
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// DeletePlan elimina un plan.
func (uc *SuperadminUseCase) DeletePlan(ctx context.Context, id string) error {
	plan, err := uc.planRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	return uc.planRepo.Delete(ctx, id)
}

func toSuperadminResponse(a *entity.SuperAdmin) *dto.SuperadminResponse {
	if a == nil {
		return nil
	}
	return &dto.SuperadminResponse{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func toPlanResponse(p *entity.SubscriptionPlan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		MonthlyPrice: p.MonthlyPrice,
		YearlyPrice:  p.YearlyPrice,
		UserLimit:    p.UserLimit,
		Features:     p.Features,
		IsPopular:    p.IsPopular,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
